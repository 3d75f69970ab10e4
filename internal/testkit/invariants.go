// Package testkit collects standalone invariant checkers used by unit
// tests across internal/asynctask and
// internal/rawsyntax. Each checker is a pure function over the public
// API of the type it inspects, so it composes with property-based tests
// without needing executor or arena access of its own.
package testkit

import (
	"fmt"

	"concore/internal/asynctask"
	"concore/internal/rawsyntax"
)

// CheckFragmentOffsetOrder verifies that t's fragment offsets appear in
// the canonical order child < group-child < future, matching whichever
// subset of fragments t actually carries.
func CheckFragmentOffsetOrder(t *asynctask.AsyncTask) error {
	offsets := t.FragmentOffsets()
	rank := map[string]int{"child": 0, "group-child": 1, "future": 2}
	last := -1
	for _, off := range offsets {
		r, ok := rank[off.Name]
		if !ok {
			return fmt.Errorf("unknown fragment name %q", off.Name)
		}
		if r <= last {
			return fmt.Errorf("fragment %q appears out of canonical order: offsets=%v", off.Name, offsets)
		}
		last = r
	}
	return nil
}

// CheckCancellationSticky verifies that Cancel is idempotent and
// monotonic: once is_cancelled reports true, it never reports false
// again, no matter how many more times Cancel is called.
func CheckCancellationSticky(t *asynctask.AsyncTask) error {
	t.Cancel()
	if !t.IsCancelled() {
		return fmt.Errorf("task not cancelled immediately after Cancel()")
	}
	t.Cancel()
	if !t.IsCancelled() {
		return fmt.Errorf("is_cancelled flipped back to false after a second Cancel()")
	}
	return nil
}

// CheckStatusRecordLIFO pushes and pops the given records onto t in
// order and verifies that, at each step, the chain read back via
// StatusRecords is exactly the reverse-order suffix still outstanding —
// i.e. a genuine LIFO discipline, not merely a set.
func CheckStatusRecordLIFO(t *asynctask.AsyncTask, records []asynctask.TaskStatusRecord) error {
	for i, r := range records {
		t.PushStatusRecord(r)
		got := t.StatusRecords()
		if len(got) == 0 || got[0] != r {
			return fmt.Errorf("after pushing record %d, innermost is not the just-pushed record", i)
		}
	}
	for i := len(records) - 1; i >= 0; i-- {
		got := t.StatusRecords()
		if len(got) == 0 || got[0] != records[i] {
			return fmt.Errorf("pop order violated at record %d: chain=%v", i, got)
		}
		t.PopStatusRecord(records[i])
	}
	if got := t.StatusRecords(); len(got) != 0 {
		return fmt.Errorf("status chain not empty after popping every pushed record: %v", got)
	}
	return nil
}

// CheckTextLengthLaw recursively verifies the raw-syntax text-length
// invariant: a layout node's length is the sum of its children's, a
// present token's is leading+text+trailing, and a missing node's is 0.
func CheckTextLengthLaw(n *rawsyntax.RawSyntax) error {
	if n == nil {
		return nil
	}
	if n.IsMissing() {
		if n.TextLength() != 0 {
			return fmt.Errorf("missing node %d has nonzero text length %d", n.ID(), n.TextLength())
		}
		return nil
	}
	if n.IsToken() {
		want := len(n.LeadingTrivia()) + len(n.Text()) + len(n.TrailingTrivia())
		if int(n.TextLength()) != want {
			return fmt.Errorf("token %d text length = %d, want %d", n.ID(), n.TextLength(), want)
		}
		return nil
	}
	var sum uint32
	for i := 0; i < n.NumChildren(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if err := CheckTextLengthLaw(child); err != nil {
			return err
		}
		sum += child.TextLength()
	}
	if n.TextLength() != sum {
		return fmt.Errorf("layout %d text length = %d, want sum of children %d", n.ID(), n.TextLength(), sum)
	}
	return nil
}

// CheckTotalSubNodeCountLaw recursively verifies that every node's
// total_sub_node_count equals the sum over its children of
// 1+child.total_sub_node_count.
func CheckTotalSubNodeCountLaw(n *rawsyntax.RawSyntax) error {
	if n == nil || n.IsToken() || n.IsMissing() {
		if n != nil && n.TotalSubNodeCount() != 0 {
			return fmt.Errorf("leaf node %d has nonzero total sub node count %d", n.ID(), n.TotalSubNodeCount())
		}
		return nil
	}
	var sum uint32
	for i := 0; i < n.NumChildren(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if err := CheckTotalSubNodeCountLaw(child); err != nil {
			return err
		}
		sum += 1 + child.TotalSubNodeCount()
	}
	if n.TotalSubNodeCount() != sum {
		return fmt.Errorf("layout %d total sub node count = %d, want %d", n.ID(), n.TotalSubNodeCount(), sum)
	}
	return nil
}

// CheckNodeIDsUnique walks the tree rooted at n and verifies no two
// distinct nodes share a NodeId.
func CheckNodeIDsUnique(n *rawsyntax.RawSyntax) error {
	seen := make(map[rawsyntax.NodeId]bool)
	var walk func(*rawsyntax.RawSyntax) error
	walk = func(n *rawsyntax.RawSyntax) error {
		if n == nil {
			return nil
		}
		if seen[n.ID()] {
			return fmt.Errorf("duplicate node id %d", n.ID())
		}
		seen[n.ID()] = true
		for i := 0; i < n.NumChildren(); i++ {
			if err := walk(n.Child(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(n)
}

// CheckFutureMonotonicity completes the not-yet-completed fut with
// result and err, then verifies that the future reports completion, that
// no waiters were pending, that PollFuture returns the same payload, and
// that a second CompleteFuture panics: once ready, it stays ready with
// the same payload.
func CheckFutureMonotonicity(fut *asynctask.FutureFragment, result any, err error) error {
	if fut.IsCompleted() {
		return fmt.Errorf("future already completed before monotonicity check began")
	}
	waiters := fut.CompleteFuture(result, err)
	if !fut.IsCompleted() {
		return fmt.Errorf("future not completed after CompleteFuture")
	}
	if len(waiters) != 0 {
		return fmt.Errorf("CompleteFuture returned %d waiters, want 0: this check never parks one", len(waiters))
	}
	gotResult, gotErr, ready := fut.PollFuture()
	if !ready || gotResult != result || gotErr != err {
		return fmt.Errorf("post-completion poll mismatch: result=%v err=%v ready=%v", gotResult, gotErr, ready)
	}
	doubleCompletePanicked := false
	func() {
		defer func() {
			if recover() != nil {
				doubleCompletePanicked = true
			}
		}()
		fut.CompleteFuture(result, err)
	}()
	if !doubleCompletePanicked {
		return fmt.Errorf("completing an already-completed future did not panic")
	}
	return nil
}
