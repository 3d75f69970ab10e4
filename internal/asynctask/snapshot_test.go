package asynctask

import "testing"

func TestSnapshotRoundTripsThroughMsgpack(t *testing.T) {
	root := NewTask(noopResume, NewTaskOptions{IsFuture: true})
	child := NewTask(noopResume, NewTaskOptions{Parent: root})
	_ = child

	want := root.Snapshot()

	data, err := MarshalSnapshot(want)
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}

	got, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot: %v", err)
	}

	if len(got.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(got.Children))
	}
	if got.StatusDepth != want.StatusDepth {
		t.Fatalf("got StatusDepth %d, want %d", got.StatusDepth, want.StatusDepth)
	}
	if len(got.FragmentKeys) != 1 || got.FragmentKeys[0] != "future" {
		t.Fatalf("got FragmentKeys %v, want [future]", got.FragmentKeys)
	}
}
