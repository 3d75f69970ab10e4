package asynctask

import "github.com/vmihailenco/msgpack/v5"

// Snapshot is a msgpack-encodable view of a task graph's shape, used as a
// golden-file fixture in regression tests. It mirrors fragment presence
// and status-record depth rather than any live pointer, so it survives a
// round trip through disk.
type Snapshot struct {
	Flags        JobFlags
	Cancelled    bool
	FragmentKeys []string // from FragmentOffsets, in canonical order
	StatusDepth  int
	Children     []Snapshot
}

// Snapshot captures t's shape, recursing into structural children found
// in its status-record chain.
func (t *AsyncTask) Snapshot() Snapshot {
	var keys []string
	for _, fo := range t.FragmentOffsets() {
		keys = append(keys, fo.Name)
	}
	s := Snapshot{
		Flags:        t.Flags(),
		Cancelled:    t.IsCancelled(),
		FragmentKeys: keys,
		StatusDepth:  len(t.StatusRecords()),
	}
	for _, r := range t.StatusRecords() {
		if child, ok := r.(*ChildTaskStatusRecord); ok {
			s.Children = append(s.Children, child.Child.Snapshot())
		}
	}
	return s
}

// MarshalSnapshot encodes a Snapshot to its msgpack wire form.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

// UnmarshalSnapshot decodes a Snapshot previously produced by
// MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	err := msgpack.Unmarshal(data, &s)
	return s, err
}
