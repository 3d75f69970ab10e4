package asynctask

import "testing"

type markerRecord struct {
	statusRecordBase
	name string
}

func TestStatusRecordPushPopLIFO(t *testing.T) {
	tk := NewTask(noopResume, NewTaskOptions{})
	a := &markerRecord{name: "a"}
	b := &markerRecord{name: "b"}

	tk.PushStatusRecord(a)
	tk.PushStatusRecord(b)

	records := tk.StatusRecords()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].(*markerRecord).name != "b" || records[1].(*markerRecord).name != "a" {
		t.Fatalf("expected LIFO order [b, a], got %v", records)
	}

	tk.PopStatusRecord(b)
	records = tk.StatusRecords()
	if len(records) != 1 || records[0].(*markerRecord).name != "a" {
		t.Fatalf("expected [a] after popping b, got %v", records)
	}
}

func TestStatusRecordPopOutOfOrderPanics(t *testing.T) {
	tk := NewTask(noopResume, NewTaskOptions{})
	a := &markerRecord{name: "a"}
	b := &markerRecord{name: "b"}
	tk.PushStatusRecord(a)
	tk.PushStatusRecord(b)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	tk.PopStatusRecord(a)
}

func TestCancelDoesNotTouchRecordChain(t *testing.T) {
	tk := NewTask(noopResume, NewTaskOptions{})
	a := &markerRecord{name: "a"}
	tk.PushStatusRecord(a)

	tk.Cancel()

	records := tk.StatusRecords()
	if len(records) != 1 || records[0] != a {
		t.Fatalf("expected cancellation to leave the chain untouched, got %v", records)
	}
}
