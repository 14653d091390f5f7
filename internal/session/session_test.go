package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeInferredFillsOnlyEmptySlots(t *testing.T) {
	s := New("test")
	s.Overwrite(Fields{EmployeeID: "EMP001", LeaveType: "casual_leave"})

	s.MergeInferred(Fields{
		EmployeeID: "EMP999", // must not clobber
		Name:       "John",
		StartDate:  "2025-07-01",
	})

	got := s.Info()
	want := Fields{
		EmployeeID: "EMP001",
		Name:       "John",
		LeaveType:  "casual_leave",
		StartDate:  "2025-07-01",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestOverwriteReplacesButNeverErases(t *testing.T) {
	s := New("test")
	s.Overwrite(Fields{EmployeeID: "EMP001", Name: "John", StartDate: "2025-07-01"})

	// Explicit correction replaces; empty slots leave state alone.
	s.Overwrite(Fields{StartDate: "2025-07-08"})

	got := s.Info()
	want := Fields{EmployeeID: "EMP001", Name: "John", StartDate: "2025-07-08"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestContextLine(t *testing.T) {
	s := New("test")
	if got := s.Context(); got != "No user context available" {
		t.Errorf("empty context = %q", got)
	}

	s.Overwrite(Fields{EmployeeID: "EMP001", LeaveType: "sick_leave", Reason: "flu"})
	want := "Employee ID: EMP001; Current leave type: sick_leave; Leave reason: flu"
	if got := s.Context(); got != want {
		t.Errorf("Context() = %q, want %q", got, want)
	}
}

func TestMissingInfoAndReady(t *testing.T) {
	s := New("test")
	if diff := cmp.Diff([]string{"Employee ID", "Name"}, s.MissingInfo()); diff != "" {
		t.Errorf("missing info (-want +got):\n%s", diff)
	}
	if s.Ready() {
		t.Error("empty session reported ready")
	}

	s.Overwrite(Fields{EmployeeID: "EMP001"})
	if diff := cmp.Diff([]string{"Name"}, s.MissingInfo()); diff != "" {
		t.Errorf("missing info (-want +got):\n%s", diff)
	}

	s.Overwrite(Fields{Name: "John", LeaveType: "casual_leave", StartDate: "2025-07-01"})
	if len(s.MissingInfo()) != 0 {
		t.Errorf("MissingInfo() = %v, want empty", s.MissingInfo())
	}
	// Ready needs end date and reason too.
	if s.Ready() {
		t.Error("session ready without end date and reason")
	}

	s.Overwrite(Fields{EndDate: "2025-07-02", Reason: "family function"})
	if !s.Ready() {
		t.Error("complete session not ready")
	}
}

func TestRecentHistory(t *testing.T) {
	s := New("test")
	for i := 0; i < 6; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		s.AddTurn(role, fmt.Sprintf("turn %d", i))
	}

	recent := s.RecentHistory(4)
	if len(recent) != 4 {
		t.Fatalf("len(recent) = %d, want 4", len(recent))
	}
	if recent[0].Content != "turn 2" || recent[3].Content != "turn 5" {
		t.Errorf("unexpected window: first=%q last=%q", recent[0].Content, recent[3].Content)
	}

	// Asking for more than exists returns everything.
	if got := s.RecentHistory(100); len(got) != 6 {
		t.Errorf("len = %d, want 6", len(got))
	}
}

func TestFieldsFromMap(t *testing.T) {
	raw := map[string]interface{}{
		"employee_id": "EMP003",
		"name":        "  Maria  ",
		"leave_type":  "earned_leave",
		"days":        float64(3), // non-string dropped
		"unknown_key": "ignored",
	}
	got := FieldsFromMap(raw)
	want := Fields{EmployeeID: "EMP003", Name: "Maria", LeaveType: "earned_leave"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FieldsFromMap() (-want +got):\n%s", diff)
	}
}

func TestStoreLifecycle(t *testing.T) {
	st := NewStore()

	a := st.GetOrCreate("a")
	if st.GetOrCreate("a") != a {
		t.Error("GetOrCreate returned a different session for same ID")
	}
	st.GetOrCreate("b")

	if st.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", st.Count())
	}

	list := st.List()
	if len(list) != 2 || list[0].ID() != "a" || list[1].ID() != "b" {
		t.Errorf("List() order wrong: %v", list)
	}

	st.Clear("a")
	st.Clear("never-existed") // no-op
	if st.Count() != 1 {
		t.Fatalf("Count() after Clear = %d, want 1", st.Count())
	}
	if st.Get("a") != nil {
		t.Error("cleared session still retrievable")
	}

	if n := st.ClearAll(); n != 1 {
		t.Errorf("ClearAll() = %d, want 1", n)
	}
	if st.Count() != 0 {
		t.Errorf("Count() after ClearAll = %d, want 0", st.Count())
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	st := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := st.GetOrCreate(fmt.Sprintf("s%d", i%4))
			s.MergeInferred(Fields{Name: "Racer"})
			s.AddTurn("user", "hello")
			_ = s.Context()
		}(i)
	}
	wg.Wait()

	if st.Count() != 4 {
		t.Errorf("Count() = %d, want 4", st.Count())
	}
}
