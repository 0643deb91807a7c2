package task

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type recordingPersister struct {
	saves [][]Task
	err   error
}

func (r *recordingPersister) SaveTasks(tasks []Task) error {
	r.saves = append(r.saves, tasks)
	return r.err
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(p Persister) *Store {
	clock := func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	return NewStore(nil, p, WithClock(clock), WithIDGenerator(counterIDs()))
}

func TestStore_AddPrependsAndPersists(t *testing.T) {
	p := &recordingPersister{}
	s := newTestStore(p)

	for i, text := range []string{"first", "second", "third"} {
		before := s.Len()
		if _, err := s.Add(Draft{Text: text}); err != nil {
			t.Fatalf("Add(%q): %v", text, err)
		}
		if s.Len() != before+1 {
			t.Fatalf("Len() = %d, want %d", s.Len(), before+1)
		}
		if got := s.Tasks()[0].Text; got != text {
			t.Errorf("first task = %q, want %q", got, text)
		}
		if len(p.saves) != i+1 {
			t.Errorf("saves = %d, want %d", len(p.saves), i+1)
		}
	}
}

func TestStore_AddScenario(t *testing.T) {
	s := newTestStore(nil)

	got, err := s.Add(Draft{Text: "Buy milk", Category: "shopping", Priority: PriorityHigh})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if got.Completed || got.Category != "shopping" || got.Priority != PriorityHigh || got.DueDate != nil {
		t.Errorf("unexpected task %+v", got)
	}
	if got.ID != "id-1" {
		t.Errorf("ID = %q, want id-1", got.ID)
	}
	if !got.CreatedAt.Equal(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", got.CreatedAt)
	}
	if n := len(s.Filtered(Filter{Status: StatusActive, Category: CategoryAll})); n != 1 {
		t.Errorf("active view has %d tasks, want 1", n)
	}
	if n := len(s.Filtered(Filter{Status: StatusCompleted, Category: CategoryAll})); n != 0 {
		t.Errorf("completed view has %d tasks, want 0", n)
	}
}

func TestStore_AddNormalizesOptionalFields(t *testing.T) {
	s := newTestStore(nil)

	got, err := s.Add(Draft{Text: "  padded  ", Category: "   ", Priority: "urgent"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.Text != "padded" {
		t.Errorf("Text = %q, want %q", got.Text, "padded")
	}
	if got.HasCategory() {
		t.Errorf("Category = %q, want absent", got.Category)
	}
	if got.Priority != PriorityLow {
		t.Errorf("Priority = %q, want low", got.Priority)
	}
}

func TestStore_AddRejectsBlankText(t *testing.T) {
	p := &recordingPersister{}
	s := newTestStore(p)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := s.Add(Draft{Text: text}); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Add(%q) err = %v, want ErrEmptyText", text, err)
		}
	}
	if s.Len() != 0 || len(p.saves) != 0 {
		t.Errorf("blank adds mutated the store: len=%d saves=%d", s.Len(), len(p.saves))
	}
}

func TestStore_ToggleIsItsOwnInverse(t *testing.T) {
	s := newTestStore(nil)
	due := Date{Year: 2026, Month: time.April, Day: 1}
	added, _ := s.Add(Draft{Text: "walk", DueDate: &due, Category: "health", Priority: PriorityMedium})

	if err := s.Toggle(added.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	mid, _ := s.Get(added.ID)
	if !mid.Completed {
		t.Fatal("expected completed after one toggle")
	}
	if err := s.Toggle(added.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	after, _ := s.Get(added.ID)
	if after.Completed != added.Completed || after.Text != added.Text || after.Category != added.Category ||
		after.Priority != added.Priority || *after.DueDate != *added.DueDate || !after.CreatedAt.Equal(added.CreatedAt) {
		t.Errorf("double toggle changed task: before %+v after %+v", added, after)
	}
}

func TestStore_UnknownIDIsNoop(t *testing.T) {
	p := &recordingPersister{}
	s := newTestStore(p)
	s.Add(Draft{Text: "keep"})
	saves := len(p.saves)

	if err := s.Toggle("missing"); err != nil {
		t.Errorf("Toggle(missing): %v", err)
	}
	if err := s.Remove("missing"); err != nil {
		t.Errorf("Remove(missing): %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if s.Tasks()[0].Completed {
		t.Error("unknown toggle changed a task")
	}
	if len(p.saves) != saves {
		t.Errorf("no-op persisted: saves = %d, want %d", len(p.saves), saves)
	}
}

func TestStore_RemoveKeepsOrder(t *testing.T) {
	s := newTestStore(nil)
	a, _ := s.Add(Draft{Text: "a"})
	b, _ := s.Add(Draft{Text: "b"})
	c, _ := s.Add(Draft{Text: "c"})

	if err := s.Remove(b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got := s.Tasks()
	if len(got) != 2 || got[0].ID != c.ID || got[1].ID != a.ID {
		t.Errorf("after remove got %+v", got)
	}
	if err := s.Remove(b.ID); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("second remove changed count to %d", s.Len())
	}
}

func TestStore_PersistErrorKeepsMutation(t *testing.T) {
	p := &recordingPersister{err: errors.New("disk full")}
	s := newTestStore(p)

	_, err := s.Add(Draft{Text: "still here"})
	if err == nil {
		t.Fatal("expected persist error")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_TasksReturnsCopy(t *testing.T) {
	s := newTestStore(nil)
	s.Add(Draft{Text: "original"})

	got := s.Tasks()
	got[0].Text = "changed"
	if s.Tasks()[0].Text != "original" {
		t.Error("Tasks() exposed internal slice")
	}
}

func TestStore_DuplicateGeneratedIDsAreSkipped(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	i := 0
	s := NewStore(nil, nil, WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))
	first, _ := s.Add(Draft{Text: "one"})
	second, _ := s.Add(Draft{Text: "two"})
	if first.ID != "dup" || second.ID != "fresh" {
		t.Errorf("ids = %q, %q", first.ID, second.ID)
	}
}

func TestStore_DefaultIDsAreUnique(t *testing.T) {
	s := NewStore(nil, nil)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		added, err := s.Add(Draft{Text: fmt.Sprintf("task %d", i)})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if seen[added.ID] {
			t.Fatalf("duplicate id %q", added.ID)
		}
		seen[added.ID] = true
	}
}
