package storage

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"taskflow/internal/task"
	"taskflow/internal/theme"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "taskflow.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetSetDelete(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v err %v", ok, err)
	}
	if err := s.Set("k", "one"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("k", "two"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := s.Get("k")
	if err != nil || !ok || v != "two" {
		t.Fatalf("Get(k) = %q, %v, %v", v, ok, err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("value survived Delete")
	}
}

func TestStore_ValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(ThemeKey, "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if v, ok, _ := reopened.Get(ThemeKey); !ok || v != "light" {
		t.Errorf("after reopen Get = %q, %v", v, ok)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func sampleTasks() []task.Task {
	due := task.Date{Year: 2026, Month: time.May, Day: 9}
	return []task.Task{
		{ID: "b", Text: "Buy milk", Category: "shopping", Priority: task.PriorityHigh, DueDate: &due,
			CreatedAt: time.UnixMilli(1767225600123)},
		{ID: "a", Text: "<b>bold</b> & co", Completed: true, Priority: task.PriorityLow,
			CreatedAt: time.UnixMilli(1767225500000)},
	}
}

func TestAdapter_TasksRoundTrip(t *testing.T) {
	for name, kv := range map[string]KV{"sqlite": openTestStore(t), "memory": NewMemoryKV()} {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(kv, discardLogger())
			want := sampleTasks()
			if err := a.SaveTasks(want); err != nil {
				t.Fatalf("SaveTasks: %v", err)
			}
			got := a.LoadTasks()
			if len(got) != len(want) {
				t.Fatalf("loaded %d tasks, want %d", len(got), len(want))
			}
			for i := range want {
				w, g := want[i], got[i]
				if g.ID != w.ID || g.Text != w.Text || g.Completed != w.Completed ||
					g.Category != w.Category || g.Priority != w.Priority || !g.CreatedAt.Equal(w.CreatedAt) {
					t.Errorf("task %d: got %+v, want %+v", i, g, w)
				}
				if (g.DueDate == nil) != (w.DueDate == nil) || (g.DueDate != nil && *g.DueDate != *w.DueDate) {
					t.Errorf("task %d due: got %v, want %v", i, g.DueDate, w.DueDate)
				}
			}
		})
	}
}

func TestAdapter_LoadTasksFailsClosed(t *testing.T) {
	tests := map[string]string{
		"malformed":   `[{"id":`,
		"object":      `{"id":"x"}`,
		"number":      `42`,
		"wrong field": `[{"id":"x","text":5}]`,
		"null":        `null`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			kv.Set(TasksKey, raw)
			got := NewAdapter(kv, discardLogger()).LoadTasks()
			if got == nil || len(got) != 0 {
				t.Errorf("LoadTasks() = %#v, want empty slice", got)
			}
		})
	}
}

func TestAdapter_LoadTasksMissingKey(t *testing.T) {
	got := NewAdapter(NewMemoryKV(), discardLogger()).LoadTasks()
	if got == nil || len(got) != 0 {
		t.Errorf("LoadTasks() = %#v, want empty slice", got)
	}
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("io error") }
func (failingKV) Set(string, string) error         { return errors.New("io error") }
func (failingKV) Delete(string) error              { return errors.New("io error") }

func TestAdapter_ReadErrorsDegrade(t *testing.T) {
	a := NewAdapter(failingKV{}, discardLogger())
	if got := a.LoadTasks(); len(got) != 0 {
		t.Errorf("LoadTasks() = %v", got)
	}
	if _, ok := a.LoadTheme(); ok {
		t.Error("LoadTheme() reported a theme from a failing store")
	}
	if err := a.SaveTasks(sampleTasks()); err == nil {
		t.Error("SaveTasks() swallowed write error")
	}
	if err := a.SaveTheme(theme.Dark); err == nil {
		t.Error("SaveTheme() swallowed write error")
	}
}

func TestDecodeTasks_Normalizes(t *testing.T) {
	raw := `[
		{"id":"1","text":"keep","completed":false,"dueDate":"not-a-date","category":"","priority":"urgent","createdAt":0},
		{"id":"","text":"no id"},
		{"id":"1","text":"duplicate"},
		{"id":"2","text":"plain","dueDate":null,"category":null,"priority":"medium","createdAt":5}
	]`
	got, err := DecodeTasks([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeTasks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tasks, want 2: %+v", len(got), got)
	}
	first := got[0]
	if first.Text != "keep" || first.DueDate != nil || first.HasCategory() || first.Priority != task.PriorityLow {
		t.Errorf("first = %+v", first)
	}
	if got[1].Priority != task.PriorityMedium {
		t.Errorf("second priority = %q", got[1].Priority)
	}
}

func TestEncodeTasks_WireFormat(t *testing.T) {
	data, err := EncodeTasks(sampleTasks()[1:])
	if err != nil {
		t.Fatalf("EncodeTasks: %v", err)
	}
	want := `[{"id":"a","text":"\u003cb\u003ebold\u003c/b\u003e \u0026 co","completed":true,"dueDate":null,"category":null,"priority":"low","createdAt":1767225500000}]`
	if string(data) != want {
		t.Errorf("EncodeTasks() =\n%s\nwant\n%s", data, want)
	}
}

func TestAdapter_Theme(t *testing.T) {
	kv := NewMemoryKV()
	a := NewAdapter(kv, discardLogger())

	if _, ok := a.LoadTheme(); ok {
		t.Fatal("expected no theme initially")
	}
	if err := a.SaveTheme(theme.Light); err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}
	if th, ok := a.LoadTheme(); !ok || th != theme.Light {
		t.Errorf("LoadTheme() = %q, %v", th, ok)
	}
	kv.Set(ThemeKey, "sepia")
	if _, ok := a.LoadTheme(); ok {
		t.Error("LoadTheme accepted an unknown value")
	}
}
