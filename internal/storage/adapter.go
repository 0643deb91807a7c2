package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"taskflow/internal/task"
	"taskflow/internal/theme"
)

const (
	TasksKey = "taskflow-todos"
	ThemeKey = "taskflow-theme"
)

// Adapter stores the task list and theme preference as JSON values in a KV.
// Reads never fail: anything unreadable degrades to the empty default.
type Adapter struct {
	kv     KV
	logger *log.Logger
}

func NewAdapter(kv KV, logger *log.Logger) *Adapter {
	return &Adapter{kv: kv, logger: logger}
}

type taskRecord struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	DueDate   *string `json:"dueDate"`
	Category  *string `json:"category"`
	Priority  string  `json:"priority"`
	CreatedAt int64   `json:"createdAt"`
}

func (a *Adapter) LoadTasks() []task.Task {
	raw, ok, err := a.kv.Get(TasksKey)
	if err != nil {
		a.logger.Warn("reading tasks failed, starting empty", "err", err)
		return []task.Task{}
	}
	if !ok {
		return []task.Task{}
	}
	tasks, err := DecodeTasks([]byte(raw))
	if err != nil {
		a.logger.Warn("stored tasks unreadable, starting empty", "err", err)
		return []task.Task{}
	}
	return tasks
}

func (a *Adapter) SaveTasks(tasks []task.Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := a.kv.Set(TasksKey, string(data)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	a.logger.Debug("saved tasks", "count", len(tasks))
	return nil
}

func (a *Adapter) LoadTheme() (theme.Theme, bool) {
	raw, ok, err := a.kv.Get(ThemeKey)
	if err != nil {
		a.logger.Warn("reading theme failed, using default", "err", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	return theme.Parse(raw)
}

func (a *Adapter) SaveTheme(t theme.Theme) error {
	if err := a.kv.Set(ThemeKey, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// EncodeTasks serialises tasks in store order.
func EncodeTasks(tasks []task.Task) ([]byte, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		r := taskRecord{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  string(task.NormalizePriority(string(t.Priority))),
			CreatedAt: t.CreatedAt.UnixMilli(),
		}
		if t.DueDate != nil {
			due := t.DueDate.String()
			r.DueDate = &due
		}
		if t.HasCategory() {
			cat := t.Category
			r.Category = &cat
		}
		records = append(records, r)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// DecodeTasks parses a stored task list. A null payload is an empty list.
// Records without an id and repeated ids are dropped; invalid optional fields
// are normalised away.
func DecodeTasks(data []byte) ([]task.Task, error) {
	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	tasks := make([]task.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}

		t := task.Task{
			ID:        r.ID,
			Text:      r.Text,
			Completed: r.Completed,
			Priority:  task.NormalizePriority(r.Priority),
			CreatedAt: time.UnixMilli(r.CreatedAt),
		}
		if r.DueDate != nil {
			if due, err := task.ParseDate(*r.DueDate); err == nil {
				t.DueDate = &due
			}
		}
		if r.Category != nil {
			t.Category = *r.Category
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
