package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyText = errors.New("task text is empty")

// Persister receives the full ordered task list after every mutation.
type Persister interface {
	SaveTasks(tasks []Task) error
}

// Store is the single in-memory owner of the ordered task list, newest first.
// It is not safe for concurrent use; the UI loop is its only caller.
type Store struct {
	tasks   []Task
	persist Persister
	now     func() time.Time
	newID   func() string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore takes ownership of a copy of tasks. A nil persister keeps the
// store purely in memory.
func NewStore(tasks []Task, p Persister, opts ...Option) *Store {
	s := &Store{
		tasks:   append([]Task(nil), tasks...),
		persist: p,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add prepends a new task built from d and persists. Blank text is rejected
// with ErrEmptyText and leaves the store untouched.
func (s *Store) Add(d Draft) (Task, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	t := Task{
		ID:        s.uniqueID(),
		Text:      text,
		DueDate:   d.DueDate,
		Category:  strings.TrimSpace(d.Category),
		Priority:  NormalizePriority(string(d.Priority)),
		CreatedAt: s.now(),
	}
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	s.tasks = append([]Task{t}, s.tasks...)
	return t, s.save()
}

// Toggle flips the completed flag of the task with the given id. Unknown ids
// are ignored.
func (s *Store) Toggle(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.save()
}

// Remove deletes the task with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return s.save()
}

// Tasks returns a copy of the list in store order.
func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Filtered is a read-only derivation of the visible tasks.
func (s *Store) Filtered(f Filter) []Task {
	return f.Apply(s.tasks)
}

func (s *Store) Counts() Counts {
	return CountOf(s.tasks)
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for i := 0; i < 8; i++ {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
	}
	return uuid.NewString()
}

func (s *Store) save() error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveTasks(s.Tasks()); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
