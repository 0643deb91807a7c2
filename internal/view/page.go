// Package view derives what the screen shows from the task list and the
// current filter: counts, progress, badges and the empty-state choice. The
// terminal UI and the HTML export both draw from the same Page.
package view

import (
	"fmt"
	"math"
	"time"

	"taskflow/internal/task"
)

const (
	DefaultCategoryIcon = "📌"
	DateIcon            = "📅"
	EmptyIcon           = "📝"

	NoTasksText    = "No tasks yet. Add one above!"
	NoMatchesText  = "No matching tasks found"
	dueLabelLayout = "Jan 2"
)

var categoryIcons = map[string]string{
	"work":     "💼",
	"personal": "🏠",
	"shopping": "🛒",
	"health":   "💪",
}

// CategoryIcon falls back to a pin for categories outside the known set.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return DefaultCategoryIcon
}

type Empty int

const (
	EmptyNone Empty = iota
	EmptyNoTasks
	EmptyNoMatches
)

type Summary struct {
	task.Counts
	Percent int
}

// ProgressText is the "<c> of <n> completed" caption.
func (s Summary) ProgressText() string {
	return fmt.Sprintf("%d of %d completed", s.Completed, s.Total)
}

type Badge struct {
	Icon    string
	Label   string
	Overdue bool
}

type Row struct {
	ID        string
	Text      string
	Completed bool
	Priority  task.Priority
	Category  *Badge
	Due       *Badge
}

// CheckLabel is the accessible label of the row's completion control.
func (r Row) CheckLabel() string {
	if r.Completed {
		return "Mark incomplete"
	}
	return "Mark complete"
}

type Page struct {
	Summary Summary
	Filter  task.Filter
	Empty   Empty
	Rows    []Row
}

// Build derives the page for all tasks under f. today fixes both the
// calendar day used for overdue checks and the local time zone.
func Build(all []task.Task, f task.Filter, today time.Time) Page {
	counts := task.CountOf(all)
	p := Page{
		Summary: Summary{Counts: counts, Percent: Percent(counts.Completed, counts.Total)},
		Filter:  f,
	}
	if len(all) == 0 {
		p.Empty = EmptyNoTasks
		return p
	}
	visible := f.Apply(all)
	if len(visible) == 0 {
		p.Empty = EmptyNoMatches
		return p
	}
	p.Rows = make([]Row, 0, len(visible))
	for _, t := range visible {
		p.Rows = append(p.Rows, NewRow(t, today))
	}
	return p
}

func NewRow(t task.Task, today time.Time) Row {
	r := Row{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Priority:  task.NormalizePriority(string(t.Priority)),
	}
	if t.HasCategory() {
		r.Category = &Badge{Icon: CategoryIcon(t.Category), Label: t.Category}
	}
	if t.DueDate != nil {
		r.Due = &Badge{
			Icon:    DateIcon,
			Label:   DueLabel(*t.DueDate),
			Overdue: Overdue(*t.DueDate, t.Completed, today),
		}
	}
	return r
}

// Percent rounds half up and is 0 for an empty list.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(100*float64(completed)/float64(total) + 0.5))
}

// Overdue reports whether due is a calendar day before today's, in today's
// location, for a task that is still open.
func Overdue(due task.Date, completed bool, today time.Time) bool {
	if completed {
		return false
	}
	return due.Before(task.DateOf(today))
}

// DueLabel formats a due date as abbreviated month and day, e.g. "Mar 4".
func DueLabel(d task.Date) string {
	return d.In(time.UTC).Format(dueLabelLayout)
}
