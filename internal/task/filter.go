package task

import "strings"

type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusAll, StatusActive, StatusCompleted}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAll, StatusActive, StatusCompleted:
		return st, true
	default:
		return StatusAll, false
	}
}

// Next cycles all -> active -> completed -> all.
func (s Status) Next() Status {
	for i, v := range Statuses {
		if v == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusAll
}

// Filter is the ephemeral view restriction. It is never persisted.
type Filter struct {
	Status   Status
	Category string
	Query    string
}

func DefaultFilter() Filter {
	return Filter{Status: StatusAll, Category: CategoryAll}
}

// Match reports whether t passes every part of the filter.
func (f Filter) Match(t Task) bool {
	switch f.Status {
	case StatusActive:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}
	if f.Category != "" && f.Category != CategoryAll && t.Category != f.Category {
		return false
	}
	q := strings.TrimSpace(f.Query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Text), strings.ToLower(f.Query))
}

// Apply returns the tasks passing f, preserving order. The input is not
// modified.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
