package ui

import (
	"fmt"

	"taskflow/internal/task"
	"taskflow/internal/view"
)

// rowAction mutates the store for one task id and returns the status line.
type rowAction func(s *task.Store, id string) (string, error)

// rowActions is keyed by the same action names the HTML export puts in
// data-action attributes. Handlers receive the id at dispatch time, so a
// rebuilt row list can never leave one pointing at a stale task.
var rowActions = map[string]rowAction{
	view.ActionToggle: func(s *task.Store, id string) (string, error) {
		if err := s.Toggle(id); err != nil {
			return "", err
		}
		if t, ok := s.Get(id); ok && t.Completed {
			return "Completed task", nil
		}
		return "Reopened task", nil
	},
	view.ActionDelete: func(s *task.Store, id string) (string, error) {
		return "Deleted task", s.Remove(id)
	},
}

func (m Model) dispatch(action, id string) Model {
	handler, ok := rowActions[action]
	if !ok {
		m.logger.Warn("unknown row action", "action", action)
		return m
	}
	status, err := handler(m.store, id)
	if err != nil {
		m.status = fmt.Sprintf("%s failed: %v", action, err)
		m.logger.Error("row action", "action", action, "id", id, "err", err)
	} else {
		m.status = status
		m.logger.Debug("row action", "action", action, "id", id)
	}
	m.refresh()
	return m
}
