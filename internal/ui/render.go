package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"taskflow/internal/task"
	"taskflow/internal/view"
)

func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.Header.Render("TaskFlow"))
	b.WriteString(s.Dim.Render(fmt.Sprintf("  · %s theme", m.theme)))
	b.WriteString("\n\n")

	b.WriteString(m.renderProgress())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderChips())
	b.WriteString("\n")
	if m.mode == modeSearch || m.filter.Query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString(s.Separator.Render("───"))
	b.WriteString("\n")

	b.WriteString(m.renderList())
	b.WriteString(s.Separator.Render("───"))
	b.WriteString("\n")

	if m.mode == modeForm {
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	} else {
		b.WriteString(s.Dim.Render("New task priority: "))
		b.WriteString(s.Priority[m.pendingPriority].Render(string(m.pendingPriority)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	if m.mode == modeForm {
		b.WriteString(m.help.View(formHelp{m.keys}))
	} else {
		b.WriteString(m.help.View(listHelp{m.keys}))
	}
	return b.String()
}

func (m Model) renderProgress() string {
	sum := m.page.Summary
	return fmt.Sprintf("%s  %d%%\n%s",
		sum.ProgressText(), sum.Percent, m.bar.ViewAs(float64(sum.Percent)/100))
}

func (m Model) renderTabs() string {
	sum := m.page.Summary
	counts := map[task.Status]int{
		task.StatusAll:       sum.Total,
		task.StatusActive:    sum.Active,
		task.StatusCompleted: sum.Completed,
	}
	parts := make([]string, 0, len(task.Statuses))
	for _, st := range task.Statuses {
		label := fmt.Sprintf("%s (%d)", view.Title(string(st)), counts[st])
		if st == m.filter.Status {
			parts = append(parts, m.styles.Active.Render(label))
		} else {
			parts = append(parts, m.styles.Inactive.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderChips() string {
	chips := categoryChips()
	parts := make([]string, 0, len(chips))
	for _, c := range chips {
		label := "All"
		if c != task.CategoryAll {
			label = view.CategoryIcon(c) + " " + view.Title(c)
		}
		if c == m.filter.Category {
			parts = append(parts, m.styles.Active.Render("["+label+"]"))
		} else {
			parts = append(parts, m.styles.Inactive.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderList() string {
	switch m.page.Empty {
	case view.EmptyNoTasks:
		return m.styles.Dim.Render(view.EmptyIcon+" "+view.NoTasksText) + "\n"
	case view.EmptyNoMatches:
		return m.styles.Dim.Render(view.NoMatchesText) + "\n"
	}
	var b strings.Builder
	for i, r := range m.page.Rows {
		b.WriteString(m.renderRow(r, i == m.cursor && m.mode == modeList))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(r view.Row, selected bool) string {
	s := m.styles
	cursor := " "
	if selected {
		cursor = s.Cursor.Render(">")
	}
	checkbox := "[ ]"
	text := s.Text.Render(sanitize(r.Text))
	if r.Completed {
		checkbox = "[x]"
		text = s.Done.Render(sanitize(r.Text))
	}
	marker := s.Priority[r.Priority].Render("●")

	line := fmt.Sprintf("%s %s %s %s", cursor, checkbox, marker, text)
	if r.Category != nil {
		line += "  " + s.Badge.Render(r.Category.Icon+" "+sanitize(r.Category.Label))
	}
	if r.Due != nil {
		badge := r.Due.Icon + " " + r.Due.Label
		if r.Due.Overdue {
			line += "  " + s.Overdue.Render(badge+" overdue")
		} else {
			line += "  " + s.Badge.Render(badge)
		}
	}
	return line
}

func (m Model) renderForm() string {
	s := m.styles
	label := func(f formField, name string) string {
		if m.field == f {
			return s.FieldOn.Render("> " + name)
		}
		return s.Field.Render("  " + name)
	}

	var b strings.Builder
	b.WriteString(label(fieldText, "Task     "))
	b.WriteString(" ")
	b.WriteString(m.text.View())
	b.WriteString("\n")
	b.WriteString(label(fieldDue, "Due      "))
	b.WriteString(" ")
	b.WriteString(m.due.View())
	b.WriteString("\n")

	b.WriteString(label(fieldCategory, "Category "))
	b.WriteString(" ")
	opts := formCategories()
	for i, c := range opts {
		name := "none"
		if c != "" {
			name = view.CategoryIcon(c) + " " + c
		}
		if i == m.formCategory {
			b.WriteString(s.Active.Render("[" + name + "]"))
		} else {
			b.WriteString(s.Inactive.Render(" " + name + " "))
		}
	}
	b.WriteString("\n")

	b.WriteString(label(fieldPriority, "Priority "))
	b.WriteString(" ")
	for _, p := range task.Priorities {
		if p == m.pendingPriority {
			b.WriteString(s.Priority[p].Bold(true).Render("[" + string(p) + "]"))
		} else {
			b.WriteString(s.Inactive.Render(" " + string(p) + " "))
		}
	}
	return b.String()
}

// sanitize keeps user text literal on the terminal: escape sequences are
// stripped and line breaks flattened so a task can only ever occupy its row.
func sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}
