package view

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"taskflow/internal/task"
	"taskflow/internal/theme"
)

// Action names carried by row controls in data-action attributes.
const (
	ActionToggle = "toggle"
	ActionDelete = "delete"
)

// RenderHTML writes p as a standalone document. Every piece of user text
// becomes a text node, so html.Render escapes it.
func RenderHTML(w io.Writer, p Page, th theme.Theme) error {
	if err := html.Render(w, Document(p, th)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func Document(p Page, th theme.Theme) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	bodyClass := ""
	if th.IsDark() {
		bodyClass = "dark"
	}
	doc.AppendChild(el(atom.Html, attrs("lang", "en"),
		el(atom.Head, nil,
			el(atom.Meta, attrs("charset", "utf-8")),
			el(atom.Title, nil, text("TaskFlow")),
		),
		el(atom.Body, attrs("class", bodyClass),
			el(atom.Main, attrs("class", "app"),
				progressNode(p.Summary),
				tabsNode(p.Summary, p.Filter.Status),
				chipsNode(p.Filter.Category),
				listNode(p),
			),
		),
	))
	return doc
}

func progressNode(s Summary) *html.Node {
	return el(atom.Section, attrs("class", "progress"),
		el(atom.Span, attrs("id", "progressText"), text(s.ProgressText())),
		el(atom.Span, attrs("id", "progressPercent"), text(strconv.Itoa(s.Percent)+"%")),
		el(atom.Div, attrs("class", "progress-bar"),
			el(atom.Div, attrs("id", "progressFill", "style", "width: "+strconv.Itoa(s.Percent)+"%")),
		),
	)
}

func tabsNode(s Summary, active task.Status) *html.Node {
	counts := map[task.Status]int{
		task.StatusAll:       s.Total,
		task.StatusActive:    s.Active,
		task.StatusCompleted: s.Completed,
	}
	nav := el(atom.Nav, attrs("class", "tabs"))
	for _, st := range task.Statuses {
		nav.AppendChild(el(atom.Button, attrs("class", classes("tab-btn", st == active, "active"), "data-status", string(st)),
			text(Title(string(st))+" "),
			el(atom.Span, attrs("class", "count", "id", string(st)+"Count"), text(strconv.Itoa(counts[st]))),
		))
	}
	return nav
}

func chipsNode(active string) *html.Node {
	if active == "" {
		active = task.CategoryAll
	}
	div := el(atom.Div, attrs("class", "chips"))
	for _, c := range append([]string{task.CategoryAll}, task.Categories...) {
		label := "All"
		if c != task.CategoryAll {
			label = CategoryIcon(c) + " " + Title(c)
		}
		div.AppendChild(el(atom.Button, attrs("class", classes("chip", c == active, "active"), "data-filter", c), text(label)))
	}
	return div
}

func listNode(p Page) *html.Node {
	ul := el(atom.Ul, attrs("id", "todoList", "class", "todo-list"))
	switch p.Empty {
	case EmptyNoTasks:
		ul.AppendChild(el(atom.Li, attrs("class", "empty-state"),
			el(atom.Div, attrs("class", "empty-icon"), text(EmptyIcon)),
			el(atom.P, nil, text(NoTasksText)),
		))
	case EmptyNoMatches:
		ul.AppendChild(el(atom.Li, attrs("class", "no-results"), text(NoMatchesText)))
	default:
		for _, r := range p.Rows {
			ul.AppendChild(rowNode(r))
		}
	}
	return ul
}

func rowNode(r Row) *html.Node {
	cls := "todo-item priority-" + string(r.Priority)
	if r.Completed {
		cls += " completed"
	}
	content := el(atom.Div, attrs("class", "todo-content"),
		el(atom.Span, attrs("class", "todo-text"), text(r.Text)),
	)
	if r.Category != nil || r.Due != nil {
		meta := el(atom.Div, attrs("class", "todo-meta"))
		if r.Category != nil {
			meta.AppendChild(el(atom.Span, attrs("class", "meta-badge category"),
				text(r.Category.Icon+" "+r.Category.Label)))
		}
		if r.Due != nil {
			meta.AppendChild(el(atom.Span, attrs("class", classes("meta-badge date", r.Due.Overdue, "overdue")),
				text(r.Due.Icon+" "+r.Due.Label)))
		}
		content.AppendChild(meta)
	}
	return el(atom.Li, attrs("class", cls, "data-id", r.ID),
		el(atom.Button, attrs("class", "check-btn", "aria-label", r.CheckLabel(), "data-action", ActionToggle, "data-id", r.ID)),
		content,
		el(atom.Button, attrs("class", "delete-btn", "aria-label", "Delete", "data-action", ActionDelete, "data-id", r.ID), text("×")),
	)
}

func el(a atom.Atom, as []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: as}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// attrs pairs up key/value arguments. Empty values are skipped.
func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

func classes(base string, on bool, extra string) string {
	if on {
		return base + " " + extra
	}
	return base
}

// Title capitalises a status or category name for display.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}
