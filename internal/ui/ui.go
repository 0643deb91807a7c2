package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskflow/internal/config"
	"taskflow/internal/task"
	"taskflow/internal/theme"
	"taskflow/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
)

type formField int

const (
	fieldText formField = iota
	fieldDue
	fieldCategory
	fieldPriority
	fieldCount
)

// ThemeStore loads and persists the theme preference.
type ThemeStore interface {
	LoadTheme() (theme.Theme, bool)
	SaveTheme(theme.Theme) error
}

type Options struct {
	Store         *task.Store
	Themes        ThemeStore
	Config        config.Config
	OSPrefersDark bool
	Logger        *log.Logger
	// Now defaults to time.Now and fixes "today" for overdue badges.
	Now func() time.Time
}

// Model is the interaction layer. It owns the ephemeral filter state and the
// add form; all task mutations go through the store.
type Model struct {
	store  *task.Store
	themes ThemeStore
	cfg    config.Config
	keys   keyMap
	logger *log.Logger
	now    func() time.Time

	filter          task.Filter
	pendingPriority task.Priority
	formCategory    int

	mode    mode
	field   formField
	text    textinput.Model
	due     textinput.Model
	search  textinput.Model
	bar     progress.Model
	help    help.Model
	theme   theme.Theme
	styles  styles
	page    view.Page
	cursor  int
	status  string
	width   int
	delID   string
	delText string
}

func New(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	saved, ok := opts.Themes.LoadTheme()
	th := theme.Resolve(saved, ok, opts.OSPrefersDark)

	text := textinput.New()
	text.Placeholder = "What needs to be done?"
	text.CharLimit = 256
	text.Width = 40

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	due.Width = 12

	search := textinput.New()
	search.Placeholder = "Search tasks"
	search.Prompt = "/ "
	search.CharLimit = 128
	search.Width = 30

	m := Model{
		store:           opts.Store,
		themes:          opts.Themes,
		cfg:             opts.Config,
		keys:            newKeyMap(opts.Config.Keys),
		logger:          logger,
		now:             now,
		filter:          task.DefaultFilter(),
		pendingPriority: task.PriorityLow,
		mode:            modeList,
		text:            text,
		due:             due,
		search:          search,
		bar:             progress.New(progress.WithoutPercentage(), progress.WithWidth(30)),
		help:            help.New(),
		status:          "Press 'a' to add, space to toggle, 'd' to delete.",
	}
	m.setTheme(th)
	m.refresh()
	return m
}

func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.delID != "" {
			return m.updateDeleteConfirm(msg)
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeSearch:
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.text.Width = max(msg.Width-20, 10)
		m.search.Width = max(msg.Width-10, 10)
		m.bar.Width = max(min(msg.Width-10, 60), 10)
		m.help.Width = msg.Width
	}
	return m, nil
}

// refresh re-derives the visible page from the store and the filter.
func (m *Model) refresh() {
	m.page = view.Build(m.store.Tasks(), m.filter, m.now())
	m.cursor = clampCursor(m.cursor, len(m.page.Rows))
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(m.page.Rows))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(m.page.Rows))
	case key.Matches(msg, m.keys.Add):
		m.mode = modeForm
		m.field = fieldText
		m.status = "Add task: enter to save, tab to move between fields, esc to cancel"
		cmd := m.focusField()
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.status = "Search: enter to keep, esc to clear"
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.StatusAll):
		m.setStatus(task.StatusAll)
	case key.Matches(msg, m.keys.StatusActive):
		m.setStatus(task.StatusActive)
	case key.Matches(msg, m.keys.StatusCompleted):
		m.setStatus(task.StatusCompleted)
	case key.Matches(msg, m.keys.NextStatus):
		m.setStatus(m.filter.Status.Next())
	case key.Matches(msg, m.keys.NextCategory):
		m.setCategory(cycleCategory(m.filter.Category, 1))
	case key.Matches(msg, m.keys.PrevCategory):
		m.setCategory(cycleCategory(m.filter.Category, -1))
	case key.Matches(msg, m.keys.Priority):
		m.pendingPriority = m.pendingPriority.Next()
		m.status = fmt.Sprintf("New tasks get %s priority", m.pendingPriority)
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.selectedID(); ok {
			m = m.dispatch(view.ActionToggle, id)
		}
	case key.Matches(msg, m.keys.Delete):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		if !m.cfg.ConfirmDelete {
			return m.dispatch(view.ActionDelete, id), nil
		}
		m.delID = id
		m.delText = m.page.Rows[m.cursor].Text
		m.status = fmt.Sprintf("Delete %q? y/n", sanitize(m.delText))
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		id := m.delID
		m.delID, m.delText = "", ""
		return m.dispatch(view.ActionDelete, id), nil
	case key.Matches(msg, m.keys.No):
		m.delID, m.delText = "", ""
		m.status = "Delete cancelled"
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		m.text.SetValue("")
		m.due.SetValue("")
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.submit()
	case key.Matches(msg, m.keys.NextField):
		m.field = (m.field + 1) % fieldCount
		cmd := m.focusField()
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		m.field = (m.field + fieldCount - 1) % fieldCount
		cmd := m.focusField()
		return m, cmd
	}

	switch m.field {
	case fieldText:
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	case fieldDue:
		var cmd tea.Cmd
		m.due, cmd = m.due.Update(msg)
		return m, cmd
	case fieldCategory:
		if key.Matches(msg, m.keys.Right) {
			m.formCategory = wrapIndex(m.formCategory+1, len(formCategories()))
		} else if key.Matches(msg, m.keys.Left) {
			m.formCategory = wrapIndex(m.formCategory-1, len(formCategories()))
		}
	case fieldPriority:
		if key.Matches(msg, m.keys.Right) {
			m.pendingPriority = m.pendingPriority.Next()
		} else if key.Matches(msg, m.keys.Left) {
			m.pendingPriority = m.pendingPriority.Prev()
		}
	}
	return m, nil
}

// submit adds the drafted task. Blank text is ignored without a message. An
// unparseable due date is dropped rather than rejected. Category and
// priority keep their values for the next task.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.text.Value())
	if text == "" {
		return m, nil
	}
	var due *task.Date
	if raw := strings.TrimSpace(m.due.Value()); raw != "" {
		if d, err := task.ParseDate(raw); err == nil {
			due = &d
		} else {
			m.logger.Debug("ignoring due date", "value", raw, "err", err)
		}
	}
	added, err := m.store.Add(task.Draft{
		Text:     text,
		DueDate:  due,
		Category: formCategories()[m.formCategory],
		Priority: m.pendingPriority,
	})
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		m.logger.Error("add task", "err", err)
	} else {
		m.status = "Added task"
		m.logger.Info("added task", "id", added.ID, "priority", added.Priority)
	}
	m.text.SetValue("")
	m.due.SetValue("")
	m.closeForm()
	m.cursor = 0
	m.refresh()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeList
		m.search.Blur()
		m.status = searchStatus(m.filter.Query)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.search.Blur()
		m.search.SetValue("")
		m.filter.Query = ""
		m.status = "Search cleared"
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Query = m.search.Value()
	m.refresh()
	return m, cmd
}

func (m *Model) focusField() tea.Cmd {
	m.text.Blur()
	m.due.Blur()
	switch m.field {
	case fieldText:
		return m.text.Focus()
	case fieldDue:
		return m.due.Focus()
	}
	return nil
}

func (m *Model) closeForm() {
	m.mode = modeList
	m.field = fieldText
	m.text.Blur()
	m.due.Blur()
}

func (m *Model) setStatus(s task.Status) {
	m.filter.Status = s
	m.refresh()
	m.status = fmt.Sprintf("Showing %s tasks", s)
}

func (m *Model) setCategory(c string) {
	m.filter.Category = c
	m.refresh()
	m.status = fmt.Sprintf("Category: %s", c)
}

func (m *Model) setTheme(t theme.Theme) {
	m.theme = t
	m.styles = newStyles(t)
	m.bar.FullColor = string(m.styles.palette.Accent)
	m.bar.EmptyColor = string(m.styles.palette.Dim)
}

func (m *Model) toggleTheme() {
	m.setTheme(m.theme.Toggle())
	if err := m.themes.SaveTheme(m.theme); err != nil {
		m.status = fmt.Sprintf("theme save failed: %v", err)
		m.logger.Error("save theme", "err", err)
		return
	}
	m.status = fmt.Sprintf("Theme: %s", m.theme)
}

func (m Model) selectedID() (string, bool) {
	if len(m.page.Rows) == 0 {
		return "", false
	}
	return m.page.Rows[clampCursor(m.cursor, len(m.page.Rows))].ID, true
}

// Theme reports the active display theme.
func (m Model) Theme() theme.Theme {
	return m.theme
}

// Filter reports the current view restriction.
func (m Model) Filter() task.Filter {
	return m.filter
}

func (m Model) PendingPriority() task.Priority {
	return m.pendingPriority
}

// categoryChips lists the chip values in display order, "all" first.
func categoryChips() []string {
	return append([]string{task.CategoryAll}, task.Categories...)
}

// formCategories lists the add-form choices, "" meaning no category.
func formCategories() []string {
	return append([]string{""}, task.Categories...)
}

func cycleCategory(current string, step int) string {
	chips := categoryChips()
	idx := 0
	for i, c := range chips {
		if c == current {
			idx = i
			break
		}
	}
	return chips[wrapIndex(idx+step, len(chips))]
}

func searchStatus(q string) string {
	if strings.TrimSpace(q) == "" {
		return "Showing all matches"
	}
	return fmt.Sprintf("Filtering by %q", q)
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
