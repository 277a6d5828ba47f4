package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollis/taskflow/internal/db"
	"github.com/hollis/taskflow/internal/hierarchy"
	"github.com/hollis/taskflow/internal/model"
	"github.com/hollis/taskflow/internal/ui/theme"
)

// Local message types for the tasks view
type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

type taskMutatedMsg struct{ err error }

// TasksMode is the input mode of the tasks view
type TasksMode int

const (
	TasksModeNormal TasksMode = iota
	TasksModeAdd
)

// dateFilters is the cycle order for the due-date filter
var dateFilters = []hierarchy.DateFilter{
	hierarchy.DateAll,
	hierarchy.DateOverdue,
	hierarchy.DateDueToday,
	hierarchy.DateDueThisWeek,
	hierarchy.DateNoDueDate,
}

// visibleRow is one flattened line of the rendered forest
type visibleRow struct {
	task  model.Task
	depth int
}

// TasksView shows the task forest with filters and quick add
type TasksView struct {
	db     *db.DB
	width  int
	height int

	tasks  []model.Task
	filter hierarchy.Filter
	dfIdx  int

	rows   []visibleRow
	cursor int

	mode  TasksMode
	input textinput.Model

	errMsg string
}

// NewTasksView creates a new tasks view
func NewTasksView(database *db.DB) TasksView {
	ti := textinput.New()
	ti.Placeholder = "Task text, e.g. \"Buy groceries @Errands due:tomorrow\""
	ti.CharLimit = 200

	return TasksView{db: database, input: ti}
}

// Init initializes the tasks view
func (v TasksView) Init() tea.Cmd {
	return v.loadTasks()
}

// SetSize sets the view dimensions
func (v TasksView) SetSize(width, height int) TasksView {
	v.width = width
	v.height = height
	v.input.Width = width - 4
	return v
}

// IsInputMode reports whether keystrokes should go to the input field
func (v TasksView) IsInputMode() bool {
	return v.mode == TasksModeAdd
}

func (v TasksView) loadTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := v.db.GetTasks()
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

// Reload asks the view to refetch its snapshot
func (v TasksView) Reload() tea.Cmd {
	return v.loadTasks()
}

// rebuild flattens the filtered forest into renderable rows
func (v *TasksView) rebuild() {
	filtered := v.filter.Apply(v.tasks, time.Now())
	roots := hierarchy.BuildForest(filtered)

	v.rows = v.rows[:0]
	hierarchy.Walk(roots, func(n *hierarchy.Node, depth int) {
		v.rows = append(v.rows, visibleRow{task: n.Task, depth: depth})
	})
	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// Update handles messages
func (v TasksView) Update(msg tea.Msg) (TasksView, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.tasks = msg.tasks
		v.rebuild()
		return v, nil

	case taskMutatedMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		return v, v.loadTasks()

	case tea.KeyMsg:
		if v.mode == TasksModeAdd {
			return v.updateAddMode(msg)
		}
		return v.updateNormalMode(msg)
	}
	return v, nil
}

func (v TasksView) updateAddMode(msg tea.KeyMsg) (TasksView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = TasksModeNormal
		v.input.Blur()
		return v, nil
	case "enter":
		text := strings.TrimSpace(v.input.Value())
		v.mode = TasksModeNormal
		v.input.SetValue("")
		v.input.Blur()
		if text == "" {
			return v, nil
		}
		return v, v.createTask(text)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v TasksView) updateNormalMode(msg tea.KeyMsg) (TasksView, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "j", "down":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		if len(v.rows) > 0 {
			v.cursor = len(v.rows) - 1
		}
	case "a":
		v.mode = TasksModeAdd
		v.input.Focus()
		return v, textinput.Blink
	case "tab":
		if v.cursor < len(v.rows) {
			id := v.rows[v.cursor].task.ID
			return v, v.toggleTask(id)
		}
	case "f":
		v.dfIdx = (v.dfIdx + 1) % len(dateFilters)
		v.filter.Date = dateFilters[v.dfIdx]
		v.rebuild()
	case "c":
		v.filter.HideCompleted = !v.filter.HideCompleted
		v.rebuild()
	case "t":
		v.cycleTagFilter()
		v.rebuild()
	case "r":
		return v, v.loadTasks()
	}
	return v, nil
}

// cycleTagFilter steps through All plus every distinct tag in the
// current snapshot, in first-seen order
func (v *TasksView) cycleTagFilter() {
	var tags []string
	seen := map[string]bool{}
	for _, t := range v.tasks {
		if t.Tag != "" && !seen[t.Tag] {
			seen[t.Tag] = true
			tags = append(tags, t.Tag)
		}
	}
	if len(tags) == 0 {
		v.filter.Tag = ""
		return
	}
	if v.filter.Tag == "" {
		v.filter.Tag = tags[0]
		return
	}
	for i, tag := range tags {
		if tag == v.filter.Tag {
			if i+1 < len(tags) {
				v.filter.Tag = tags[i+1]
			} else {
				v.filter.Tag = ""
			}
			return
		}
	}
	v.filter.Tag = ""
}

func (v TasksView) toggleTask(id string) tea.Cmd {
	return func() tea.Msg {
		return taskMutatedMsg{err: v.db.ToggleTask(id)}
	}
}

func (v TasksView) createTask(text string) tea.Cmd {
	return func() tea.Msg {
		parsed := ParseQuickAdd(text)
		_, err := v.db.CreateTask(parsed.Text, parsed.Tag, parsed.DueDate)
		return taskMutatedMsg{err: err}
	}
}

// View renders the task forest
func (v TasksView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	s := theme.Current.Styles
	t := theme.Current.Theme
	now := time.Now()

	var lines []string
	lines = append(lines, s.PanelTitle.Render("Tasks")+"  "+s.Label.Render(v.filterSummary()))

	if v.errMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	}

	if v.mode == TasksModeAdd {
		lines = append(lines, v.input.View())
	}

	if len(v.rows) == 0 {
		lines = append(lines, s.Subtitle.Render("No tasks match the current filters."))
	}

	listHeight := v.height - len(lines) - 2
	if listHeight < 1 {
		listHeight = 1
	}
	start := 0
	if v.cursor >= listHeight {
		start = v.cursor - listHeight + 1
	}
	end := start + listHeight
	if end > len(v.rows) {
		end = len(v.rows)
	}

	for i := start; i < end; i++ {
		lines = append(lines, v.renderRow(v.rows[i], i == v.cursor, now))
	}

	lines = append(lines, s.Footer.Render("a: add • tab: toggle • f: date filter • t: tag filter • c: hide done"))
	return strings.Join(lines, "\n")
}

func (v TasksView) filterSummary() string {
	parts := []string{"date: " + string(dateFilters[v.dfIdx])}
	if v.filter.Tag != "" {
		parts = append(parts, "tag: "+v.filter.Tag)
	}
	if v.filter.HideCompleted {
		parts = append(parts, "hiding done")
	}
	return strings.Join(parts, " • ")
}

func (v TasksView) renderRow(row visibleRow, selected bool, now time.Time) string {
	s := theme.Current.Styles

	task := row.task
	checkbox := "☐"
	if task.Completed {
		checkbox = "☑"
	}

	style := s.TaskNormal
	if task.Completed {
		style = s.TaskDone
	} else if task.IsOverdue(now) {
		style = s.TaskOverdue
	}

	indent := strings.Repeat("  ", row.depth)
	line := fmt.Sprintf("%s%s %s", indent, checkbox, style.Render(task.Text))
	line += " " + s.Tag.Render("#"+task.DisplayTag())
	if task.DueDate != nil {
		line += " " + s.DueDate.Render(model.RelativeDays(now, *task.DueDate))
	}

	if selected {
		return s.TaskCursor.Render(line)
	}
	return line
}
