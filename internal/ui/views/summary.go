package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollis/taskflow/internal/db"
	"github.com/hollis/taskflow/internal/hierarchy"
	"github.com/hollis/taskflow/internal/model"
	"github.com/hollis/taskflow/internal/ui/theme"
)

// Local message type for the summary view
type summaryLoadedMsg struct {
	tasks []model.Task
	err   error
}

// SummaryView shows task counts, completion rates, and the upcoming
// and overdue lists
type SummaryView struct {
	db     *db.DB
	width  int
	height int

	stats    hierarchy.Stats
	upcoming []model.Task
	overdue  []model.Task

	errMsg string
}

// NewSummaryView creates a new summary view
func NewSummaryView(database *db.DB) SummaryView {
	return SummaryView{db: database}
}

// Init initializes the summary view
func (v SummaryView) Init() tea.Cmd {
	return v.loadSummary()
}

// SetSize sets the view dimensions
func (v SummaryView) SetSize(width, height int) SummaryView {
	v.width = width
	v.height = height
	return v
}

func (v SummaryView) loadSummary() tea.Cmd {
	return func() tea.Msg {
		tasks, err := v.db.GetTasks()
		return summaryLoadedMsg{tasks: tasks, err: err}
	}
}

// Reload asks the view to refetch its snapshot
func (v SummaryView) Reload() tea.Cmd {
	return v.loadSummary()
}

// Update handles messages
func (v SummaryView) Update(msg tea.Msg) (SummaryView, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		now := time.Now()
		v.stats = hierarchy.Summarize(msg.tasks, now)
		v.upcoming = hierarchy.Upcoming(msg.tasks, now)
		v.overdue = hierarchy.Overdue(msg.tasks, now)
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return v, v.loadSummary()
		}
	}
	return v, nil
}

// View renders the summary
func (v SummaryView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	s := theme.Current.Styles
	t := theme.Current.Theme
	now := time.Now()

	var lines []string
	lines = append(lines, s.PanelTitle.Render("Summary"))

	if v.errMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	}

	counts := fmt.Sprintf("Total: %d   Completed: %d   Pending: %d   Overdue: %d",
		v.stats.Total, v.stats.Completed, v.stats.Pending, v.stats.Overdue)
	lines = append(lines, s.Panel.Render(counts))

	rates := fmt.Sprintf("Completion rate: %d%%   Overdue rate: %d%%",
		v.stats.CompletionRate, v.stats.OverdueRate)
	lines = append(lines, s.Panel.Render(rates))

	lines = append(lines, "")
	lines = append(lines, s.Title.Render("Due in the next 7 days"))
	if len(v.upcoming) == 0 {
		lines = append(lines, s.Subtitle.Render("Nothing due this week."))
	}
	for _, task := range v.upcoming {
		lines = append(lines, v.renderTaskLine(task, s.DueDate, now))
	}

	lines = append(lines, "")
	lines = append(lines, s.Title.Render("Overdue"))
	if len(v.overdue) == 0 {
		lines = append(lines, s.Subtitle.Render("Nothing overdue."))
	}
	for _, task := range v.overdue {
		lines = append(lines, v.renderTaskLine(task, s.TaskOverdue, now))
	}

	lines = append(lines, "")
	lines = append(lines, s.Footer.Render("r: refresh"))
	return strings.Join(lines, "\n")
}

func (v SummaryView) renderTaskLine(task model.Task, dueStyle lipgloss.Style, now time.Time) string {
	s := theme.Current.Styles
	line := "  • " + s.TaskNormal.Render(task.Text) + " " + s.Tag.Render("#"+task.DisplayTag())
	if task.DueDate != nil {
		line += " " + dueStyle.Render(model.RelativeDays(now, *task.DueDate))
	}
	return line
}
