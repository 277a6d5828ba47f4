package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollis/taskflow/internal/calendar"
	"github.com/hollis/taskflow/internal/db"
	"github.com/hollis/taskflow/internal/model"
	"github.com/hollis/taskflow/internal/ui/theme"
)

// agendaLoadedMsg carries a loaded snapshot into the agenda view
type agendaLoadedMsg struct {
	tasks     []model.Task
	schedules []model.Schedule
	err       error
}

// AgendaView shows the synthesized event stream: the next upcoming
// event up top, then everything from today forward
type AgendaView struct {
	db     *db.DB
	width  int
	height int

	windowYears int
	result      calendar.Result
	cursor      int
	errMsg      string
}

// NewAgendaView creates a new agenda view
func NewAgendaView(database *db.DB, windowYears int) AgendaView {
	return AgendaView{db: database, windowYears: windowYears}
}

// Init initializes the agenda view
func (v AgendaView) Init() tea.Cmd {
	return v.loadSnapshot()
}

// SetSize sets the view dimensions
func (v AgendaView) SetSize(width, height int) AgendaView {
	v.width = width
	v.height = height
	return v
}

func (v AgendaView) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		tasks, err := v.db.GetTasks()
		if err != nil {
			return agendaLoadedMsg{err: err}
		}
		schedules, err := v.db.GetSchedules()
		if err != nil {
			return agendaLoadedMsg{err: err}
		}
		return agendaLoadedMsg{tasks: tasks, schedules: schedules}
	}
}

// Update handles messages
func (v AgendaView) Update(msg tea.Msg) (AgendaView, tea.Cmd) {
	switch msg := msg.(type) {
	case agendaLoadedMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		v.errMsg = ""
		v.result = calendar.Synthesize(msg.tasks, msg.schedules, time.Now(), v.windowYears)
		v.cursor = 0
		return v, nil

	case tea.KeyMsg:
		upcoming := v.upcoming()
		switch msg.String() {
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		case "j", "down":
			if v.cursor < len(upcoming)-1 {
				v.cursor++
			}
		case "g":
			v.cursor = 0
		case "G":
			if len(upcoming) > 0 {
				v.cursor = len(upcoming) - 1
			}
		case "r":
			return v, v.loadSnapshot()
		}
	}
	return v, nil
}

// Reload asks the view to refetch its snapshot
func (v AgendaView) Reload() tea.Cmd {
	return v.loadSnapshot()
}

// upcoming returns the events starting today or later
func (v AgendaView) upcoming() []model.CalendarEvent {
	today := model.StartOfDay(time.Now())
	events := v.result.Events
	for i := range events {
		if !events[i].Start.Before(today) {
			return events[i:]
		}
	}
	return nil
}

// View renders the agenda
func (v AgendaView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	s := theme.Current.Styles
	t := theme.Current.Theme

	var sections []string

	if v.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Error).Render(v.errMsg))
	}

	sections = append(sections, v.renderNextUpcoming())

	upcoming := v.upcoming()
	listHeight := v.height - lipgloss.Height(sections[len(sections)-1]) - 3
	if listHeight < 1 {
		listHeight = 1
	}

	var lines []string
	lines = append(lines, s.PanelTitle.Render("Upcoming"))
	if len(upcoming) == 0 {
		lines = append(lines, s.Subtitle.Render("No upcoming tasks with due dates or schedule blocks."))
	} else {
		start := 0
		if v.cursor >= listHeight {
			start = v.cursor - listHeight + 1
		}
		end := start + listHeight
		if end > len(upcoming) {
			end = len(upcoming)
		}
		for i := start; i < end; i++ {
			lines = append(lines, v.renderEvent(upcoming[i], i == v.cursor))
		}
	}
	sections = append(sections, strings.Join(lines, "\n"))

	hint := s.Footer.Render("j/k: navigate • r: refresh")
	sections = append(sections, hint)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderNextUpcoming draws the "ambient" widget with the single next
// event at or after this moment
func (v AgendaView) renderNextUpcoming() string {
	s := theme.Current.Styles

	next := v.result.NextUpcoming
	if next == nil {
		return s.Panel.Render(s.Subtitle.Render("Nothing coming up."))
	}

	var when string
	if next.AllDay {
		when = "Due " + next.Start.Format("Monday, January 2")
	} else {
		when = "Starts " + next.Start.Format("Mon Jan 2 15:04")
		if !next.End.Equal(next.Start) {
			when += " - " + next.End.Format("15:04")
		}
	}

	kind := "Task"
	if next.Source == model.SourceScheduleBlock {
		kind = "Schedule Block"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.PanelTitle.Render("Next Upcoming"),
		s.TaskNormal.Render(next.Title),
		s.Label.Render(when),
		s.Subtitle.Render("Type: "+kind),
	)
	return s.Panel.Render(content)
}

func (v AgendaView) renderEvent(ev model.CalendarEvent, selected bool) string {
	s := theme.Current.Styles
	t := theme.Current.Theme

	var when string
	if ev.AllDay {
		when = ev.Start.Format("Mon Jan 02") + "  all day "
	} else {
		when = ev.Start.Format("Mon Jan 02 15:04") + "-" + ev.End.Format("15:04")
	}

	marker := lipgloss.NewStyle().Foreground(t.EventSchedule).Render("◆")
	if ev.Source == model.SourceTask {
		marker = lipgloss.NewStyle().Foreground(t.EventTask).Render("●")
	}

	title := ev.Title
	maxLen := v.width - len(when) - 6
	if maxLen > 3 && len(title) > maxLen {
		title = title[:maxLen-3] + "..."
	}

	line := fmt.Sprintf("%s %s  %s", marker, s.Label.Render(when), title)
	if selected {
		return s.TaskCursor.Render(line)
	}
	return line
}
