package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollis/taskflow/internal/alerts"
	"github.com/hollis/taskflow/internal/app"
	"github.com/hollis/taskflow/internal/ui/theme"
	"github.com/hollis/taskflow/internal/ui/views"
)

// Debug logging (enable by setting TASKFLOW_DEBUG=1)
var rootDebugLog *os.File

func init() {
	if os.Getenv("TASKFLOW_DEBUG") == "1" {
		rootDebugLog, _ = os.OpenFile("/tmp/taskflow-root-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

func rootDebugf(format string, args ...interface{}) {
	if rootDebugLog != nil {
		fmt.Fprintf(rootDebugLog, format+"\n", args...)
		rootDebugLog.Sync()
	}
}

const alertsPollInterval = 500 * time.Millisecond

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView View
	agendaView  views.AgendaView
	tasksView   views.TasksView
	summaryView views.SummaryView
	helpVisible bool

	// Live alert popups, as of the last poll
	alertQueue []alerts.Entry

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App, initial View) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:         application,
		keys:        DefaultKeyMap(),
		help:        h,
		currentView: initial,
		agendaView:  views.NewAgendaView(application.DB, application.Config.WindowYears),
		tasksView:   views.NewTasksView(application.DB),
		summaryView: views.NewSummaryView(application.DB),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewTasks:
		cmd = m.tasksView.Init()
	case ViewSummary:
		cmd = m.summaryView.Init()
	default:
		cmd = m.agendaView.Init()
	}
	rootDebugf("RootModel.Init() view=%v", m.currentView)
	return tea.Batch(cmd, alertsTick())
}

func alertsTick() tea.Cmd {
	return tea.Tick(alertsPollInterval, func(time.Time) tea.Msg {
		return AlertsTickMsg{}
	})
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.agendaView = m.agendaView.SetSize(m.width, contentHeight)
		m.tasksView = m.tasksView.SetSize(m.width, contentHeight)
		m.summaryView = m.summaryView.SetSize(m.width, contentHeight)

	case AlertsTickMsg:
		m.alertQueue = m.app.Sink.Queue()
		return m, alertsTick()

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := m.currentView == ViewTasks && m.tasksView.IsInputMode()

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		// Skip other global keys when in input mode
		if isInputMode {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.MuteToggle):
			muted := !m.app.Sink.Settings().Mute
			m.app.Sink.UpdateSettings(alerts.SettingsPatch{Mute: &muted})
			if muted {
				m.statusMsg = "Alerts muted"
			} else {
				m.statusMsg = "Alerts unmuted"
			}
			return m, nil

		case key.Matches(msg, m.keys.Dismiss):
			if len(m.alertQueue) > 0 {
				m.app.Sink.Dismiss(m.alertQueue[0].ID)
				m.alertQueue = m.app.Sink.Queue()
			}
			return m, nil

		// View switching
		case key.Matches(msg, m.keys.AgendaView):
			m.currentView = ViewAgenda
			return m, m.agendaView.Reload()
		case key.Matches(msg, m.keys.TasksView):
			m.currentView = ViewTasks
			return m, m.tasksView.Reload()
		case key.Matches(msg, m.keys.SummaryView):
			m.currentView = ViewSummary
			return m, m.summaryView.Reload()
		}

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case RefreshMsg:
		return m, tea.Batch(m.agendaView.Reload(), m.tasksView.Reload(), m.summaryView.Reload())
	}

	// Delegate to current view
	rootDebugf("Delegating %T to view %v", msg, m.currentView)
	switch m.currentView {
	case ViewAgenda:
		newView, cmd := m.agendaView.Update(msg)
		m.agendaView = newView
		cmds = append(cmds, cmd)
	case ViewTasks:
		newView, cmd := m.tasksView.Update(msg)
		m.tasksView = newView
		cmds = append(cmds, cmd)
	case ViewSummary:
		newView, cmd := m.summaryView.Update(msg)
		m.summaryView = newView
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.help.View(m.keys)
	} else {
		switch m.currentView {
		case ViewAgenda:
			content = m.agendaView.View()
		case ViewTasks:
			content = m.tasksView.View()
		case ViewSummary:
			content = m.summaryView.View()
		}
	}

	if len(m.alertQueue) > 0 {
		content = m.renderAlerts() + "\n" + content
	}

	// Pad content to fill available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

// renderAlerts renders live alert popups above the content area
func (m RootModel) renderAlerts() string {
	s := theme.Current.Styles
	t := theme.Current.Theme

	var lines []string
	for _, entry := range m.alertQueue {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Warning).Bold(true).Render("⚠ ")+entry.Message)
	}
	return s.AlertPopup.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("taskflow")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	var right string
	if m.app.Sink.Settings().Mute {
		right = viewStyle.Render("alerts: muted")
	} else {
		right = viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))
	}

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return leftSide + strings.Repeat(" ", gap) + right
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	hint := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	switch m.currentView {
	case ViewAgenda:
		line1 = hint("j/k", "navigate") + sep +
			hint("g/G", "top/bottom") + sep +
			hint("r", "refresh")
	case ViewTasks:
		if m.tasksView.IsInputMode() {
			line1 = hint("enter", "confirm") + sep + hint("esc", "cancel")
		} else {
			line1 = hint("a", "add") + sep +
				hint("tab", "done") + sep +
				hint("f", "date filter") + sep +
				hint("t", "tag filter") + sep +
				hint("c", "hide done")
		}
	case ViewSummary:
		line1 = hint("r", "refresh")
	}
	line2 = hint("1-3", "views") + sep +
		hint("m", "mute") + sep +
		hint("x", "dismiss alert") + sep +
		hint("ctrl+t", "theme") + sep +
		hint("?", "help") + sep +
		hint("q", "quit")

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	lines = append(lines, line1, line2)
	return strings.Join(lines, "\n")
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
