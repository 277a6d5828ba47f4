package ui

// View represents the current active view
type View int

const (
	ViewAgenda View = iota
	ViewTasks
	ViewSummary
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewAgenda:
		return "Agenda"
	case ViewTasks:
		return "Tasks"
	case ViewSummary:
		return "Summary"
	default:
		return "Unknown"
	}
}

// Messages for inter-component communication

// AlertsTickMsg drives the periodic re-read of the sink's live queue
type AlertsTickMsg struct{}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// RefreshMsg requests a reload of every view's snapshot
type RefreshMsg struct{}
