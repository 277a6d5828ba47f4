package theme

import "github.com/charmbracelet/lipgloss"

// Default theme, loosely after the web app's Bootstrap palette
var Default = Theme{
	Name: "default",

	Background: lipgloss.Color("#212529"),
	Foreground: lipgloss.Color("#F8F9FA"),
	Subtle:     lipgloss.Color("#6C757D"),
	Highlight:  lipgloss.Color("#343A40"),
	Border:     lipgloss.Color("#495057"),

	Primary:   lipgloss.Color("#0D6EFD"),
	Secondary: lipgloss.Color("#6C757D"),
	Success:   lipgloss.Color("#198754"),
	Warning:   lipgloss.Color("#FFC107"),
	Error:     lipgloss.Color("#DC3545"),
	Info:      lipgloss.Color("#0DCAF0"),

	EventTask:     lipgloss.Color("#CFE2FF"),
	EventSchedule: lipgloss.Color("#FFF3CD"),

	AlertOverdue:  lipgloss.Color("#DC3545"),
	AlertDueToday: lipgloss.Color("#FFC107"),
	AlertDueSoon:  lipgloss.Color("#0DCAF0"),
}

// Nord theme - Arctic, north-bluish color palette
// https://www.nordtheme.com/
var Nord = Theme{
	Name: "nord",

	Background: lipgloss.Color("#2E3440"),
	Foreground: lipgloss.Color("#ECEFF4"),
	Subtle:     lipgloss.Color("#4C566A"),
	Highlight:  lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#4C566A"),

	Primary:   lipgloss.Color("#88C0D0"),
	Secondary: lipgloss.Color("#81A1C1"),
	Success:   lipgloss.Color("#A3BE8C"),
	Warning:   lipgloss.Color("#EBCB8B"),
	Error:     lipgloss.Color("#BF616A"),
	Info:      lipgloss.Color("#5E81AC"),

	EventTask:     lipgloss.Color("#81A1C1"),
	EventSchedule: lipgloss.Color("#EBCB8B"),

	AlertOverdue:  lipgloss.Color("#BF616A"),
	AlertDueToday: lipgloss.Color("#EBCB8B"),
	AlertDueSoon:  lipgloss.Color("#5E81AC"),
}
