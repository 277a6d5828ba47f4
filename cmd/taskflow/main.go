package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hollis/taskflow/internal/alerts"
	"github.com/hollis/taskflow/internal/app"
	"github.com/hollis/taskflow/internal/config"
	"github.com/hollis/taskflow/internal/db"
	"github.com/hollis/taskflow/internal/ui"
	"github.com/hollis/taskflow/internal/ui/theme"
	"github.com/hollis/taskflow/internal/ui/views"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "version":
			fmt.Printf("taskflow v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	viewFlag := flag.String("view", "agenda", "Starting view (agenda, tasks, summary)")
	themeFlag := flag.String("theme", "", "Theme name (default, nord)")
	flag.Parse()

	if err := runTUI(*viewFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `taskflow - tasks, weekly schedules, and due-date alerts

Usage:
  taskflow                  Start the TUI
  taskflow add <task>       Quick add a task
  taskflow version          Show version
  taskflow help             Show this help

Quick Add Syntax:
  taskflow add "Buy groceries"
  taskflow add "Review report @Work due:tomorrow"

  Tag:       @tag           (e.g., @Home, @Work, @Errands)
  Due date:  due:tomorrow due:friday due:2026-01-15

TUI Options:
  --view <name>     Starting view (agenda, tasks, summary)
  --theme <name>    Theme (default, nord)

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                g/G           Go to top/bottom

  Actions:      a             Add new task
                tab           Toggle done
                f             Cycle due-date filter
                t             Cycle tag filter
                c             Hide/show completed

  Alerts:       m             Mute/unmute
                x             Dismiss popup

  Views:        1-3           Switch views
                ?             Help
                q             Quit

For more info: https://github.com/hollis/taskflow`

	fmt.Println(help)
}

func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: taskflow add <task>")
		fmt.Fprintln(os.Stderr, "Example: taskflow add \"Buy groceries @Errands due:tomorrow\"")
		os.Exit(1)
	}

	text := strings.Join(args, " ")
	parsed := views.ParseQuickAdd(text)
	if parsed.Text == "" {
		fmt.Fprintln(os.Stderr, "Task text is empty after removing markers")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	// Open database (no lock needed for quick add, just one insert)
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	task, err := database.CreateTask(parsed.Text, parsed.Tag, parsed.DueDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating task: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Added: %s\n", task.Text)
	fmt.Printf("Tag: %s\n", task.DisplayTag())
	if task.DueDate != nil {
		fmt.Printf("Due: %s\n", task.DueDate.Format("Mon, Jan 2 2006"))
	}
}

func runTUI(startView, themeName string) error {
	application, err := app.New(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	if themeName == "" {
		themeName = application.Config.Theme
	}
	if themeName != "" {
		if t, ok := theme.ByName(themeName); ok {
			theme.SetTheme(t)
		}
	}

	// Surface due-date alerts for the current snapshot before the
	// first frame
	if tasks, err := application.DB.GetTasks(); err == nil {
		notifs := alerts.DeriveTaskNotifications(tasks, time.Now())
		application.Sink.NotifyTasks(notifs)
	}

	initial := ui.ViewAgenda
	switch strings.ToLower(startView) {
	case "tasks":
		initial = ui.ViewTasks
	case "summary":
		initial = ui.ViewSummary
	}

	model := ui.NewRootModel(application, initial)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
