package hierarchy

import (
	"math"
	"sort"
	"time"

	"github.com/hollis/taskflow/internal/model"
)

// Stats summarizes one task snapshot for the summary view
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int

	CompletionRate int // whole percent
	OverdueRate    int
}

// Summarize counts task states as of now. Overdue counts only
// incomplete tasks whose due day has passed.
func Summarize(tasks []model.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for i := range tasks {
		if tasks[i].Completed {
			s.Completed++
		} else if tasks[i].IsOverdue(now) {
			s.Overdue++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
		s.OverdueRate = int(math.Round(float64(s.Overdue) / float64(s.Total) * 100))
	}
	return s
}

// Upcoming returns incomplete tasks due from today through the next
// seven days, soonest first
func Upcoming(tasks []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil {
			continue
		}
		if d := model.DaysUntil(now, *t.DueDate); d >= 0 && d < 7 {
			out = append(out, t)
		}
	}
	sortByDue(out)
	return out
}

// Overdue returns incomplete tasks whose due day has passed, oldest first
func Overdue(tasks []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	sortByDue(out)
	return out
}

func sortByDue(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(*tasks[j].DueDate)
	})
}
