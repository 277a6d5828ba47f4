package hierarchy

import (
	"time"

	"github.com/hollis/taskflow/internal/model"
)

// DateFilter narrows tasks by due-date status
type DateFilter string

const (
	DateAll         DateFilter = "All"
	DateOverdue     DateFilter = "Overdue"
	DateDueToday    DateFilter = "DueToday"
	DateDueThisWeek DateFilter = "DueThisWeek"
	DateNoDueDate   DateFilter = "NoDueDate"
)

// Filter describes which tasks survive into a render. Zero value keeps
// everything. Filters run on the flat slice before BuildForest, so a
// filtered-out parent demotes its children to roots.
type Filter struct {
	Tag           string // exact tag match; empty keeps all
	Date          DateFilter
	HideCompleted bool
	OwnerID       string // exact owner match; empty keeps all
}

// Apply returns the tasks matching f, preserving input order
func (f Filter) Apply(tasks []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if f.Tag != "" && t.Tag != f.Tag {
			continue
		}
		if f.HideCompleted && t.Completed {
			continue
		}
		if f.OwnerID != "" && (t.OwnerID == nil || *t.OwnerID != f.OwnerID) {
			continue
		}
		if !matchesDate(t, f.Date, now) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesDate(t model.Task, df DateFilter, now time.Time) bool {
	switch df {
	case "", DateAll:
		return true
	case DateNoDueDate:
		return t.DueDate == nil
	}

	if t.DueDate == nil {
		return false
	}
	d := model.DaysUntil(now, *t.DueDate)

	switch df {
	case DateOverdue:
		return d < 0
	case DateDueToday:
		return d == 0
	case DateDueThisWeek:
		// From today through Saturday of the current (Sunday-first) week
		return d >= 0 && !model.StartOfDay(t.DueDate.In(now.Location())).After(endOfWeek(now))
	default:
		return true
	}
}

// endOfWeek returns the start of the Saturday closing now's week
func endOfWeek(now time.Time) time.Time {
	return model.StartOfDay(now).AddDate(0, 0, int(time.Saturday-now.Weekday()))
}
