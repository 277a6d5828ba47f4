// Package alerts derives time-based task notifications and delivers
// them: a process-wide queue of transient alerts, user settings, and a
// capped persisted history.
package alerts

import (
	"fmt"
	"time"

	"github.com/hollis/taskflow/internal/model"
)

// DueSoonDays is how many calendar days ahead still counts as "due soon"
const DueSoonDays = 3

// DeriveTaskNotifications classifies every incomplete task with a due
// date as overdue, due today, or due soon; first match wins, so a task
// yields at most one notification. Completed and dateless tasks are
// skipped. Output order follows input order.
func DeriveTaskNotifications(tasks []model.Task, now time.Time) []model.Notification {
	var out []model.Notification
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil {
			continue
		}
		switch d := model.DaysUntil(now, *t.DueDate); {
		case d < 0:
			out = append(out, model.Notification{
				Kind:          model.AlertOverdue,
				Message:       fmt.Sprintf("Task %q is overdue!", t.Text),
				RelatedTaskID: t.ID,
			})
		case d == 0:
			out = append(out, model.Notification{
				Kind:          model.AlertDueToday,
				Message:       fmt.Sprintf("Task %q is due today.", t.Text),
				RelatedTaskID: t.ID,
			})
		case d <= DueSoonDays:
			out = append(out, model.Notification{
				Kind:          model.AlertDueSoon,
				Message:       fmt.Sprintf("Task %q is due soon (%s).", t.Text, model.RelativeDays(now, *t.DueDate)),
				RelatedTaskID: t.ID,
			})
		}
	}
	return out
}
