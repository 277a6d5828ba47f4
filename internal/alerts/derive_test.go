package alerts

import (
	"strings"
	"testing"
	"time"

	"github.com/hollis/taskflow/internal/model"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestDeriveTaskNotifications(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time { return datePtr(now.AddDate(0, 0, offset)) }

	cases := []struct {
		name string
		task model.Task
		want model.AlertKind // "" means no notification
	}{
		{"overdue yesterday", model.Task{ID: "1", Text: "a", DueDate: day(-1)}, model.AlertOverdue},
		{"overdue long ago", model.Task{ID: "2", Text: "b", DueDate: day(-30)}, model.AlertOverdue},
		{"due today", model.Task{ID: "3", Text: "c", DueDate: day(0)}, model.AlertDueToday},
		{"due tomorrow", model.Task{ID: "4", Text: "d", DueDate: day(1)}, model.AlertDueSoon},
		{"due in three days", model.Task{ID: "5", Text: "e", DueDate: day(3)}, model.AlertDueSoon},
		{"due in four days", model.Task{ID: "6", Text: "f", DueDate: day(4)}, ""},
		{"completed", model.Task{ID: "7", Text: "g", Completed: true, DueDate: day(-1)}, ""},
		{"no due date", model.Task{ID: "8", Text: "h"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveTaskNotifications([]model.Task{tc.task}, now)
			if tc.want == "" {
				if len(got) != 0 {
					t.Fatalf("expected no notification, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 notification, got %d", len(got))
			}
			if got[0].Kind != tc.want {
				t.Errorf("kind = %q, want %q", got[0].Kind, tc.want)
			}
			if got[0].RelatedTaskID != tc.task.ID {
				t.Errorf("related id = %q, want %q", got[0].RelatedTaskID, tc.task.ID)
			}
		})
	}
}

func TestDeriveOverdueTakesPrecedence(t *testing.T) {
	// A task due yesterday is within 3 days of now in absolute terms;
	// it must still classify as overdue, never due-soon
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	got := DeriveTaskNotifications([]model.Task{
		{ID: "1", Text: "slipped", DueDate: &yesterday},
	}, now)

	if len(got) != 1 || got[0].Kind != model.AlertOverdue {
		t.Fatalf("got %+v, want a single overdue notification", got)
	}
}

func TestDeriveAtMostOnePerTaskAndInputOrder(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time { return datePtr(now.AddDate(0, 0, offset)) }

	tasks := []model.Task{
		{ID: "b", Text: "due soon", DueDate: day(2)},
		{ID: "a", Text: "overdue", DueDate: day(-1)},
	}

	got := DeriveTaskNotifications(tasks, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].RelatedTaskID != "b" || got[1].RelatedTaskID != "a" {
		t.Errorf("output must follow input order, got [%s %s]", got[0].RelatedTaskID, got[1].RelatedTaskID)
	}
}

func TestDeriveIdempotentForFixedNow(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 2)
	tasks := []model.Task{{ID: "1", Text: "x", DueDate: &due}}

	a := DeriveTaskNotifications(tasks, now)
	b := DeriveTaskNotifications(tasks, now)
	if len(a) != 1 || len(b) != 1 || a[0] != b[0] {
		t.Fatalf("derivation not idempotent: %+v vs %+v", a, b)
	}
	if !strings.Contains(a[0].Message, "due soon") {
		t.Errorf("message = %q, expected a due-soon phrase", a[0].Message)
	}
}
