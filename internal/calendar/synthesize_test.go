package calendar

import (
	"testing"
	"time"

	"github.com/hollis/taskflow/internal/model"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestTaskEventGeneration(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{ID: "t1", Text: "Pay rent", DueDate: datePtr(due)},
		{ID: "t2", Text: "No deadline here"},
	}

	res := Synthesize(tasks, nil, now, 1)
	if len(res.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(res.Events))
	}

	ev := res.Events[0]
	if ev.Title != "Pay rent" {
		t.Errorf("title = %q, want %q", ev.Title, "Pay rent")
	}
	if !ev.AllDay {
		t.Error("task event should be all-day")
	}
	if ev.Source != model.SourceTask || ev.TaskID != "t1" {
		t.Errorf("bad source ref: %v %q", ev.Source, ev.TaskID)
	}
	if !ev.Start.Equal(due) || !ev.End.Equal(due) {
		t.Errorf("start/end = %v/%v, want both %v", ev.Start, ev.End, due)
	}

	// Completed tasks keep their event but gain a suffix
	tasks[0].Completed = true
	res = Synthesize(tasks, nil, now, 1)
	if got := res.Events[0].Title; got != "Pay rent (Completed)" {
		t.Errorf("completed title = %q, want %q", got, "Pay rent (Completed)")
	}
}

func TestRecurrenceOverSmallWindow(t *testing.T) {
	// 2024-06-03 is a Monday; window covers exactly three Mondays
	windowStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)

	block := model.Block{ID: "b1", Day: "Monday", StartTime: "09:00", EndTime: "10:00", Activity: "Standup"}
	events := expandBlock("s1", block, windowStart, windowEnd)

	if len(events) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(events))
	}
	for i, ev := range events {
		if ev.Start.Weekday() != time.Monday {
			t.Errorf("occurrence %d on %v, want Monday", i, ev.Start.Weekday())
		}
		if ev.Start.Hour() != 9 || ev.Start.Minute() != 0 {
			t.Errorf("occurrence %d starts %02d:%02d, want 09:00", i, ev.Start.Hour(), ev.Start.Minute())
		}
		if got := ev.End.Sub(ev.Start); got != time.Hour {
			t.Errorf("occurrence %d duration %v, want 1h", i, got)
		}
	}
}

func TestRecurrenceFirstOccurrenceBeforeWindow(t *testing.T) {
	// Window opens on a Wednesday; the Sunday in that calendar week is
	// already past, so the first occurrence must move a week forward
	windowStart := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC) // Wednesday
	windowEnd := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	block := model.Block{ID: "b1", Day: "Sunday", StartTime: "08:00", EndTime: "09:00", Activity: "Run"}
	events := expandBlock("s1", block, windowStart, windowEnd)

	if len(events) == 0 {
		t.Fatal("expected occurrences")
	}
	first := events[0].Start
	if first.Before(windowStart) {
		t.Errorf("first occurrence %v precedes window start %v", first, windowStart)
	}
	if first.Day() != 9 { // Sunday 2024-06-09
		t.Errorf("first occurrence on day %d, want 9", first.Day())
	}
}

func TestMidnightCrossing(t *testing.T) {
	windowStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC)

	block := model.Block{ID: "b1", Day: "Friday", StartTime: "23:00", EndTime: "01:00", Activity: "Night shift"}
	events := expandBlock("s1", block, windowStart, windowEnd)

	if len(events) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(events))
	}
	ev := events[0]
	if !ev.End.After(ev.Start) {
		t.Errorf("end %v not after start %v", ev.End, ev.Start)
	}
	if ev.Start.Weekday() != time.Friday {
		t.Errorf("start weekday = %v, want Friday", ev.Start.Weekday())
	}
	if ev.End.Weekday() != time.Saturday {
		t.Errorf("end weekday = %v, want Saturday", ev.End.Weekday())
	}
}

func TestZeroLengthBlock(t *testing.T) {
	windowStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC)

	block := model.Block{ID: "b1", Day: "Tuesday", StartTime: "12:00", EndTime: "12:00", Activity: "Instant"}
	events := expandBlock("s1", block, windowStart, windowEnd)

	if len(events) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(events))
	}
	if !events[0].End.Equal(events[0].Start) {
		t.Errorf("equal clocks should make a zero-length instant, got %v-%v",
			events[0].Start, events[0].End)
	}
}

func TestMalformedItemsAreIsolated(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

	schedules := []model.Schedule{{
		ID: "s1",
		Blocks: []model.Block{
			{ID: "bad-day", Day: "monday", StartTime: "09:00", EndTime: "10:00", Activity: "Lowercase"},
			{ID: "bad-time", Day: "Tuesday", StartTime: "nine", EndTime: "10:00", Activity: "Bad clock"},
			{ID: "good", Day: "Wednesday", StartTime: "09:00", EndTime: "10:00", Activity: "Fine"},
		},
	}}

	res := Synthesize(nil, schedules, now, 1)
	if len(res.Events) == 0 {
		t.Fatal("good block should still expand")
	}
	for _, ev := range res.Events {
		if ev.BlockID != "good" {
			t.Errorf("event from malformed block %q leaked into output", ev.BlockID)
		}
	}
}

func TestMergeOrderAndNextUpcoming(t *testing.T) {
	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC) // Wednesday 09:00

	tasks := []model.Task{
		{ID: "past", Text: "Past", DueDate: datePtr(now.AddDate(0, 0, -1))},
		{ID: "at-now", Text: "At now", DueDate: datePtr(now)},
		{ID: "future", Text: "Future", DueDate: datePtr(now.AddDate(0, 0, 1))},
	}

	res := Synthesize(tasks, nil, now, 1)
	for i := 1; i < len(res.Events); i++ {
		if res.Events[i].Start.Before(res.Events[i-1].Start) {
			t.Fatalf("events not sorted ascending at %d", i)
		}
	}

	// Inclusive equality: the event starting exactly now wins
	if res.NextUpcoming == nil {
		t.Fatal("expected a next upcoming event")
	}
	if res.NextUpcoming.TaskID != "at-now" {
		t.Errorf("next upcoming = %q, want %q", res.NextUpcoming.TaskID, "at-now")
	}
}

func TestNextUpcomingNilWhenAllPast(t *testing.T) {
	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "past", Text: "Past", DueDate: datePtr(now.AddDate(0, -2, 0))},
	}

	res := Synthesize(tasks, nil, now, 1)
	if res.NextUpcoming != nil {
		t.Errorf("expected nil next upcoming, got %q", res.NextUpcoming.Title)
	}
	if empty := Synthesize(nil, nil, now, 1); empty.NextUpcoming != nil || len(empty.Events) != 0 {
		t.Error("empty inputs should yield no events and nil next upcoming")
	}
}

func TestTaskEventsPrecedeScheduleEventsOnTie(t *testing.T) {
	// A task due exactly when a block starts: stable sort keeps the
	// task event first because tasks are appended first
	loc := time.UTC
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, loc) // Monday 09:00

	tasks := []model.Task{{ID: "t1", Text: "Tie", DueDate: datePtr(start)}}
	schedules := []model.Schedule{{
		ID:     "s1",
		Blocks: []model.Block{{ID: "b1", Day: "Monday", StartTime: "09:00", EndTime: "10:00", Activity: "Standup"}},
	}}

	res := Synthesize(tasks, schedules, start, 1)
	var tie []model.CalendarEvent
	for _, ev := range res.Events {
		if ev.Start.Equal(start) {
			tie = append(tie, ev)
		}
	}
	if len(tie) != 2 {
		t.Fatalf("expected 2 tied events, got %d", len(tie))
	}
	if tie[0].Source != model.SourceTask {
		t.Error("task event should sort before schedule event on equal start")
	}
}
