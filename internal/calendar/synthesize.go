// Package calendar merges dated tasks and recurring weekly schedule
// blocks into a single sorted stream of calendar events.
package calendar

import (
	"log"
	"sort"
	"time"

	"github.com/hollis/taskflow/internal/model"
)

// DefaultWindowYears bounds recurrence expansion to ±1 year around now
const DefaultWindowYears = 1

// Result holds a full synthesis pass: every event in the window, sorted
// ascending by start, plus the first event starting at or after now
type Result struct {
	Events       []model.CalendarEvent
	NextUpcoming *model.CalendarEvent
}

// Synthesize builds calendar events from task due dates and recurring
// schedule blocks over a ±windowYears window around now. Malformed
// items (missing due date, unknown day name, bad clock string) are
// logged and skipped; nothing aborts the whole pass.
func Synthesize(tasks []model.Task, schedules []model.Schedule, now time.Time, windowYears int) Result {
	if windowYears <= 0 {
		windowYears = DefaultWindowYears
	}

	events := taskEvents(tasks)
	events = append(events, scheduleEvents(schedules, now, windowYears)...)

	// Stable keeps task events ahead of schedule events on equal starts
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	return Result{
		Events:       events,
		NextUpcoming: nextUpcoming(events, now),
	}
}

// taskEvents maps each task with a due date to one all-day event
func taskEvents(tasks []model.Task) []model.CalendarEvent {
	var events []model.CalendarEvent
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		title := t.Text
		if t.Completed {
			title += " (Completed)"
		}
		events = append(events, model.CalendarEvent{
			Title:  title,
			Start:  *t.DueDate,
			End:    *t.DueDate,
			AllDay: true,
			Source: model.SourceTask,
			TaskID: t.ID,
		})
	}
	return events
}

// scheduleEvents expands every block of every schedule into concrete
// weekly occurrences between now-windowYears and now+windowYears
func scheduleEvents(schedules []model.Schedule, now time.Time, windowYears int) []model.CalendarEvent {
	windowStart := model.StartOfDay(now).AddDate(-windowYears, 0, 0)
	windowEnd := model.EndOfDay(now).AddDate(windowYears, 0, 0)

	var events []model.CalendarEvent
	for _, s := range schedules {
		for _, b := range s.Blocks {
			events = append(events, expandBlock(s.ID, b, windowStart, windowEnd)...)
		}
	}
	return events
}

// expandBlock steps through the window in 7-day increments starting at
// the first occurrence of the block's weekday on or after windowStart.
// A bad day name skips the block entirely; a bad clock string skips
// only the occurrence it would have produced.
func expandBlock(scheduleID string, b model.Block, windowStart, windowEnd time.Time) []model.CalendarEvent {
	target, err := model.ParseWeekday(b.Day)
	if err != nil {
		log.Printf("calendar: skipping block %s (%s): %v", b.ID, b.Activity, err)
		return nil
	}

	day := windowStart.AddDate(0, 0, int(target-windowStart.Weekday()))
	if day.Before(windowStart) {
		day = day.AddDate(0, 0, 7)
	}

	var events []model.CalendarEvent
	for ; !day.After(windowEnd); day = day.AddDate(0, 0, 7) {
		ev, err := blockOccurrence(scheduleID, b, day)
		if err != nil {
			log.Printf("calendar: skipping occurrence of block %s on %s: %v",
				b.ID, day.Format("2006-01-02"), err)
			continue
		}
		events = append(events, ev)
	}
	return events
}

// blockOccurrence pins the block's wall-clock times onto one concrete
// day. An end clock before the start clock crosses midnight, so the end
// lands on the following day. Equal clocks are a zero-length instant.
func blockOccurrence(scheduleID string, b model.Block, day time.Time) (model.CalendarEvent, error) {
	sh, sm, err := model.ParseClock(b.StartTime)
	if err != nil {
		return model.CalendarEvent{}, err
	}
	eh, em, err := model.ParseClock(b.EndTime)
	if err != nil {
		return model.CalendarEvent{}, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), sh, sm, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), eh, em, 0, 0, day.Location())
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	return model.CalendarEvent{
		Title:      b.Activity,
		Start:      start,
		End:        end,
		AllDay:     false,
		Source:     model.SourceScheduleBlock,
		ScheduleID: scheduleID,
		BlockID:    b.ID,
	}, nil
}

// nextUpcoming returns the first event starting at or after now.
// An event starting exactly now still counts as upcoming.
func nextUpcoming(sorted []model.CalendarEvent, now time.Time) *model.CalendarEvent {
	for i := range sorted {
		if !sorted[i].Start.Before(now) {
			return &sorted[i]
		}
	}
	return nil
}
