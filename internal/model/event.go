package model

import (
	"time"
)

// EventSource identifies what kind of record an event was synthesized from
type EventSource string

const (
	SourceTask          EventSource = "task"
	SourceScheduleBlock EventSource = "scheduleBlock"
)

// CalendarEvent is a synthesized, read-only projection over tasks and
// schedule blocks. It is rebuilt from scratch whenever the underlying
// collections change and is never persisted.
type CalendarEvent struct {
	Title  string      `json:"title"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	AllDay bool        `json:"all_day"`
	Source EventSource `json:"source"`

	// Back-references for lookup only; which ones are set depends on Source
	TaskID     string `json:"task_id,omitempty"`
	ScheduleID string `json:"schedule_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"`
}
