package model

import (
	"time"
)

// DefaultTag is used when a task has no tag of its own
const DefaultTag = "General"

// Task represents a single unit of work. Snapshots come from the team
// backend; this process caches and reads them but is never the owner.
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Tag       string     `json:"tag,omitempty"`
	OwnerID   *string    `json:"owner_id,omitempty"` // nil means assigned to the whole team
	ParentID  *string    `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DisplayTag returns the tag, falling back to DefaultTag when unset
func (t *Task) DisplayTag() string {
	if t.Tag == "" {
		return DefaultTag
	}
	return t.Tag
}

// IsOverdue returns true if the task's due day is strictly before now's day
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return DaysUntil(now, *t.DueDate) < 0
}

// IsDueToday returns true if the task is due on now's calendar day
func (t *Task) IsDueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return SameDay(*t.DueDate, now)
}
