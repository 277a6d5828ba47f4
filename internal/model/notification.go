package model

import (
	"time"
)

// AlertKind classifies a derived task notification
type AlertKind string

const (
	AlertOverdue  AlertKind = "overdue"
	AlertDueToday AlertKind = "due-today"
	AlertDueSoon  AlertKind = "due-soon"
)

// Notification is a transient alert derived from task state. It is not
// persisted; the delivery sink keeps its own bounded history separately.
type Notification struct {
	Kind          AlertKind `json:"kind"`
	Message       string    `json:"message"`
	RelatedTaskID string    `json:"related_task_id,omitempty"`
}

// AlertRecord is one entry in the sink's persisted history, newest first
type AlertRecord struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	RelatedID string    `json:"related_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertSettings controls how the delivery sink surfaces notifications.
// Mute is an absolute override: nothing is queued, recorded, or played.
type AlertSettings struct {
	Sound       bool `json:"sound"`
	BrowserPush bool `json:"browser_push"`
	Mute        bool `json:"mute"`
}

// DefaultAlertSettings mirrors the defaults users start with
func DefaultAlertSettings() AlertSettings {
	return AlertSettings{Sound: true, BrowserPush: false, Mute: false}
}
