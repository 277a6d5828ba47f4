package alerts

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/taskflow/internal/model"
)

const (
	// DisplayFor is how long a queued alert stays visible before it
	// expires on its own
	DisplayFor = 5 * time.Second

	// HistoryCap bounds the persisted history, newest first
	HistoryCap = 50
)

// Store persists sink state across restarts. internal/db implements it
// over sqlite; tests inject an in-memory fake.
type Store interface {
	LoadAlertSettings() (model.AlertSettings, error)
	SaveAlertSettings(model.AlertSettings) error
	LoadAlertHistory(limit int) ([]model.AlertRecord, error)
	AppendAlertRecord(rec model.AlertRecord, limit int) error
	ClearAlertHistory() error
}

// Permission mirrors the platform notification permission states
type Permission int

const (
	PermissionUndetermined Permission = iota
	PermissionGranted
	PermissionDenied
)

// DesktopNotifier raises platform notifications. Request is
// asynchronous; the callback receives the resolved permission.
type DesktopNotifier interface {
	Permission() Permission
	RequestPermission(func(Permission))
	Notify(title, body string)
}

// SoundPlayer plays the alert chime. Playback failures never surface.
type SoundPlayer interface {
	Play()
}

// Options carries the recognized extras for Notify. Anything else the
// caller might want to tunnel through is deliberately not representable.
type Options struct {
	RelatedEntityID string
	OnActivate      func()
}

// Entry is one alert in the live display queue
type Entry struct {
	ID              string
	Message         string
	RelatedEntityID string
	CreatedAt       time.Time
	OnActivate      func()
}

// SettingsPatch merges over existing settings; nil fields are untouched
type SettingsPatch struct {
	Sound       *bool
	BrowserPush *bool
	Mute        *bool
}

// Sink owns the live alert queue, the user's alert settings, and the
// capped history. Timer callbacks and explicit calls can race, so every
// state access goes through one mutex.
type Sink struct {
	mu       sync.Mutex
	settings model.AlertSettings
	queue    []Entry
	history  []model.AlertRecord
	timers   map[string]*time.Timer

	store   Store
	desktop DesktopNotifier
	sound   SoundPlayer
	clock   func() time.Time

	displayFor time.Duration
}

// NewSink loads settings and history from the store and returns a ready
// sink. A store read failure falls back to defaults rather than failing
// construction; the sink must always be usable.
func NewSink(store Store, desktop DesktopNotifier, sound SoundPlayer) *Sink {
	s := &Sink{
		settings:   model.DefaultAlertSettings(),
		timers:     make(map[string]*time.Timer),
		store:      store,
		desktop:    desktop,
		sound:      sound,
		clock:      time.Now,
		displayFor: DisplayFor,
	}
	if store != nil {
		if settings, err := store.LoadAlertSettings(); err != nil {
			log.Printf("alerts: loading settings: %v (using defaults)", err)
		} else {
			s.settings = settings
		}
		if history, err := store.LoadAlertHistory(HistoryCap); err != nil {
			log.Printf("alerts: loading history: %v", err)
		} else {
			s.history = history
		}
	}
	return s
}

// Notify queues one alert for display, records it in history, and fires
// the configured side effects. With Mute set it does nothing at all.
func (s *Sink) Notify(message string, opts Options) {
	s.mu.Lock()
	if s.settings.Mute {
		s.mu.Unlock()
		return
	}

	// Dedupe against alerts still on screen
	for i := range s.queue {
		if s.queue[i].Message == message {
			s.mu.Unlock()
			return
		}
	}

	now := s.clock()
	entry := Entry{
		ID:              uuid.New().String(),
		Message:         message,
		RelatedEntityID: opts.RelatedEntityID,
		CreatedAt:       now,
		OnActivate:      opts.OnActivate,
	}
	s.queue = append(s.queue, entry)

	rec := model.AlertRecord{
		ID:        entry.ID,
		Message:   message,
		RelatedID: opts.RelatedEntityID,
		CreatedAt: now,
	}
	s.history = append([]model.AlertRecord{rec}, s.history...)
	if len(s.history) > HistoryCap {
		s.history = s.history[:HistoryCap]
	}

	id := entry.ID
	s.timers[id] = time.AfterFunc(s.displayFor, func() { s.Dismiss(id) })

	settings := s.settings
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.AppendAlertRecord(rec, HistoryCap); err != nil {
			log.Printf("alerts: persisting history: %v", err)
		}
	}
	if settings.Sound && s.sound != nil {
		s.sound.Play()
	}
	if settings.BrowserPush && s.desktop != nil {
		s.push(message)
	}
}

// push raises a platform notification, requesting permission first if
// it has never been decided. Denial is terminal for this call.
func (s *Sink) push(message string) {
	switch s.desktop.Permission() {
	case PermissionGranted:
		s.desktop.Notify("Taskflow", message)
	case PermissionUndetermined:
		s.desktop.RequestPermission(func(p Permission) {
			if p == PermissionGranted {
				s.desktop.Notify("Taskflow", message)
			}
		})
	}
}

// Dismiss removes an alert from the live queue and cancels its expiry
// timer. Dismissing an id that is already gone is a no-op, covering the
// race between manual dismissal and the timer firing.
func (s *Sink) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	for i := range s.queue {
		if s.queue[i].ID == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Queue returns a copy of the live display queue, oldest first
func (s *Sink) Queue() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.queue))
	copy(out, s.queue)
	return out
}

// History returns a copy of the retained history, newest first
func (s *Sink) History() []model.AlertRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AlertRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Settings returns the current alert settings
func (s *Sink) Settings() model.AlertSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings merges the patch over current settings and persists
// the result immediately
func (s *Sink) UpdateSettings(patch SettingsPatch) {
	s.mu.Lock()
	if patch.Sound != nil {
		s.settings.Sound = *patch.Sound
	}
	if patch.BrowserPush != nil {
		s.settings.BrowserPush = *patch.BrowserPush
	}
	if patch.Mute != nil {
		s.settings.Mute = *patch.Mute
	}
	settings := s.settings
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveAlertSettings(settings); err != nil {
			log.Printf("alerts: persisting settings: %v", err)
		}
	}
}

// ClearHistory drops the retained history, in memory and in the store
func (s *Sink) ClearHistory() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.ClearAlertHistory(); err != nil {
			log.Printf("alerts: clearing history: %v", err)
		}
	}
}

// NotifyTasks pushes every derived task notification through the sink
func (s *Sink) NotifyTasks(notifs []model.Notification) {
	for _, n := range notifs {
		s.Notify(n.Message, Options{RelatedEntityID: n.RelatedTaskID})
	}
}
