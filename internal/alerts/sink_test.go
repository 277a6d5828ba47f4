package alerts

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hollis/taskflow/internal/model"
)

// fakeStore keeps sink state in memory
type fakeStore struct {
	mu       sync.Mutex
	settings model.AlertSettings
	history  []model.AlertRecord
	appends  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{settings: model.DefaultAlertSettings()}
}

func (f *fakeStore) LoadAlertSettings() (model.AlertSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, nil
}

func (f *fakeStore) SaveAlertSettings(s model.AlertSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = s
	return nil
}

func (f *fakeStore) LoadAlertHistory(limit int) ([]model.AlertRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.history) > limit {
		return f.history[:limit], nil
	}
	return f.history, nil
}

func (f *fakeStore) AppendAlertRecord(rec model.AlertRecord, limit int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends++
	f.history = append([]model.AlertRecord{rec}, f.history...)
	if len(f.history) > limit {
		f.history = f.history[:limit]
	}
	return nil
}

func (f *fakeStore) ClearAlertHistory() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = nil
	return nil
}

type fakeDesktop struct {
	mu         sync.Mutex
	permission Permission
	requested  int
	notified   []string
}

func (f *fakeDesktop) Permission() Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.permission
}

func (f *fakeDesktop) RequestPermission(fn func(Permission)) {
	f.mu.Lock()
	f.requested++
	f.permission = PermissionGranted
	f.mu.Unlock()
	fn(PermissionGranted)
}

func (f *fakeDesktop) Notify(title, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, body)
}

type fakeSound struct {
	mu    sync.Mutex
	plays int
}

func (f *fakeSound) Play() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
}

func newTestSink(store Store) *Sink {
	s := NewSink(store, nil, nil)
	// Keep expiry timers out of the way unless a test wants them
	s.displayFor = time.Hour
	return s
}

func TestNotifyQueuesAndRecords(t *testing.T) {
	store := newFakeStore()
	s := newTestSink(store)

	s.Notify("hello", Options{RelatedEntityID: "task-1"})

	q := s.Queue()
	if len(q) != 1 || q[0].Message != "hello" || q[0].RelatedEntityID != "task-1" {
		t.Fatalf("queue = %+v", q)
	}
	if q[0].ID == "" {
		t.Error("entry should get a fresh id")
	}

	h := s.History()
	if len(h) != 1 || h[0].Message != "hello" {
		t.Fatalf("history = %+v", h)
	}
	if store.appends != 1 {
		t.Errorf("history persisted %d times, want 1", store.appends)
	}
}

func TestMuteIsAbsolute(t *testing.T) {
	store := newFakeStore()
	s := newTestSink(store)
	sound := &fakeSound{}
	s.sound = sound

	mute := true
	s.UpdateSettings(SettingsPatch{Mute: &mute})

	for i := 0; i < 5; i++ {
		s.Notify(fmt.Sprintf("msg %d", i), Options{})
	}

	if len(s.Queue()) != 0 {
		t.Error("muted sink queued alerts")
	}
	if len(s.History()) != 0 {
		t.Error("muted sink recorded history")
	}
	if store.appends != 0 {
		t.Error("muted sink persisted history")
	}
	if sound.plays != 0 {
		t.Error("muted sink played sound")
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	s := newTestSink(newFakeStore())

	s.Notify("one", Options{})
	s.Notify("two", Options{})

	id := s.Queue()[0].ID
	s.Dismiss(id)
	after := s.Queue()
	s.Dismiss(id) // expiry racing a manual dismissal lands here

	again := s.Queue()
	if len(after) != 1 || len(again) != 1 || again[0].Message != "two" {
		t.Fatalf("double dismissal changed state: %+v vs %+v", after, again)
	}
	s.Dismiss("never-existed") // must also be a no-op
	if len(s.Queue()) != 1 {
		t.Error("dismissing an unknown id mutated the queue")
	}
}

func TestAutoExpiry(t *testing.T) {
	s := newTestSink(newFakeStore())
	s.displayFor = 10 * time.Millisecond

	s.Notify("fleeting", Options{})
	if len(s.Queue()) != 1 {
		t.Fatal("alert should be visible right after notify")
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(s.Queue()) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("alert never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Expiry clears the queue but never the history
	if len(s.History()) != 1 {
		t.Errorf("history = %d entries, want 1", len(s.History()))
	}
}

func TestHistoryCapNewestFirst(t *testing.T) {
	store := newFakeStore()
	s := newTestSink(store)

	for i := 0; i < 60; i++ {
		s.Notify(fmt.Sprintf("msg %d", i), Options{})
	}

	h := s.History()
	if len(h) != HistoryCap {
		t.Fatalf("history length = %d, want %d", len(h), HistoryCap)
	}
	if h[0].Message != "msg 59" {
		t.Errorf("newest entry = %q, want %q", h[0].Message, "msg 59")
	}
	if h[HistoryCap-1].Message != "msg 10" {
		t.Errorf("oldest retained = %q, want %q", h[HistoryCap-1].Message, "msg 10")
	}

	persisted, _ := store.LoadAlertHistory(HistoryCap)
	if len(persisted) != HistoryCap {
		t.Fatalf("persisted history = %d entries, want %d", len(persisted), HistoryCap)
	}
	if persisted[0].Message != "msg 59" {
		t.Errorf("persisted head = %q, want %q", persisted[0].Message, "msg 59")
	}
}

func TestDedupeAgainstLiveQueue(t *testing.T) {
	s := newTestSink(newFakeStore())

	s.Notify("same", Options{})
	s.Notify("same", Options{})

	if got := len(s.Queue()); got != 1 {
		t.Errorf("queue = %d entries, want 1 after dedupe", got)
	}
	if got := len(s.History()); got != 1 {
		t.Errorf("history = %d entries, want 1 after dedupe", got)
	}
}

func TestSoundPlaysOnlyWhenEnabled(t *testing.T) {
	s := newTestSink(newFakeStore())
	sound := &fakeSound{}
	s.sound = sound

	s.Notify("ding", Options{})
	if sound.plays != 1 {
		t.Fatalf("plays = %d, want 1", sound.plays)
	}

	off := false
	s.UpdateSettings(SettingsPatch{Sound: &off})
	s.Notify("silent", Options{})
	if sound.plays != 1 {
		t.Errorf("plays = %d after disabling sound, want 1", sound.plays)
	}
}

func TestDesktopPushPermissionFlow(t *testing.T) {
	s := newTestSink(newFakeStore())
	desktop := &fakeDesktop{}
	s.desktop = desktop

	on := true
	s.UpdateSettings(SettingsPatch{BrowserPush: &on})

	// Undetermined: request, then deliver on grant
	s.Notify("first", Options{})
	if desktop.requested != 1 || len(desktop.notified) != 1 {
		t.Fatalf("requested=%d notified=%v", desktop.requested, desktop.notified)
	}

	// Granted: deliver without a second request
	s.Notify("second", Options{})
	if desktop.requested != 1 || len(desktop.notified) != 2 {
		t.Fatalf("requested=%d notified=%v", desktop.requested, desktop.notified)
	}

	// Denied: terminal, no delivery, no retry
	denied := &fakeDesktop{permission: PermissionDenied}
	s.desktop = denied
	s.Notify("third", Options{})
	if denied.requested != 0 || len(denied.notified) != 0 {
		t.Fatalf("denied permission must be terminal, requested=%d notified=%v",
			denied.requested, denied.notified)
	}
}

func TestUpdateSettingsMergesAndPersists(t *testing.T) {
	store := newFakeStore()
	s := newTestSink(store)

	mute := true
	s.UpdateSettings(SettingsPatch{Mute: &mute})

	got := s.Settings()
	if !got.Mute || !got.Sound || got.BrowserPush {
		t.Fatalf("settings = %+v, want only mute flipped", got)
	}
	if persisted, _ := store.LoadAlertSettings(); persisted != got {
		t.Errorf("persisted settings %+v differ from live %+v", persisted, got)
	}
}

func TestClearHistory(t *testing.T) {
	store := newFakeStore()
	s := newTestSink(store)

	s.Notify("a", Options{})
	s.Notify("b", Options{})
	s.ClearHistory()

	if len(s.History()) != 0 {
		t.Error("live history not cleared")
	}
	if persisted, _ := store.LoadAlertHistory(HistoryCap); len(persisted) != 0 {
		t.Error("persisted history not cleared")
	}
}

func TestSinkLoadsPersistedStateAtConstruction(t *testing.T) {
	store := newFakeStore()
	store.settings = model.AlertSettings{Sound: false, BrowserPush: true, Mute: false}
	store.history = []model.AlertRecord{{ID: "old", Message: "from last run", CreatedAt: time.Now()}}

	s := NewSink(store, nil, nil)
	if got := s.Settings(); got != store.settings {
		t.Errorf("settings = %+v, want %+v", got, store.settings)
	}
	if h := s.History(); len(h) != 1 || h[0].ID != "old" {
		t.Errorf("history = %+v, want the persisted record", h)
	}
}

func TestNotifyTasks(t *testing.T) {
	s := newTestSink(newFakeStore())
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, -1)

	s.NotifyTasks(DeriveTaskNotifications([]model.Task{
		{ID: "t1", Text: "late", DueDate: &due},
	}, now))

	q := s.Queue()
	if len(q) != 1 || q[0].RelatedEntityID != "t1" {
		t.Fatalf("queue = %+v", q)
	}
}
