package alerts

import (
	"os/exec"
	"sync"
)

// desktopNotifier delivers platform notifications through notify-send.
// Permission maps onto tool availability: undetermined until the first
// request, then granted or denied depending on whether notify-send is
// on PATH.
type desktopNotifier struct {
	mu         sync.Mutex
	permission Permission
}

// NewDesktopNotifier returns the notify-send backed DesktopNotifier
func NewDesktopNotifier() DesktopNotifier {
	return &desktopNotifier{permission: PermissionUndetermined}
}

func (d *desktopNotifier) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission
}

func (d *desktopNotifier) RequestPermission(fn func(Permission)) {
	go func() {
		p := PermissionGranted
		if _, err := exec.LookPath("notify-send"); err != nil {
			p = PermissionDenied
		}
		d.mu.Lock()
		d.permission = p
		d.mu.Unlock()
		if fn != nil {
			fn(p)
		}
	}()
}

func (d *desktopNotifier) Notify(title, body string) {
	cmd := exec.Command("notify-send", "-u", "normal", "-a", "taskflow", title, body)
	go func() {
		// Delivery failure is swallowed; an alert is best effort
		_ = cmd.Run()
	}()
}

// soundPlayer plays the alert chime with whichever player is installed
type soundPlayer struct {
	once   sync.Once
	player string
}

// NewSoundPlayer returns the exec-backed SoundPlayer
func NewSoundPlayer() SoundPlayer {
	return &soundPlayer{}
}

// Play is fire and forget: a missing player or a failed playback makes
// no noise and no error
func (p *soundPlayer) Play() {
	p.once.Do(func() {
		for _, candidate := range []string{"paplay", "aplay", "afplay"} {
			if _, err := exec.LookPath(candidate); err == nil {
				p.player = candidate
				return
			}
		}
	})
	if p.player == "" {
		return
	}
	go func() {
		_ = exec.Command(p.player, "/usr/share/sounds/freedesktop/stereo/message.oga").Run()
	}()
}
