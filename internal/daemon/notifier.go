package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/pilltoast/internal/style"
	"github.com/jmylchreest/pilltoast/internal/toast"
)

// NotificationLevel indicates the severity of an internal toast.
type NotificationLevel int

const (
	// NotificationLevelInfo is shown in the info style.
	NotificationLevelInfo NotificationLevel = iota
	// NotificationLevelSuccess is shown in the success style.
	NotificationLevelSuccess
	// NotificationLevelWarning is shown in the warn style.
	NotificationLevelWarning
	// NotificationLevelError is shown in the fail style.
	NotificationLevelError
)

// Style returns the preset a level is shown in.
func (l NotificationLevel) Style() string {
	switch l {
	case NotificationLevelSuccess:
		return style.Success
	case NotificationLevelWarning:
		return style.Warn
	case NotificationLevelError:
		return style.Fail
	default:
		return style.Info
	}
}

// Shower shows a toast in a named style.
type Shower interface {
	ShowPreset(message, name string, loc toast.Location, d toast.Duration) error
}

// Notifier shows toasts about the daemon's own events. Repeats of the
// same event are rate limited.
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	shower Shower

	location toast.Location
	now      func() time.Time

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration

	enabled bool
}

// NewNotifier creates a notifier showing toasts on s.
func NewNotifier(s Shower, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger:         logger,
		shower:         s,
		now:            time.Now,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		enabled:        true,
	}
}

// SetEnabled enables or disables internal toasts.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetLocation sets the edge internal toasts use.
func (n *Notifier) SetLocation(loc toast.Location) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = loc
}

// SetMinInterval sets the minimum interval between toasts with the same key.
func (n *Notifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify shows message unless a toast with the same key was shown within
// the minimum interval.
func (n *Notifier) Notify(key, message string, level NotificationLevel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.enabled || n.shower == nil {
		return
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.logger.Debug("internal toast rate-limited", "key", key)
		return
	}
	n.lastNotifyTime[key] = now

	if err := n.shower.ShowPreset(message, level.Style(), n.location, toast.Short); err != nil {
		n.logger.Warn("failed to show internal toast", "key", key, "error", err)
	}
}

// NotifyConfigReloaded reports a successful reload.
func (n *Notifier) NotifyConfigReloaded() {
	n.Notify("config-reload", "Configuration reloaded", NotificationLevelSuccess)
}

// NotifyConfigError reports a rejected config file.
func (n *Notifier) NotifyConfigError(err error) {
	n.Notify("config-error", "Configuration error: "+err.Error(), NotificationLevelError)
}

// NotifyStylesheetReloaded reports that the user stylesheet changed.
func (n *Notifier) NotifyStylesheetReloaded() {
	n.Notify("stylesheet-reload", "Stylesheet reloaded", NotificationLevelInfo)
}

// NotifyStartup reports that the daemon is ready.
func (n *Notifier) NotifyStartup(version string) {
	n.Notify("startup", "pilltoastd "+version+" is running", NotificationLevelInfo)
}
