// Package notify carries reminder banners, toasts and alert tones out to
// connected admin consoles. Delivery is best-effort: failures are logged and
// swallowed, never surfaced to the caller.
package notify

import "log/slog"

// Severity classifies toast messages.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Permission is the platform notification permission state.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Notifier is the outbound notification boundary.
type Notifier interface {
	// RequestPermission asks the platform for notification permission.
	RequestPermission() Permission

	// Toast sends a transient in-app message.
	Toast(message string, severity Severity)

	// Notify raises a platform notification.
	Notify(title, body string)

	// PlayTone plays an alert tone.
	PlayTone(freqHz, durationMs int)
}

// LogNotifier writes notifications to the application log only. Used when no
// console is connected and as the fallback in tests and tools.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) RequestPermission() Permission { return PermissionGranted }

func (n *LogNotifier) Toast(message string, severity Severity) {
	n.logger.Info("toast", "severity", string(severity), "message", message)
}

func (n *LogNotifier) Notify(title, body string) {
	n.logger.Info("notification", "title", title, "body", body)
}

func (n *LogNotifier) PlayTone(freqHz, durationMs int) {
	n.logger.Debug("tone", "freq_hz", freqHz, "duration_ms", durationMs)
}
