package stockalert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"canteen-api/internal/catalog"
	"canteen-api/internal/clock"
	"canteen-api/internal/metrics"
	"canteen-api/internal/notify"
)

// DefaultInterval is how often the console is reminded to update stock.
const DefaultInterval = 30 * time.Minute

// ReminderTimer counts down to a recurring "update your stock" reminder.
// Each fire surveys the catalogue, raises the banner, notifies and chimes,
// then restarts the countdown. Dismissing the banner leaves the countdown
// running.
type ReminderTimer struct {
	catalog  *catalog.Store
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	clk      clock.Clock

	mu            sync.Mutex
	interval      time.Duration
	remaining     time.Duration
	thresholds    Thresholds
	bannerVisible bool
	permission    notify.Permission
	fireCount     int
	lastAlerts    Alerts
}

func NewReminderTimer(cat *catalog.Store, notifier notify.Notifier, m *metrics.Metrics, logger *slog.Logger, clk clock.Clock, interval time.Duration, thresholds Thresholds) *ReminderTimer {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	if clk == nil {
		clk = clock.System()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if thresholds.Low <= 0 {
		thresholds = DefaultThresholds
	}
	return &ReminderTimer{
		catalog:    cat,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
		clk:        clk,
		interval:   interval,
		remaining:  interval,
		thresholds: thresholds,
		permission: notify.PermissionDenied,
	}
}

// RequestPermission asks the notifier for notification permission and
// records the answer. Reminders still raise the banner and chime when
// permission is denied; only system notifications are skipped.
func (t *ReminderTimer) RequestPermission() notify.Permission {
	p := t.notifier.RequestPermission()
	t.mu.Lock()
	t.permission = p
	t.mu.Unlock()
	return p
}

// Tick advances the countdown by one second, firing the reminder when it
// reaches zero.
func (t *ReminderTimer) Tick() {
	t.mu.Lock()
	t.remaining -= time.Second
	if t.remaining > 0 {
		t.mu.Unlock()
		return
	}
	t.remaining = t.interval
	t.mu.Unlock()

	t.fire()
}

func (t *ReminderTimer) fire() {
	alerts := Classify(t.catalog.List(), t.Snapshot().Thresholds)

	t.mu.Lock()
	t.bannerVisible = true
	t.fireCount++
	t.lastAlerts = alerts
	granted := t.permission == notify.PermissionGranted
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.StockTierItems.WithLabelValues("low").Set(float64(len(alerts.Low)))
		t.metrics.StockTierItems.WithLabelValues("critical").Set(float64(len(alerts.Critical)))
		t.metrics.StockTierItems.WithLabelValues("out_of_stock").Set(float64(len(alerts.OutOfStock)))
		t.metrics.RemindersFired.Inc()
	}

	body := "Time to update stock levels for today's items."
	if n := alerts.Total(); n > 0 {
		body = fmt.Sprintf("%d items need attention: %d low, %d critical, %d out of stock.",
			n, len(alerts.Low), len(alerts.Critical), len(alerts.OutOfStock))
	}

	t.notifier.Toast("Stock update reminder", notify.SeverityWarning)
	if granted {
		t.notifier.Notify("Stock Update Reminder", body)
	}
	t.notifier.PlayTone(800, 200)
	t.notifier.PlayTone(1000, 200)

	t.logger.Info("stock reminder fired",
		"low", len(alerts.Low),
		"critical", len(alerts.Critical),
		"outOfStock", len(alerts.OutOfStock))
}

// Dismiss hides the banner. The countdown keeps running so the next
// reminder still arrives on schedule.
func (t *ReminderTimer) Dismiss() {
	t.mu.Lock()
	t.bannerVisible = false
	t.mu.Unlock()
}

// SetInterval changes the reminder cadence and restarts the countdown.
func (t *ReminderTimer) SetInterval(d time.Duration) error {
	if d < time.Second {
		return fmt.Errorf("reminder interval too short: %s", d)
	}
	t.mu.Lock()
	t.interval = d
	t.remaining = d
	t.mu.Unlock()
	return nil
}

// SetThresholds changes the alert tiers and restarts the countdown so the
// next survey uses them from a full interval.
func (t *ReminderTimer) SetThresholds(th Thresholds) error {
	if th.Critical < 0 || th.Low <= th.Critical {
		return fmt.Errorf("invalid thresholds: low %d must exceed critical %d", th.Low, th.Critical)
	}
	t.mu.Lock()
	t.thresholds = th
	t.remaining = t.interval
	t.mu.Unlock()
	return nil
}

// Status is a point-in-time view of the reminder engine.
type Status struct {
	IntervalSeconds  int               `json:"intervalSeconds"`
	RemainingSeconds int               `json:"remainingSeconds"`
	BannerVisible    bool              `json:"bannerVisible"`
	Permission       notify.Permission `json:"permission"`
	Thresholds       Thresholds        `json:"thresholds"`
	FireCount        int               `json:"fireCount"`
}

// Snapshot returns the current timer state.
func (t *ReminderTimer) Snapshot() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{
		IntervalSeconds:  int(t.interval / time.Second),
		RemainingSeconds: int(t.remaining / time.Second),
		BannerVisible:    t.bannerVisible,
		Permission:       t.permission,
		Thresholds:       t.thresholds,
		FireCount:        t.fireCount,
	}
}

// LastAlerts returns the survey taken at the most recent fire.
func (t *ReminderTimer) LastAlerts() Alerts {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastAlerts
}

// Survey classifies the catalogue right now, without waiting for a fire.
func (t *ReminderTimer) Survey() Alerts {
	return Classify(t.catalog.List(), t.Snapshot().Thresholds)
}

// Run drives the countdown off a one-second ticker until ctx is done.
func (t *ReminderTimer) Run(ctx context.Context) {
	ticker := t.clk.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			t.Tick()
		}
	}
}
