package stockalert

import (
	"sync"
	"testing"
	"time"

	"canteen-api/internal/catalog"
	"canteen-api/internal/clock"
	"canteen-api/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu         sync.Mutex
	permission notify.Permission
	toasts     []string
	notices    []string
	tones      []int
}

func (n *fakeNotifier) RequestPermission() notify.Permission { return n.permission }

func (n *fakeNotifier) Toast(message string, severity notify.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, message)
}

func (n *fakeNotifier) Notify(title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, title)
}

func (n *fakeNotifier) PlayTone(freqHz, durMs int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tones = append(n.tones, freqHz)
}

func newTestTimer(t *testing.T, interval time.Duration) (*ReminderTimer, *fakeNotifier) {
	t.Helper()
	store := catalog.NewStore()
	store.Load(alertFixture())
	notifier := &fakeNotifier{permission: notify.PermissionGranted}
	timer := NewReminderTimer(store, notifier, nil, nil, clock.NewFake(time.Now()), interval, DefaultThresholds)
	return timer, notifier
}

func tick(timer *ReminderTimer, n int) {
	for i := 0; i < n; i++ {
		timer.Tick()
	}
}

func TestTimerFiresAtInterval(t *testing.T) {
	timer, notifier := newTestTimer(t, 5*time.Second)
	timer.RequestPermission()

	tick(timer, 4)
	status := timer.Snapshot()
	assert.Equal(t, 1, status.RemainingSeconds)
	assert.False(t, status.BannerVisible)
	assert.Equal(t, 0, status.FireCount)

	tick(timer, 1)
	status = timer.Snapshot()
	assert.Equal(t, 1, status.FireCount)
	assert.True(t, status.BannerVisible)
	assert.Equal(t, 5, status.RemainingSeconds, "countdown restarts after firing")

	require.Len(t, notifier.notices, 1)
	assert.Equal(t, "Stock Update Reminder", notifier.notices[0])
	assert.Equal(t, []int{800, 1000}, notifier.tones)
}

func TestTimerFiresRepeatedly(t *testing.T) {
	timer, _ := newTestTimer(t, 3*time.Second)

	tick(timer, 9)
	assert.Equal(t, 3, timer.Snapshot().FireCount)
}

func TestDismissKeepsCountdown(t *testing.T) {
	timer, _ := newTestTimer(t, 10*time.Second)

	tick(timer, 10)
	require.True(t, timer.Snapshot().BannerVisible)

	tick(timer, 4)
	timer.Dismiss()

	status := timer.Snapshot()
	assert.False(t, status.BannerVisible)
	assert.Equal(t, 6, status.RemainingSeconds, "dismiss does not reset the countdown")

	tick(timer, 6)
	assert.Equal(t, 2, timer.Snapshot().FireCount)
}

func TestNotificationSkippedWithoutPermission(t *testing.T) {
	timer, notifier := newTestTimer(t, 2*time.Second)
	notifier.permission = notify.PermissionDenied
	timer.RequestPermission()

	tick(timer, 2)

	status := timer.Snapshot()
	assert.True(t, status.BannerVisible)
	assert.Empty(t, notifier.notices)
	assert.NotEmpty(t, notifier.toasts, "the banner toast still goes out")
}

func TestSetIntervalRestartsCountdown(t *testing.T) {
	timer, _ := newTestTimer(t, 10*time.Second)
	tick(timer, 7)

	require.NoError(t, timer.SetInterval(4*time.Second))
	status := timer.Snapshot()
	assert.Equal(t, 4, status.IntervalSeconds)
	assert.Equal(t, 4, status.RemainingSeconds)

	assert.Error(t, timer.SetInterval(10*time.Millisecond))
}

func TestSetThresholdsValidatesAndRestarts(t *testing.T) {
	timer, _ := newTestTimer(t, 10*time.Second)
	tick(timer, 3)

	require.NoError(t, timer.SetThresholds(Thresholds{Low: 20, Critical: 8}))
	status := timer.Snapshot()
	assert.Equal(t, Thresholds{Low: 20, Critical: 8}, status.Thresholds)
	assert.Equal(t, 10, status.RemainingSeconds)

	assert.Error(t, timer.SetThresholds(Thresholds{Low: 5, Critical: 5}))
	assert.Error(t, timer.SetThresholds(Thresholds{Low: 3, Critical: -1}))
}

func TestFireSurveysCatalogue(t *testing.T) {
	timer, _ := newTestTimer(t, 1*time.Second)

	tick(timer, 1)
	alerts := timer.LastAlerts()
	assert.Equal(t, 5, alerts.Total())
	require.Len(t, alerts.OutOfStock, 1)
	assert.Equal(t, "out", alerts.OutOfStock[0].ID)
}
