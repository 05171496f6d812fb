package catalog

import (
	"sync"
	"testing"

	"canteen-api/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures toasts for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	toasts []string
}

func (n *recordingNotifier) RequestPermission() notify.Permission { return notify.PermissionGranted }

func (n *recordingNotifier) Toast(message string, severity notify.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, message)
}

func (n *recordingNotifier) Notify(title, body string)  {}
func (n *recordingNotifier) PlayTone(freqHz, durMs int) {}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return ""
	}
	return n.toasts[len(n.toasts)-1]
}

func newTestPolicy(t *testing.T) (*Store, *StockPolicy, *recordingNotifier) {
	t.Helper()
	store := NewStore()
	store.Load(sampleItems())
	notifier := &recordingNotifier{}
	policy := NewStockPolicy(store, nil, notifier, nil, nil)
	return store, policy, notifier
}

func TestAdjustStockAutoDisablesAtZero(t *testing.T) {
	_, policy, notifier := newTestPolicy(t)

	item, autoDisabled, err := policy.AdjustStock("item_1", 0)
	require.NoError(t, err)
	assert.True(t, autoDisabled)
	assert.False(t, item.IsEnabled)
	assert.Contains(t, notifier.last(), "Out of stock")
}

func TestAdjustStockClampsNegative(t *testing.T) {
	_, policy, _ := newTestPolicy(t)

	item, autoDisabled, err := policy.AdjustStock("item_1", -5)
	require.NoError(t, err)
	assert.Equal(t, 0, item.StockCount)
	assert.True(t, autoDisabled)
}

func TestAdjustStockUnlimitedNeverDisables(t *testing.T) {
	_, policy, _ := newTestPolicy(t)

	item, autoDisabled, err := policy.AdjustStock("item_2", 0)
	require.NoError(t, err)
	assert.False(t, autoDisabled)
	assert.True(t, item.IsEnabled)
}

func TestAdjustStockAlreadyDisabledNoDoubleReport(t *testing.T) {
	_, policy, notifier := newTestPolicy(t)

	_, autoDisabled, err := policy.AdjustStock("item_1", 0)
	require.NoError(t, err)
	require.True(t, autoDisabled)
	fired := len(notifier.toasts)

	// Setting zero again on an already disabled item is quiet
	_, autoDisabled, err = policy.AdjustStock("item_1", 0)
	require.NoError(t, err)
	assert.False(t, autoDisabled)
	assert.Len(t, notifier.toasts, fired)
}

func TestSetEnabledRefusesZeroStock(t *testing.T) {
	_, policy, _ := newTestPolicy(t)

	_, _, err := policy.AdjustStock("item_1", 0)
	require.NoError(t, err)

	_, err = policy.SetEnabled("item_1", true)
	assert.ErrorIs(t, err, ErrOutOfStock)

	// Restock, then enabling works
	_, _, err = policy.AdjustStock("item_1", 10)
	require.NoError(t, err)
	item, err := policy.SetEnabled("item_1", true)
	require.NoError(t, err)
	assert.True(t, item.IsEnabled)
}

func TestSetEnabledDisableAlwaysAllowed(t *testing.T) {
	_, policy, _ := newTestPolicy(t)

	item, err := policy.SetEnabled("item_1", false)
	require.NoError(t, err)
	assert.False(t, item.IsEnabled)

	_, err = policy.SetEnabled("missing", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnableAllSkipsOutOfStock(t *testing.T) {
	store, policy, _ := newTestPolicy(t)

	policy.DisableAll()
	_, _, err := policy.AdjustStock("item_1", 0)
	require.NoError(t, err)

	count := policy.EnableAll()
	assert.Equal(t, 2, count)

	item, _ := store.Find("item_1")
	assert.False(t, item.IsEnabled)
}

func TestDisableAllCountsChanges(t *testing.T) {
	_, policy, _ := newTestPolicy(t)

	assert.Equal(t, 3, policy.DisableAll())
	assert.Equal(t, 0, policy.DisableAll())
}
