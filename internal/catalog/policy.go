package catalog

import (
	"fmt"
	"log/slog"

	"canteen-api/internal/metrics"
	"canteen-api/internal/notify"
)

// StockPolicy couples enablement to stock level: zero stock force-disables an
// item, and re-enabling is refused while stock is zero. All stock and
// enablement mutations funnel through here so the rule cannot be bypassed.
type StockPolicy struct {
	store    *Store
	repo     *Repository
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewStockPolicy(store *Store, repo *Repository, notifier notify.Notifier, m *metrics.Metrics, logger *slog.Logger) *StockPolicy {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	return &StockPolicy{
		store:    store,
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// AdjustStock sets the stock count of an item. Negative counts are clamped to
// zero. When the count reaches zero on an enabled item, the item is
// force-disabled and the auto-disable is reported; the returned flag tells
// the caller whether that happened. The post-adjustment item is always
// returned on success.
func (p *StockPolicy) AdjustStock(id string, newCount int) (MenuItem, bool, error) {
	if newCount < 0 {
		newCount = 0
	}

	autoDisabled := false
	item, err := p.store.mutate(id, func(it *MenuItem) {
		it.StockCount = newCount
		if newCount == 0 && it.StockType == StockLimited && it.IsEnabled {
			it.IsEnabled = false
			autoDisabled = true
		}
	})
	if err != nil {
		return MenuItem{}, false, err
	}

	if autoDisabled {
		p.logger.Info("item auto-disabled", "id", item.ID, "name", item.Name)
		p.notifier.Toast(fmt.Sprintf("%s disabled - Out of stock", item.Name), notify.SeverityWarning)
		if p.metrics != nil {
			p.metrics.AutoDisables.Inc()
		}
	}

	p.persist(item)
	return item, autoDisabled, nil
}

// SetEnabled toggles an item's visibility. Enabling a limited item with zero
// stock is refused with ErrOutOfStock and leaves the item unchanged.
func (p *StockPolicy) SetEnabled(id string, enabled bool) (MenuItem, error) {
	if enabled {
		current, ok := p.store.Find(id)
		if !ok {
			return MenuItem{}, ErrNotFound
		}
		if current.StockType == StockLimited && current.StockCount == 0 {
			if p.metrics != nil {
				p.metrics.RefusedEnables.Inc()
			}
			return MenuItem{}, fmt.Errorf("%w: %s", ErrOutOfStock, current.Name)
		}
	}

	item, err := p.store.mutate(id, func(it *MenuItem) {
		it.IsEnabled = enabled
	})
	if err != nil {
		return MenuItem{}, err
	}

	p.persist(item)
	return item, nil
}

// EnableAll enables every disabled item that has stock; returns how many
// changed.
func (p *StockPolicy) EnableAll() int {
	count := 0
	for _, item := range p.store.List() {
		if item.IsEnabled || !item.InStock() {
			continue
		}
		if _, err := p.SetEnabled(item.ID, true); err == nil {
			count++
		}
	}
	return count
}

// DisableAll disables every enabled item; returns how many changed.
func (p *StockPolicy) DisableAll() int {
	count := 0
	for _, item := range p.store.List() {
		if !item.IsEnabled {
			continue
		}
		if _, err := p.SetEnabled(item.ID, false); err == nil {
			count++
		}
	}
	return count
}

// persist writes the item through to the database. A write failure keeps the
// in-memory state and is only logged: the session stays usable and the next
// successful write recovers durability.
func (p *StockPolicy) persist(item MenuItem) {
	if p.repo == nil {
		return
	}
	if err := p.repo.Upsert(item); err != nil {
		p.logger.Error("failed to persist menu item", "id", item.ID, "error", err)
	}
}
