package specials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"canteen-api/internal/catalog"
	"canteen-api/internal/clock"
	"canteen-api/internal/metrics"
	"canteen-api/internal/notify"
)

// ErrCatalogNotReady is returned when the menu has not finished loading
// within the scheduler's retry budget.
var ErrCatalogNotReady = errors.New("menu catalogue not loaded")

const (
	// DefaultRetryDelay is the pause between attempts to apply specials
	// while the menu is still loading.
	DefaultRetryDelay = 1 * time.Second
	// DefaultMaxRetries bounds those attempts.
	DefaultMaxRetries = 30
	// backstopInterval is the hourly sweep that catches a missed midnight
	// rollover after suspend or clock drift.
	backstopInterval = 1 * time.Hour
)

// Scheduler drives the daily specials rollover. At each local midnight (with
// an hourly backstop) it marks today's scheduled items as specials, clears
// yesterday's and enables any special that has stock.
type Scheduler struct {
	store    *ScheduleStore
	catalog  *catalog.Store
	policy   *catalog.StockPolicy
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	clk      clock.Clock

	// RetryDelay and MaxRetries tune the wait for the catalogue to load.
	// Change them before calling Run or CheckAndApply.
	RetryDelay time.Duration
	MaxRetries int

	mu          sync.Mutex
	lastChecked Day
}

func NewScheduler(store *ScheduleStore, cat *catalog.Store, policy *catalog.StockPolicy, notifier notify.Notifier, m *metrics.Metrics, logger *slog.Logger, clk clock.Clock) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	if clk == nil {
		clk = clock.System()
	}
	return &Scheduler{
		store:      store,
		catalog:    cat,
		policy:     policy,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
		clk:        clk,
		RetryDelay: DefaultRetryDelay,
		MaxRetries: DefaultMaxRetries,
	}
}

// CurrentDay returns the weekday of the scheduler's clock.
func (s *Scheduler) CurrentDay() Day {
	return DayOf(s.clk.Now())
}

// CheckAndApply applies today's specials unless they were already applied
// for the current day. It is safe to call repeatedly; the rollover fires
// once per day no matter how many timers invoke it.
func (s *Scheduler) CheckAndApply() (bool, error) {
	today := s.CurrentDay()

	s.mu.Lock()
	if s.lastChecked == today {
		s.mu.Unlock()
		return false, nil
	}
	firstRun := s.lastChecked == ""
	s.mu.Unlock()

	if err := s.apply(today, firstRun); err != nil {
		return false, err
	}

	s.mu.Lock()
	s.lastChecked = today
	s.mu.Unlock()
	return true, nil
}

// Reapply re-syncs the menu with today's schedule after an edit. It leaves
// the day-change bookkeeping alone: if the daily check has not run yet, it
// still will, and it covers the edit. A not-yet-loaded catalogue is skipped
// for the same reason.
func (s *Scheduler) Reapply() error {
	if !s.catalog.IsReady() {
		s.logger.Debug("skipping reapply, menu not loaded")
		return nil
	}
	return s.apply(s.CurrentDay(), false)
}

// LastChecked reports the day specials were last applied for, or "" when
// the scheduler has not run yet.
func (s *Scheduler) LastChecked() Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastChecked
}

func (s *Scheduler) apply(today Day, announce bool) error {
	if err := s.waitForCatalog(); err != nil {
		return err
	}

	scheduled := s.store.GetDay(today)
	wanted := make(map[string]bool, len(scheduled))
	for _, id := range scheduled {
		wanted[id] = true
	}

	var applied []string
	for _, item := range s.catalog.List() {
		want := wanted[item.ID]
		if item.IsSpecial != want {
			if err := s.catalog.SetSpecial(item.ID, want); err != nil {
				s.logger.Error("failed to flag special", "id", item.ID, "error", err)
				continue
			}
		}
		if !want {
			continue
		}
		delete(wanted, item.ID)
		applied = append(applied, item.Name)
		if _, err := s.policy.SetEnabled(item.ID, true); err != nil {
			// A special with zero stock stays disabled until restocked.
			if errors.Is(err, catalog.ErrOutOfStock) {
				s.logger.Warn("special is out of stock", "id", item.ID, "name", item.Name)
				continue
			}
			s.logger.Error("failed to enable special", "id", item.ID, "error", err)
		}
	}

	// IDs left over reference items deleted from the menu. They stay in the
	// schedule and take effect again if the item is ever recreated.
	for id := range wanted {
		s.logger.Debug("scheduled item missing from menu", "id", id, "day", today)
	}

	if s.metrics != nil {
		s.metrics.SpecialsApplied.Inc()
	}
	s.logger.Info("applied daily specials", "day", today, "count", len(applied))

	if announce && len(applied) > 0 {
		s.notifier.Toast(fmt.Sprintf("Today's Specials: %s", strings.Join(applied, ", ")), notify.SeverityInfo)
	}
	return nil
}

func (s *Scheduler) waitForCatalog() error {
	for attempt := 0; ; attempt++ {
		select {
		case <-s.catalog.Ready():
			return nil
		case <-s.clk.After(s.RetryDelay):
			if attempt+1 >= s.MaxRetries {
				return ErrCatalogNotReady
			}
			s.logger.Debug("menu not loaded yet, retrying", "attempt", attempt+1)
		}
	}
}

// Run applies today's specials, then blocks until ctx is done, firing the
// rollover at each local midnight and hourly as a backstop.
func (s *Scheduler) Run(ctx context.Context) {
	if _, err := s.CheckAndApply(); err != nil {
		s.logger.Error("initial specials check failed", "error", err)
	}

	midnight := s.clk.NewTimer(untilNextMidnight(s.clk.Now()))
	defer midnight.Stop()
	backstop := s.clk.NewTicker(backstopInterval)
	defer backstop.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-midnight.C():
			if _, err := s.CheckAndApply(); err != nil {
				s.logger.Error("midnight specials check failed", "error", err)
			}
			midnight.Reset(untilNextMidnight(s.clk.Now()))
		case <-backstop.C():
			if _, err := s.CheckAndApply(); err != nil {
				s.logger.Error("hourly specials check failed", "error", err)
			}
		}
	}
}

func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
