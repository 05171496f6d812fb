package specials

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// BlobKey is where the weekly schedule lives in the blob store.
const BlobKey = "daily_specials"

// Blob is the slice of the blob store the schedule needs.
type Blob interface {
	Read(key string) ([]byte, bool, error)
	Write(key string, value []byte) error
}

// ScheduleStore holds the weekly specials schedule in memory and mirrors
// every mutation to the blob store. Mutations to today's slot are applied
// to the menu immediately.
type ScheduleStore struct {
	mu       sync.RWMutex
	schedule Schedule
	blob     Blob
	logger   *slog.Logger

	scheduler *Scheduler
}

func NewScheduleStore(blob Blob, logger *slog.Logger) *ScheduleStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleStore{
		schedule: NewSchedule(),
		blob:     blob,
		logger:   logger,
	}
}

// AttachScheduler wires the scheduler that reapplies today's specials after
// a mutation. Call before serving traffic.
func (s *ScheduleStore) AttachScheduler(sched *Scheduler) {
	s.scheduler = sched
}

// Load restores the schedule from the blob store. A missing blob leaves the
// empty schedule in place; days absent from the stored payload stay empty.
func (s *ScheduleStore) Load() error {
	if s.blob == nil {
		return nil
	}
	data, ok, err := s.blob.Read(BlobKey)
	if err != nil {
		return fmt.Errorf("failed to load specials schedule: %w", err)
	}
	if !ok {
		return nil
	}

	var stored Schedule
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to parse specials schedule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = NewSchedule()
	for _, d := range Days {
		if ids, found := stored[d]; found && ids != nil {
			s.schedule[d] = append([]string{}, ids...)
		}
	}
	return nil
}

// Get returns a deep copy of the full weekly schedule.
func (s *ScheduleStore) Get() Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule.Clone()
}

// GetDay returns a copy of one day's item IDs.
func (s *ScheduleStore) GetDay(day Day) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.schedule[day]...)
}

// SetDay replaces a day's specials. Duplicate IDs collapse to their first
// occurrence, preserving order.
func (s *ScheduleStore) SetDay(day Day, ids []string) []string {
	deduped := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}

	s.mu.Lock()
	s.schedule[day] = deduped
	s.mu.Unlock()

	s.afterMutation(day)
	return append([]string{}, deduped...)
}

// AddToDay appends an item to a day's specials. Adding an ID already present
// is a no-op.
func (s *ScheduleStore) AddToDay(day Day, id string) []string {
	s.mu.Lock()
	present := false
	for _, existing := range s.schedule[day] {
		if existing == id {
			present = true
			break
		}
	}
	if !present {
		s.schedule[day] = append(s.schedule[day], id)
	}
	ids := append([]string{}, s.schedule[day]...)
	s.mu.Unlock()

	if !present {
		s.afterMutation(day)
	}
	return ids
}

// RemoveFromDay removes an item from a day's specials. Removing an absent ID
// is a no-op.
func (s *ScheduleStore) RemoveFromDay(day Day, id string) []string {
	s.mu.Lock()
	removed := false
	kept := s.schedule[day][:0]
	for _, existing := range s.schedule[day] {
		if existing == id {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	s.schedule[day] = kept
	ids := append([]string{}, kept...)
	s.mu.Unlock()

	if removed {
		s.afterMutation(day)
	}
	return ids
}

// IsSpecialOn reports whether an item is scheduled on a given day. Unknown
// days and unknown items simply report false.
func (s *ScheduleStore) IsSpecialOn(day Day, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.schedule[day] {
		if existing == id {
			return true
		}
	}
	return false
}

func (s *ScheduleStore) afterMutation(day Day) {
	s.persist()
	if s.scheduler != nil && s.scheduler.CurrentDay() == day {
		s.scheduler.Reapply()
	}
}

func (s *ScheduleStore) persist() {
	if s.blob == nil {
		return
	}
	s.mu.RLock()
	data, err := json.Marshal(s.schedule)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Error("failed to encode specials schedule", "error", err)
		return
	}
	if err := s.blob.Write(BlobKey, data); err != nil {
		s.logger.Error("failed to save specials schedule", "error", err)
	}
}
