package catalog

import "sync"

// Store is the in-memory catalogue for one canteen. It is populated once by
// an external load step; components that depend on the catalogue wait on
// Ready rather than polling.
//
// Enablement is deliberately not exposed here: the only way to flip
// IsEnabled from outside the package is through StockPolicy, which enforces
// the zero-stock rule.
type Store struct {
	mu    sync.RWMutex
	items map[string]*MenuItem
	order []string

	ready     chan struct{}
	readyOnce sync.Once
}

func NewStore() *Store {
	return &Store{
		items: make(map[string]*MenuItem),
		ready: make(chan struct{}),
	}
}

// Load replaces the catalogue contents and marks the store ready.
func (s *Store) Load(items []MenuItem) {
	s.mu.Lock()
	s.items = make(map[string]*MenuItem, len(items))
	s.order = make([]string, 0, len(items))
	for i := range items {
		item := items[i]
		if _, exists := s.items[item.ID]; exists {
			continue
		}
		s.items[item.ID] = &item
		s.order = append(s.order, item.ID)
	}
	s.mu.Unlock()

	s.readyOnce.Do(func() { close(s.ready) })
}

// Ready is closed once the catalogue has been populated.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// IsReady reports whether Load has run at least once.
func (s *Store) IsReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// List returns a snapshot of all items in insertion order.
func (s *Store) List() []MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MenuItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// Find returns a copy of the item with the given id.
func (s *Store) Find(id string) (MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return MenuItem{}, false
	}
	return *item, true
}

// Insert adds a new item at the end of the catalogue.
func (s *Store) Insert(item MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.ID]; exists {
		return ErrDuplicateID
	}
	s.items[item.ID] = &item
	s.order = append(s.order, item.ID)
	return nil
}

// ItemUpdate carries the editable fields of a menu item. Nil fields are left
// unchanged. Stock count and enablement are not here: those mutations go
// through StockPolicy.
type ItemUpdate struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *int       `json:"price"`
	ImageURL    *string    `json:"imageUrl"`
	Category    *Category  `json:"category"`
	StockType   *StockType `json:"stockType"`
}

func (u ItemUpdate) apply(it *MenuItem) {
	if u.Name != nil {
		it.Name = *u.Name
	}
	if u.Description != nil {
		it.Description = *u.Description
	}
	if u.Price != nil {
		it.Price = *u.Price
	}
	if u.ImageURL != nil {
		it.ImageURL = *u.ImageURL
	}
	if u.Category != nil {
		it.Category = *u.Category
	}
	if u.StockType != nil {
		it.StockType = *u.StockType
	}
}

// UpdateDetails applies an update against a copy of the stored item and
// commits only when the result validates. Validation problems come back
// without anything changing, so a rejected edit never leaves a half-applied
// item in the catalogue.
func (s *Store) UpdateDetails(id string, upd ItemUpdate) (MenuItem, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return MenuItem{}, nil, ErrNotFound
	}
	next := *item
	upd.apply(&next)
	if problems := next.Validate(); len(problems) > 0 {
		return MenuItem{}, problems, nil
	}
	*item = next
	return next, nil, nil
}

// SetSpecial flags or unflags an item as today's special.
func (s *Store) SetSpecial(id string, special bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	item.IsSpecial = special
	return nil
}

// Remove deletes an item from the catalogue.
func (s *Store) Remove(id string) (MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return MenuItem{}, ErrNotFound
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return *item, nil
}

// mutate runs fn against the live item under the write lock. Package-private:
// StockPolicy uses it as the single entry point for stock and enablement
// transitions.
func (s *Store) mutate(id string, fn func(*MenuItem)) (MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return MenuItem{}, ErrNotFound
	}
	fn(item)
	return *item, nil
}
