package journey

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/platform/id"
)

// DefaultCapacity bounds concurrent journeys per kind within one session.
const DefaultCapacity = 5

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCapacity overrides the per-kind journey capacity.
func WithCapacity(capacity int) StoreOption {
	return func(s *Store) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithClock overrides the store clock.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides journey id generation.
func WithIDGenerator(newID func() (string, error)) StoreOption {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Store holds the journeys of one browser session, grouped by kind and keyed
// by id. It keeps at most capacity records per kind; inserting beyond that
// evicts the record with the oldest LastTouched. The store has no cross-tab
// conflict handling: two tabs mutating the same journey are last-write-wins.
type Store struct {
	mu       sync.Mutex
	capacity int
	clock    func() time.Time
	newID    func() (string, error)
	records  map[Kind]map[string]*Record
}

// NewStore builds an empty journey store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		capacity: DefaultCapacity,
		clock:    time.Now,
		newID:    id.NewID,
		records:  make(map[Kind]map[string]*Record),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create inserts a new journey of the given kind, assigning a fresh id and
// recency stamp. When the kind is already at capacity the least-recently
// touched record of that kind is evicted first.
func (s *Store) Create(kind Kind, initial Record) (*Record, error) {
	if s == nil {
		return nil, fmt.Errorf("journey store is required")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown journey kind %q", kind)
	}
	journeyID, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate journey id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := initial
	record.ID = journeyID
	record.Kind = kind
	record.LastTouched = s.clock()

	byID := s.records[kind]
	if byID == nil {
		byID = make(map[string]*Record)
		s.records[kind] = byID
	}
	for len(byID) >= s.capacity {
		delete(byID, s.oldestLocked(kind))
	}
	byID[record.ID] = &record
	return &record, nil
}

// Get looks up a journey by kind and id. Absence is a normal outcome (evicted
// record, expired session, stale bookmark); callers redirect to the journey's
// start screen.
func (s *Store) Get(kind Kind, journeyID string) (*Record, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[kind][journeyID]
	return record, ok
}

// Touch refreshes a journey's recency stamp. Called after every successful
// mutation, never on pure reads.
func (s *Store) Touch(kind Kind, journeyID string) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[kind][journeyID]
	if !ok {
		return false
	}
	record.LastTouched = s.clock()
	return true
}

// Remove deletes a journey on completion or cancellation. Removing an absent
// id is a no-op.
func (s *Store) Remove(kind Kind, journeyID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records[kind], journeyID)
}

// Len returns the number of stored journeys of a kind.
func (s *Store) Len(kind Kind) int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records[kind])
}

// Snapshot returns every stored journey ordered by kind then recency
// (most recent first). Used to persist session state between requests.
func (s *Store) Snapshot() []Record {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot []Record
	for _, kind := range Kinds() {
		kindRecords := make([]Record, 0, len(s.records[kind]))
		for _, record := range s.records[kind] {
			kindRecords = append(kindRecords, *record)
		}
		sort.Slice(kindRecords, func(i, j int) bool {
			if !kindRecords[i].LastTouched.Equal(kindRecords[j].LastTouched) {
				return kindRecords[i].LastTouched.After(kindRecords[j].LastTouched)
			}
			return kindRecords[i].ID < kindRecords[j].ID
		})
		snapshot = append(snapshot, kindRecords...)
	}
	return snapshot
}

// Restore replaces the store contents with a persisted snapshot. Records with
// unknown kinds or empty ids are dropped.
func (s *Store) Restore(records []Record) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[Kind]map[string]*Record)
	for idx := range records {
		record := records[idx]
		if record.ID == "" || !record.Kind.Valid() {
			continue
		}
		byID := s.records[record.Kind]
		if byID == nil {
			byID = make(map[string]*Record)
			s.records[record.Kind] = byID
		}
		byID[record.ID] = &record
	}
}

// oldestLocked returns the id of the least-recently touched record of a kind.
// Caller holds s.mu.
func (s *Store) oldestLocked(kind Kind) string {
	var oldestID string
	var oldestAt time.Time
	for journeyID, record := range s.records[kind] {
		if oldestID == "" || record.LastTouched.Before(oldestAt) {
			oldestID = journeyID
			oldestAt = record.LastTouched
		}
	}
	return oldestID
}
