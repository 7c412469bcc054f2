package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
)

// EventStore is an in-memory implementation of storage.EventStore.
// Useful for testing and development.
type EventStore struct {
	mu     sync.RWMutex
	events map[string]*v1.Event
}

// NewEventStore creates an empty in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{events: make(map[string]*v1.Event)}
}

func (s *EventStore) Create(ctx context.Context, event *v1.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.ID]; exists {
		return storage.ErrDuplicate
	}
	s.events[event.ID] = cloneEvent(event)
	return nil
}

func (s *EventStore) Save(ctx context.Context, event *v1.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.ID]; !exists {
		return storage.ErrNotFound
	}
	s.events[event.ID] = cloneEvent(event)
	return nil
}

func (s *EventStore) FindByID(ctx context.Context, id string) (*v1.Event, error) {
	return s.findOne(func(e *v1.Event) bool { return e.ID == id })
}

func (s *EventStore) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*v1.Event, error) {
	return s.findOne(func(e *v1.Event) bool { return e.ID == id && e.InitiatorID == ownerID })
}

func (s *EventStore) FindByIDAndState(ctx context.Context, id string, state v1.EventState) (*v1.Event, error) {
	return s.findOne(func(e *v1.Event) bool { return e.ID == id && e.State == state })
}

func (s *EventStore) FindManyByIDs(ctx context.Context, ids []string) ([]*v1.Event, error) {
	return s.findAll(func(e *v1.Event) bool { return slices.Contains(ids, e.ID) }), nil
}

func (s *EventStore) FindByInitiator(ctx context.Context, initiatorID string) ([]*v1.Event, error) {
	return s.findAll(func(e *v1.Event) bool { return e.InitiatorID == initiatorID }), nil
}

func (s *EventStore) Search(ctx context.Context, f storage.EventFilter) ([]*v1.Event, error) {
	text := strings.ToLower(f.Text)
	return s.findAll(func(e *v1.Event) bool {
		if len(f.Initiators) > 0 && !slices.Contains(f.Initiators, e.InitiatorID) {
			return false
		}
		if len(f.States) > 0 && !slices.Contains(f.States, e.State) {
			return false
		}
		if len(f.Categories) > 0 && !slices.Contains(f.Categories, e.CategoryID) {
			return false
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(e.Annotation), text) &&
			!strings.Contains(strings.ToLower(e.Description), text) {
			return false
		}
		if f.Paid != nil && e.Paid != *f.Paid {
			return false
		}
		if f.EventDateFrom != nil && e.EventDate.Before(*f.EventDateFrom) {
			return false
		}
		if f.EventDateTo != nil && e.EventDate.After(*f.EventDateTo) {
			return false
		}
		if f.CreatedFrom != nil && e.CreatedOn.Before(*f.CreatedFrom) {
			return false
		}
		if f.CreatedTo != nil && e.CreatedOn.After(*f.CreatedTo) {
			return false
		}
		return true
	}), nil
}

func (s *EventStore) findOne(match func(*v1.Event) bool) (*v1.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if match(e) {
			return cloneEvent(e), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *EventStore) findAll(match func(*v1.Event) bool) []*v1.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*v1.Event
	for _, e := range s.events {
		if match(e) {
			result = append(result, cloneEvent(e))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].EventDate.Equal(result[j].EventDate) {
			return result[i].EventDate.Before(result[j].EventDate)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func cloneEvent(e *v1.Event) *v1.Event {
	c := *e
	if e.PublishedOn != nil {
		p := *e.PublishedOn
		c.PublishedOn = &p
	}
	return &c
}
