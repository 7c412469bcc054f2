package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	"github.com/rendezvous-lab/rendezvous/internal/core/partition"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
)

// RequestStore is an in-memory implementation of storage.RequestStore.
// WithinEvent serializes callers per event with striped mutexes. Writes made inside it
// are staged and published together when fn succeeds, so other readers never see a
// partial batch.
type RequestStore struct {
	mu       sync.RWMutex
	requests map[string]*v1.Request

	stripes [partition.Count]sync.Mutex
}

// NewRequestStore creates an empty in-memory request store.
func NewRequestStore() *RequestStore {
	return &RequestStore{requests: make(map[string]*v1.Request)}
}

func (s *RequestStore) Create(ctx context.Context, req *v1.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkCreate(s.requests, req); err != nil {
		return err
	}
	c := *req
	s.requests[req.ID] = &c
	return nil
}

func (s *RequestStore) UpdateStatus(ctx context.Context, id string, from, to v1.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, exists := s.requests[id]
	if !exists {
		return storage.ErrNotFound
	}
	if r.Status != from {
		return storage.ErrStale
	}
	c := *r
	c.Status = to
	s.requests[id] = &c
	return nil
}

func (s *RequestStore) FindByID(ctx context.Context, id string) (*v1.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findRequest(s.requests, id)
}

func (s *RequestStore) FindAllByEvent(ctx context.Context, eventID string) ([]*v1.Request, error) {
	return s.findAll(func(r *v1.Request) bool { return r.EventID == eventID }), nil
}

func (s *RequestStore) FindAllByRequester(ctx context.Context, requesterID string) ([]*v1.Request, error) {
	return s.findAll(func(r *v1.Request) bool { return r.RequesterID == requesterID }), nil
}

func (s *RequestStore) ExistsActive(ctx context.Context, eventID, requesterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return activePair(s.requests, eventID, requesterID), nil
}

func (s *RequestStore) CountByEventAndStatus(ctx context.Context, eventID string, status v1.RequestStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countStatus(s.requests, eventID, status), nil
}

func (s *RequestStore) ConfirmedCounts(ctx context.Context, eventIDs []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, r := range s.requests {
		if r.Status == v1.RequestConfirmed && slices.Contains(eventIDs, r.EventID) {
			counts[r.EventID]++
		}
	}
	return counts, nil
}

func (s *RequestStore) WithinEvent(ctx context.Context, eventID string, fn func(tx storage.RequestTx) error) error {
	stripe := &s.stripes[partition.For(eventID)]
	stripe.Lock()
	defer stripe.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &requestTx{
		store:  s,
		staged: make(map[string]*v1.Request),
		read:   make(map[string]v1.RequestStatus),
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

func (s *RequestStore) findAll(match func(*v1.Request) bool) []*v1.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterSorted(s.requests, match)
}

// requestTx reads through its staged writes to the store and publishes them on commit.
type requestTx struct {
	store  *RequestStore
	staged map[string]*v1.Request

	// read holds the stored status of every updated request that predates the tx.
	read map[string]v1.RequestStatus
}

// view returns the store contents with the staged writes applied on top.
func (tx *requestTx) view() map[string]*v1.Request {
	tx.store.mu.RLock()
	v := maps.Clone(tx.store.requests)
	tx.store.mu.RUnlock()

	if v == nil {
		v = make(map[string]*v1.Request, len(tx.staged))
	}
	for id, r := range tx.staged {
		v[id] = r
	}
	return v
}

func (tx *requestTx) Create(ctx context.Context, req *v1.Request) error {
	if err := checkCreate(tx.view(), req); err != nil {
		return err
	}
	c := *req
	tx.staged[req.ID] = &c
	return nil
}

func (tx *requestTx) UpdateStatus(ctx context.Context, id string, from, to v1.RequestStatus) error {
	r, exists := tx.view()[id]
	if !exists {
		return storage.ErrNotFound
	}
	if r.Status != from {
		return storage.ErrStale
	}
	if _, staged := tx.staged[id]; !staged {
		tx.read[id] = r.Status
	}
	c := *r
	c.Status = to
	tx.staged[id] = &c
	return nil
}

func (tx *requestTx) FindByID(ctx context.Context, id string) (*v1.Request, error) {
	return findRequest(tx.view(), id)
}

func (tx *requestTx) FindAllByEvent(ctx context.Context, eventID string) ([]*v1.Request, error) {
	return filterSorted(tx.view(), func(r *v1.Request) bool { return r.EventID == eventID }), nil
}

func (tx *requestTx) FindAllByRequester(ctx context.Context, requesterID string) ([]*v1.Request, error) {
	return filterSorted(tx.view(), func(r *v1.Request) bool { return r.RequesterID == requesterID }), nil
}

func (tx *requestTx) ExistsActive(ctx context.Context, eventID, requesterID string) (bool, error) {
	return activePair(tx.view(), eventID, requesterID), nil
}

func (tx *requestTx) CountByEventAndStatus(ctx context.Context, eventID string, status v1.RequestStatus) (int, error) {
	return countStatus(tx.view(), eventID, status), nil
}

// commit publishes every staged write or none. Writers outside WithinEvent may have
// raced the tx, so updates are re-checked and creates re-validated first.
func (tx *requestTx) commit() error {
	if len(tx.staged) == 0 {
		return nil
	}

	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.requests)
	if next == nil {
		next = make(map[string]*v1.Request, len(tx.staged))
	}
	for id, status := range tx.read {
		cur, ok := next[id]
		if !ok || cur.Status != status {
			return storage.ErrStale
		}
		next[id] = tx.staged[id]
	}
	for id, r := range tx.staged {
		if _, updated := tx.read[id]; updated {
			continue
		}
		if err := checkCreate(next, r); err != nil {
			return err
		}
		next[id] = r
	}
	s.requests = next
	return nil
}

func checkCreate(requests map[string]*v1.Request, req *v1.Request) error {
	if _, exists := requests[req.ID]; exists {
		return storage.ErrDuplicate
	}
	if req.Status.Active() && activePair(requests, req.EventID, req.RequesterID) {
		return storage.ErrDuplicate
	}
	return nil
}

func activePair(requests map[string]*v1.Request, eventID, requesterID string) bool {
	for _, r := range requests {
		if r.EventID == eventID && r.RequesterID == requesterID && r.Status.Active() {
			return true
		}
	}
	return false
}

func countStatus(requests map[string]*v1.Request, eventID string, status v1.RequestStatus) int {
	n := 0
	for _, r := range requests {
		if r.EventID == eventID && r.Status == status {
			n++
		}
	}
	return n
}

func findRequest(requests map[string]*v1.Request, id string) (*v1.Request, error) {
	r, exists := requests[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	c := *r
	return &c, nil
}

func filterSorted(requests map[string]*v1.Request, match func(*v1.Request) bool) []*v1.Request {
	var result []*v1.Request
	for _, r := range requests {
		if match(r) {
			c := *r
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Created.Equal(result[j].Created) {
			return result[i].Created.Before(result[j].Created)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
