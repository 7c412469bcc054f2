package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestEventStore_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	s := NewEventStore()

	e := &v1.Event{ID: "e1", InitiatorID: "u1", Title: "original", State: v1.StatePending}
	require.NoError(t, s.Create(ctx, e))
	require.ErrorIs(t, s.Create(ctx, e), storage.ErrDuplicate)

	e.Title = "mutated after create"
	got, err := s.FindByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)

	got.Title = "mutated after read"
	again, err := s.FindByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

func TestEventStore_Lookups(t *testing.T) {
	ctx := context.Background()
	s := NewEventStore()
	require.NoError(t, s.Create(ctx, &v1.Event{ID: "e1", InitiatorID: "u1", State: v1.StatePublished, EventDate: base.Add(2 * time.Hour)}))
	require.NoError(t, s.Create(ctx, &v1.Event{ID: "e2", InitiatorID: "u1", State: v1.StatePending, EventDate: base.Add(time.Hour)}))
	require.NoError(t, s.Create(ctx, &v1.Event{ID: "e3", InitiatorID: "u2", State: v1.StatePublished, EventDate: base.Add(time.Hour)}))

	_, err := s.FindByIDAndOwner(ctx, "e1", "u2")
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.FindByIDAndState(ctx, "e2", v1.StatePublished)
	require.ErrorIs(t, err, storage.ErrNotFound)

	owned, err := s.FindByInitiator(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "e2", owned[0].ID, "ordered by event date")

	many, err := s.FindManyByIDs(ctx, []string{"e3", "e1", "missing"})
	require.NoError(t, err)
	require.Len(t, many, 2)
	assert.Equal(t, "e3", many[0].ID)
	assert.Equal(t, "e1", many[1].ID)

	require.ErrorIs(t, s.Save(ctx, &v1.Event{ID: "missing"}), storage.ErrNotFound)
}

func TestEventStore_Search(t *testing.T) {
	ctx := context.Background()
	s := NewEventStore()
	paid := true
	require.NoError(t, s.Create(ctx, &v1.Event{ID: "e1", CategoryID: 1, State: v1.StatePublished, Annotation: "Open JAZZ session", Paid: true, EventDate: base.Add(time.Hour)}))
	require.NoError(t, s.Create(ctx, &v1.Event{ID: "e2", CategoryID: 2, State: v1.StatePublished, Description: "jazz brunch", EventDate: base.Add(48 * time.Hour)}))
	require.NoError(t, s.Create(ctx, &v1.Event{ID: "e3", CategoryID: 1, State: v1.StatePending, Annotation: "jazz", EventDate: base.Add(time.Hour)}))

	from := base
	to := base.Add(24 * time.Hour)
	got, err := s.Search(ctx, storage.EventFilter{
		States:        []v1.EventState{v1.StatePublished},
		Text:          "jazz",
		EventDateFrom: &from,
		EventDateTo:   &to,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)

	got, err = s.Search(ctx, storage.EventFilter{Categories: []int64{1}, Paid: &paid})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
}

func TestRequestStore_DuplicateActive(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore()

	require.NoError(t, s.Create(ctx, &v1.Request{ID: "r1", EventID: "e1", RequesterID: "u1", Status: v1.RequestPending, Created: base}))
	err := s.Create(ctx, &v1.Request{ID: "r2", EventID: "e1", RequesterID: "u1", Status: v1.RequestPending, Created: base})
	require.ErrorIs(t, err, storage.ErrDuplicate)

	require.NoError(t, s.UpdateStatus(ctx, "r1", v1.RequestPending, v1.RequestRejected))
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "r2", EventID: "e1", RequesterID: "u1", Status: v1.RequestPending, Created: base}))

	exists, err := s.ExistsActive(ctx, "e1", "u1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRequestStore_UpdateStatusCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore()
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "r1", EventID: "e1", RequesterID: "u1", Status: v1.RequestPending}))

	require.NoError(t, s.UpdateStatus(ctx, "r1", v1.RequestPending, v1.RequestConfirmed))
	require.ErrorIs(t, s.UpdateStatus(ctx, "r1", v1.RequestPending, v1.RequestCanceled), storage.ErrStale)
	require.ErrorIs(t, s.UpdateStatus(ctx, "nope", v1.RequestPending, v1.RequestCanceled), storage.ErrNotFound)

	got, err := s.FindByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, v1.RequestConfirmed, got.Status)
}

func TestRequestStore_OrderingAndCounts(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore()
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "b", EventID: "e1", RequesterID: "u2", Status: v1.RequestConfirmed, Created: base}))
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "a", EventID: "e1", RequesterID: "u1", Status: v1.RequestConfirmed, Created: base}))
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "c", EventID: "e1", RequesterID: "u3", Status: v1.RequestPending, Created: base.Add(-time.Minute)}))
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "d", EventID: "e2", RequesterID: "u1", Status: v1.RequestConfirmed, Created: base}))

	all, err := s.FindAllByEvent(ctx, "e1")
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)

	n, err := s.CountByEventAndStatus(ctx, "e1", v1.RequestConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	counts, err := s.ConfirmedCounts(ctx, []string{"e1", "e2", "e3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"e1": 2, "e2": 1}, counts)
}

func TestRequestStore_WithinEventRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore()
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "r1", EventID: "e1", RequesterID: "u1", Status: v1.RequestPending}))

	boom := errors.New("boom")
	err := s.WithinEvent(ctx, "e1", func(tx storage.RequestTx) error {
		require.NoError(t, tx.UpdateStatus(ctx, "r1", v1.RequestPending, v1.RequestConfirmed))
		require.NoError(t, tx.Create(ctx, &v1.Request{ID: "r2", EventID: "e1", RequesterID: "u2", Status: v1.RequestPending}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	r1, err := s.FindByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, v1.RequestPending, r1.Status)
	_, err = s.FindByID(ctx, "r2")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRequestStore_WithinEventSerializes(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore()

	// count-then-insert under the event lock must never exceed the cap
	const limit = 5
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.WithinEvent(ctx, "e1", func(tx storage.RequestTx) error {
				n, err := tx.CountByEventAndStatus(ctx, "e1", v1.RequestConfirmed)
				if err != nil || n >= limit {
					return err
				}
				return tx.Create(ctx, &v1.Request{
					ID:          "r" + string(rune('a'+i)),
					EventID:     "e1",
					RequesterID: "u" + string(rune('a'+i)),
					Status:      v1.RequestConfirmed,
				})
			})
		}(i)
	}
	wg.Wait()

	n, err := s.CountByEventAndStatus(ctx, "e1", v1.RequestConfirmed)
	require.NoError(t, err)
	assert.Equal(t, limit, n)
}

func TestRequestStore_WithinEventPublishesOnCommit(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore()
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "r1", EventID: "e1", RequesterID: "u1", Status: v1.RequestPending, Created: base}))

	err := s.WithinEvent(ctx, "e1", func(tx storage.RequestTx) error {
		require.NoError(t, tx.UpdateStatus(ctx, "r1", v1.RequestPending, v1.RequestConfirmed))
		require.NoError(t, tx.Create(ctx, &v1.Request{ID: "r2", EventID: "e1", RequesterID: "u2", Status: v1.RequestConfirmed, Created: base}))

		// the tx reads its own writes
		n, err := tx.CountByEventAndStatus(ctx, "e1", v1.RequestConfirmed)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		// readers outside the tx see nothing until commit
		counts, err := s.ConfirmedCounts(ctx, []string{"e1"})
		require.NoError(t, err)
		assert.Empty(t, counts)
		mine, err := s.FindAllByRequester(ctx, "u2")
		require.NoError(t, err)
		assert.Empty(t, mine)
		return nil
	})
	require.NoError(t, err)

	counts, err := s.ConfirmedCounts(ctx, []string{"e1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"e1": 2}, counts)
}

func TestRequestStore_WithinEventPanicLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore()
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "r1", EventID: "e1", RequesterID: "u1", Status: v1.RequestPending}))

	require.Panics(t, func() {
		_ = s.WithinEvent(ctx, "e1", func(tx storage.RequestTx) error {
			require.NoError(t, tx.UpdateStatus(ctx, "r1", v1.RequestPending, v1.RequestConfirmed))
			panic("boom")
		})
	})

	r1, err := s.FindByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, v1.RequestPending, r1.Status)

	// the stripe was released
	require.NoError(t, s.WithinEvent(ctx, "e1", func(storage.RequestTx) error { return nil }))
}

func TestRequestStore_WithinEventCommitDetectsOutsideWrite(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore()
	require.NoError(t, s.Create(ctx, &v1.Request{ID: "r1", EventID: "e1", RequesterID: "u1", Status: v1.RequestPending}))

	err := s.WithinEvent(ctx, "e1", func(tx storage.RequestTx) error {
		require.NoError(t, tx.UpdateStatus(ctx, "r1", v1.RequestPending, v1.RequestConfirmed))
		return s.UpdateStatus(ctx, "r1", v1.RequestPending, v1.RequestCanceled)
	})
	require.ErrorIs(t, err, storage.ErrStale)

	r1, err := s.FindByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, v1.RequestCanceled, r1.Status)
}
