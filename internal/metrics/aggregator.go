package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	"github.com/rendezvous-lab/rendezvous/internal/core/cache"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
	"golang.org/x/sync/errgroup"
)

const defaultLastKnownSize = 4096

// Config controls how collaborator failures are handled.
type Config struct {
	// Strict propagates count/view failures instead of serving last known values.
	Strict             bool
	LastKnownCacheSize int
}

// Aggregator joins Event records with counters owned by other services.
// Counters are best-effort: collaborator silence is zero, and unless Strict is set a
// failing collaborator degrades to the last value seen for that event.
type Aggregator struct {
	users  storage.UserDirectory
	counts storage.ConfirmedCounter
	views  storage.ViewCounter
	strict bool

	lastConfirmed *cache.LRU[string, int]
	lastViews     *cache.LRU[string, int64]

	nowFn func() time.Time
}

// NewAggregator creates a new metrics aggregator.
func NewAggregator(users storage.UserDirectory, counts storage.ConfirmedCounter, views storage.ViewCounter, cfg Config) *Aggregator {
	if users == nil || counts == nil || views == nil {
		panic("metrics: collaborators must not be nil")
	}
	size := cfg.LastKnownCacheSize
	if size <= 0 {
		size = defaultLastKnownSize
	}
	return &Aggregator{
		users:         users,
		counts:        counts,
		views:         views,
		strict:        cfg.Strict,
		lastConfirmed: cache.NewLRU[string, int](size),
		lastViews:     cache.NewLRU[string, int64](size),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Builder creates a projection variant from an event and its initiator.
type Builder[P v1.Projection] func(*v1.Event, v1.UserShort) P

// Full builds EventFull projections.
func Full(e *v1.Event, u v1.UserShort) *v1.EventFull { return v1.NewEventFull(e, u) }

// Short builds EventShort projections.
func Short(e *v1.Event, u v1.UserShort) *v1.EventShort { return v1.NewEventShort(e, u) }

// Project renders a single event. The initiator, confirmed count and views are fetched concurrently.
func Project[P v1.Projection](ctx context.Context, a *Aggregator, e *v1.Event, build Builder[P]) (P, error) {
	var (
		initiator v1.UserShort
		confirmed map[string]int
		views     map[string]int64
		zero      P
	)
	start, end := ViewWindow(e.CreatedOn, a.nowFn())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := a.users.ShortProfile(gCtx, e.InitiatorID)
		if errors.Is(err, storage.ErrNotFound) {
			slog.Warn("[Metrics] Initiator profile missing", "event_id", e.ID, "initiator_id", e.InitiatorID)
			u, err = v1.UserShort{ID: e.InitiatorID}, nil
		}
		initiator = u
		return err
	})
	g.Go(func() (err error) {
		confirmed, err = a.confirmedCounts(gCtx, []string{e.ID})
		return err
	})
	g.Go(func() (err error) {
		views, err = a.viewCounts(gCtx, []*v1.Event{e}, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return zero, fmt.Errorf("project event %s: %w", e.ID, err)
	}

	p := build(e, initiator)
	p.SetConfirmedRequests(confirmed[e.ID])
	p.SetViews(views[e.ID])
	return p, nil
}

// ProjectMany renders events in input order with one batched call per collaborator.
// The view window starts one minute before the oldest event was created.
func ProjectMany[P v1.Projection](ctx context.Context, a *Aggregator, events []*v1.Event, build Builder[P]) ([]P, error) {
	if len(events) == 0 {
		return []P{}, nil
	}

	ids := make([]string, 0, len(events))
	initiatorIDs := make([]string, 0, len(events))
	seenInitiator := make(map[string]struct{}, len(events))
	oldest := events[0].CreatedOn
	for _, e := range events {
		ids = append(ids, e.ID)
		if _, ok := seenInitiator[e.InitiatorID]; !ok {
			seenInitiator[e.InitiatorID] = struct{}{}
			initiatorIDs = append(initiatorIDs, e.InitiatorID)
		}
		if e.CreatedOn.Before(oldest) {
			oldest = e.CreatedOn
		}
	}
	start, end := ViewWindow(oldest, a.nowFn())

	var (
		profiles  []v1.UserShort
		confirmed map[string]int
		views     map[string]int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profiles, err = a.users.ShortProfiles(gCtx, initiatorIDs)
		return err
	})
	g.Go(func() (err error) {
		confirmed, err = a.confirmedCounts(gCtx, ids)
		return err
	})
	g.Go(func() (err error) {
		views, err = a.viewCounts(gCtx, events, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("project %d events: %w", len(events), err)
	}

	byID := make(map[string]v1.UserShort, len(profiles))
	for _, u := range profiles {
		byID[u.ID] = u
	}

	out := make([]P, 0, len(events))
	for _, e := range events {
		initiator, ok := byID[e.InitiatorID]
		if !ok {
			slog.Warn("[Metrics] Initiator profile missing", "event_id", e.ID, "initiator_id", e.InitiatorID)
			initiator = v1.UserShort{ID: e.InitiatorID}
		}
		p := build(e, initiator)
		p.SetConfirmedRequests(confirmed[e.ID])
		p.SetViews(views[e.ID])
		out = append(out, p)
	}
	return out, nil
}

// FilterAvailable drops projections whose event is exactly at capacity.
func FilterAvailable[P interface {
	v1.Projection
	HasCapacity() bool
}](ps []P) []P {
	out := make([]P, 0, len(ps))
	for _, p := range ps {
		if p.HasCapacity() {
			out = append(out, p)
		}
	}
	return out
}

// confirmedCounts returns a count for every id. Ids absent from the response count as zero.
func (a *Aggregator) confirmedCounts(ctx context.Context, ids []string) (map[string]int, error) {
	counts, err := a.counts.ConfirmedCounts(ctx, ids)
	if err != nil {
		if a.strict {
			return nil, fmt.Errorf("confirmed counts: %w", err)
		}
		slog.Warn("[Metrics] Confirmed counts unavailable, serving last known values", "events", len(ids), "error", err)
		fallback := make(map[string]int, len(ids))
		for _, id := range ids {
			fallback[id], _ = a.lastConfirmed.Get(id)
		}
		return fallback, nil
	}

	out := make(map[string]int, len(ids))
	for _, id := range ids {
		out[id] = counts[id]
		a.lastConfirmed.Put(id, counts[id])
	}
	return out, nil
}

// viewCounts returns unique-visitor hits keyed by event id. URIs absent from the response count as zero.
func (a *Aggregator) viewCounts(ctx context.Context, events []*v1.Event, start, end time.Time) (map[string]int64, error) {
	uris := make([]string, 0, len(events))
	for _, e := range events {
		uris = append(uris, e.URI())
	}

	hits, err := a.views.Hits(ctx, uris, start, end, true)
	if err != nil {
		if a.strict {
			return nil, fmt.Errorf("view counts: %w", err)
		}
		slog.Warn("[Metrics] View counts unavailable, serving last known values", "events", len(events), "error", err)
		fallback := make(map[string]int64, len(events))
		for _, e := range events {
			fallback[e.ID], _ = a.lastViews.Get(e.ID)
		}
		return fallback, nil
	}

	out := make(map[string]int64, len(events))
	for _, e := range events {
		n := hits[e.URI()]
		out[e.ID] = n
		a.lastViews.Put(e.ID, n)
	}
	return out, nil
}
