package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	httperr "github.com/rendezvous-lab/rendezvous/internal/core/errors"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
	"github.com/rendezvous-lab/rendezvous/internal/lifecycle"
	"github.com/rendezvous-lab/rendezvous/internal/metrics"
)

const hitTimeout = 2 * time.Second

// Service is the event-service facade: writes go through the lifecycle,
// reads come straight from the store and are decorated by the aggregator.
type Service struct {
	store     storage.EventStore
	lifecycle *lifecycle.Service
	metrics   *metrics.Aggregator
	hits      storage.HitRecorder

	maxBodyBytes int64
	nowFn        func() time.Time
}

// NewService wires the event-service. hits may be nil to disable view recording.
func NewService(
	store storage.EventStore,
	lc *lifecycle.Service,
	agg *metrics.Aggregator,
	hits storage.HitRecorder,
	maxBodySizeMB int,
) *Service {
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1
	}
	return &Service{
		store:        store,
		lifecycle:    lc,
		metrics:      agg,
		hits:         hits,
		maxBodyBytes: int64(maxBodySizeMB) * 1024 * 1024,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Service) Create(ctx context.Context, userID string, in v1.NewEvent) (*v1.EventFull, error) {
	event, err := s.lifecycle.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return metrics.Project(ctx, s.metrics, event, metrics.Full)
}

func (s *Service) UpdateByUser(ctx context.Context, userID, eventID string, req v1.UpdateEventUserRequest) (*v1.EventFull, error) {
	event, err := s.lifecycle.UpdateByUser(ctx, userID, eventID, req)
	if err != nil {
		return nil, err
	}
	return metrics.Project(ctx, s.metrics, event, metrics.Full)
}

func (s *Service) UpdateByAdmin(ctx context.Context, eventID string, req v1.UpdateEventAdminRequest) (*v1.EventFull, error) {
	event, err := s.lifecycle.UpdateByAdmin(ctx, eventID, req)
	if err != nil {
		return nil, err
	}
	return metrics.Project(ctx, s.metrics, event, metrics.Full)
}

// ListOwn returns every event of userID, whatever its state.
func (s *Service) ListOwn(ctx context.Context, userID string) ([]*v1.EventShort, error) {
	events, err := s.store.FindByInitiator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events of %s: %w", userID, err)
	}
	return metrics.ProjectMany(ctx, s.metrics, events, metrics.Short)
}

func (s *Service) GetOwn(ctx context.Context, userID, eventID string) (*v1.EventFull, error) {
	event, err := s.store.FindByIDAndOwner(ctx, eventID, userID)
	if err != nil {
		return nil, notFound(eventID, err)
	}
	return metrics.Project(ctx, s.metrics, event, metrics.Full)
}

// GetPublished returns a PUBLISHED event. Any other state is reported as not found.
func (s *Service) GetPublished(ctx context.Context, eventID string) (*v1.EventFull, error) {
	event, err := s.store.FindByIDAndState(ctx, eventID, v1.StatePublished)
	if err != nil {
		return nil, notFound(eventID, err)
	}
	return metrics.Project(ctx, s.metrics, event, metrics.Full)
}

func (s *Service) SearchAdmin(ctx context.Context, q AdminQuery) ([]*v1.EventFull, error) {
	events, err := s.store.Search(ctx, q.filter())
	if err != nil {
		return nil, fmt.Errorf("admin search: %w", err)
	}
	return metrics.ProjectMany(ctx, s.metrics, events, metrics.Full)
}

// SearchPublic lists upcoming PUBLISHED events. With OnlyAvailable, events exactly at capacity are dropped.
func (s *Service) SearchPublic(ctx context.Context, q PublicQuery) ([]*v1.EventShort, error) {
	events, err := s.store.Search(ctx, q.filter(s.nowFn()))
	if err != nil {
		return nil, fmt.Errorf("public search: %w", err)
	}
	out, err := metrics.ProjectMany(ctx, s.metrics, events, metrics.Short)
	if err != nil {
		return nil, err
	}
	if q.OnlyAvailable {
		out = metrics.FilterAvailable(out)
	}
	return out, nil
}

// FindByIDs returns the known events among ids. Unknown ids are skipped.
func (s *Service) FindByIDs(ctx context.Context, ids []string) ([]*v1.EventShort, error) {
	events, err := s.store.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find %d events: %w", len(ids), err)
	}
	return metrics.ProjectMany(ctx, s.metrics, events, metrics.Short)
}

// RawByID returns the stored record in any state. It backs the request-service lookups.
func (s *Service) RawByID(ctx context.Context, eventID string) (*v1.Event, error) {
	event, err := s.store.FindByID(ctx, eventID)
	if err != nil {
		return nil, notFound(eventID, err)
	}
	return event, nil
}

func (s *Service) RawByOwner(ctx context.Context, userID, eventID string) (*v1.Event, error) {
	event, err := s.store.FindByIDAndOwner(ctx, eventID, userID)
	if err != nil {
		return nil, notFound(eventID, err)
	}
	return event, nil
}

// RecordHit reports a public view to the stats service. Failures are logged and dropped.
func (s *Service) RecordHit(ctx context.Context, uri, ip string) {
	if s.hits == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hitTimeout)
	defer cancel()

	if err := s.hits.Hit(ctx, uri, ip, s.nowFn()); err != nil {
		slog.Warn("[Events] Failed to record hit", "uri", uri, "ip", ip, "error", err)
	}
}

func notFound(eventID string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return httperr.NotFoundf("event %s", eventID)
	}
	return fmt.Errorf("load event %s: %w", eventID, err)
}
