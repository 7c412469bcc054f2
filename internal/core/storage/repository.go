package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a requester already holds an active request for the event.
	ErrDuplicate = errors.New("active request already exists")

	// ErrStale is returned by compare-and-swap writes when the stored status no longer matches.
	ErrStale = errors.New("record changed concurrently")
)

// EventFilter narrows Search. Zero values mean "no constraint".
type EventFilter struct {
	Initiators []string
	States     []v1.EventState
	Categories []int64

	// Text matches annotation or description, case-insensitively.
	Text string
	Paid *bool

	EventDateFrom *time.Time
	EventDateTo   *time.Time
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// EventStore persists Event records. Lists are ordered by event date, then id.
type EventStore interface {
	Create(ctx context.Context, event *v1.Event) error
	Save(ctx context.Context, event *v1.Event) error

	FindByID(ctx context.Context, id string) (*v1.Event, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*v1.Event, error)
	FindByIDAndState(ctx context.Context, id string, state v1.EventState) (*v1.Event, error)

	// FindManyByIDs silently skips unknown ids.
	FindManyByIDs(ctx context.Context, ids []string) ([]*v1.Event, error)
	FindByInitiator(ctx context.Context, initiatorID string) ([]*v1.Event, error)
	Search(ctx context.Context, filter EventFilter) ([]*v1.Event, error)
}

// RequestReader is the read side of RequestStore. Lists are ordered by creation time, then id.
type RequestReader interface {
	FindByID(ctx context.Context, id string) (*v1.Request, error)
	FindAllByEvent(ctx context.Context, eventID string) ([]*v1.Request, error)
	FindAllByRequester(ctx context.Context, requesterID string) ([]*v1.Request, error)

	// ExistsActive reports whether the requester holds a PENDING or CONFIRMED request for the event.
	ExistsActive(ctx context.Context, eventID, requesterID string) (bool, error)
	CountByEventAndStatus(ctx context.Context, eventID string, status v1.RequestStatus) (int, error)
}

// RequestWriter is the write side of RequestStore.
type RequestWriter interface {
	// Create returns ErrDuplicate when an active request for the same pair exists.
	Create(ctx context.Context, req *v1.Request) error

	// UpdateStatus moves a request from one status to another, or returns ErrStale.
	UpdateStatus(ctx context.Context, id string, from, to v1.RequestStatus) error
}

// RequestTx is the store handle passed to WithinEvent callbacks.
type RequestTx interface {
	RequestReader
	RequestWriter
}

// RequestStore persists participation Requests.
type RequestStore interface {
	RequestTx

	// ConfirmedCounts returns the CONFIRMED count per event. Events without confirmations are absent.
	ConfirmedCounts(ctx context.Context, eventIDs []string) (map[string]int, error)

	// WithinEvent runs fn serialized against every other WithinEvent call for the same event.
	// Writes made through tx are discarded if fn returns an error.
	WithinEvent(ctx context.Context, eventID string, fn func(tx RequestTx) error) error
}

// ViewCounter reports hit counts recorded by the stats service. Absent keys mean zero.
type ViewCounter interface {
	Hits(ctx context.Context, uris []string, start, end time.Time, unique bool) (map[string]int64, error)
}

// HitRecorder records one view of a public endpoint with the stats service.
type HitRecorder interface {
	Hit(ctx context.Context, uri, ip string, at time.Time) error
}

// UserDirectory resolves public user profiles.
type UserDirectory interface {
	// ShortProfile returns ErrNotFound for unknown users.
	ShortProfile(ctx context.Context, userID string) (v1.UserShort, error)

	// ShortProfiles silently skips unknown ids.
	ShortProfiles(ctx context.Context, userIDs []string) ([]v1.UserShort, error)
}

// ConfirmedCounter is the event-service view of the request-service counters.
type ConfirmedCounter interface {
	ConfirmedCounts(ctx context.Context, eventIDs []string) (map[string]int, error)
}

// EventReader is the request-service view of event records. Both methods return ErrNotFound on a miss.
type EventReader interface {
	EventByID(ctx context.Context, id string) (*v1.Event, error)
	EventByOwner(ctx context.Context, id, ownerID string) (*v1.Event, error)
}
