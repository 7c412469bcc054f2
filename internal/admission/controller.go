package admission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	httperr "github.com/rendezvous-lab/rendezvous/internal/core/errors"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
)

// Controller owns Request status transitions.
// Every check-then-act sequence runs inside RequestStore.WithinEvent, so concurrent
// admissions for one event cannot overbook it.
type Controller struct {
	store  storage.RequestStore
	events storage.EventReader
	users  storage.UserDirectory
	nowFn  func() time.Time
}

// NewController creates a new admission controller.
func NewController(store storage.RequestStore, events storage.EventReader, users storage.UserDirectory) *Controller {
	if store == nil {
		panic("admission: request store must not be nil")
	}
	if events == nil {
		panic("admission: event reader must not be nil")
	}
	if users == nil {
		panic("admission: user directory must not be nil")
	}
	return &Controller{
		store:  store,
		events: events,
		users:  users,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Create submits requesterID's participation request for eventID.
func (c *Controller) Create(ctx context.Context, requesterID, eventID string) (*v1.Request, error) {
	event, err := c.events.EventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.Conflictf("event %s does not exist", eventID)
		}
		return nil, fmt.Errorf("resolve event %s: %w", eventID, err)
	}
	if _, err := c.users.ShortProfile(ctx, requesterID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFoundf("user %s", requesterID)
		}
		return nil, fmt.Errorf("resolve requester %s: %w", requesterID, err)
	}

	req := &v1.Request{
		ID:          uuid.NewString(),
		EventID:     eventID,
		RequesterID: requesterID,
		Status:      v1.RequestPending,
		Created:     c.nowFn(),
	}
	if event.ModerationOff() {
		req.Status = v1.RequestConfirmed
	}

	err = c.store.WithinEvent(ctx, eventID, func(tx storage.RequestTx) error {
		if event.State != v1.StatePublished {
			return httperr.Conflictf("event %s is not published", eventID)
		}
		exists, err := tx.ExistsActive(ctx, eventID, requesterID)
		if err != nil {
			return fmt.Errorf("check existing request: %w", err)
		}
		if exists {
			return httperr.Duplicatef("user %s already has an active request for event %s", requesterID, eventID)
		}
		if requesterID == event.InitiatorID {
			return httperr.Conflictf("initiator cannot request participation in their own event")
		}
		if event.ParticipantLimit != 0 {
			confirmed, err := tx.CountByEventAndStatus(ctx, eventID, v1.RequestConfirmed)
			if err != nil {
				return fmt.Errorf("count confirmed requests: %w", err)
			}
			if confirmed >= event.ParticipantLimit {
				return httperr.Conflictf("event %s reached its participant limit of %d", eventID, event.ParticipantLimit)
			}
		}
		if err := tx.Create(ctx, req); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return httperr.Duplicatef("user %s already has an active request for event %s", requesterID, eventID)
			}
			return fmt.Errorf("save request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("[Admission] Request created",
		"request_id", req.ID,
		"event_id", eventID,
		"requester_id", requesterID,
		"status", req.Status,
	)
	return req, nil
}

// BatchUpdate applies the owner's moderation decision to a set of pending requests.
// The batch is all-or-nothing: either every referenced request transitions or none does.
//
// Requests are processed in store order (creation time, then id). When confirming, the
// earliest requests take the remaining capacity and the rest are CANCELED, not REJECTED.
func (c *Controller) BatchUpdate(ctx context.Context, ownerID, eventID string, upd v1.StatusUpdate) (*v1.StatusUpdateResult, error) {
	if err := upd.Validate(); err != nil {
		return nil, httperr.BadRequestf("%v", err)
	}

	event, err := c.events.EventByOwner(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFoundf("event %s", eventID)
		}
		return nil, fmt.Errorf("resolve event %s: %w", eventID, err)
	}

	result := &v1.StatusUpdateResult{
		ConfirmedRequests: []v1.Request{},
		RejectedRequests:  []v1.Request{},
	}
	if event.ModerationOff() {
		return result, nil
	}

	err = c.store.WithinEvent(ctx, eventID, func(tx storage.RequestTx) error {
		selected, err := selectPending(ctx, tx, eventID, upd.RequestIDs)
		if err != nil {
			return err
		}

		if upd.Status == v1.RequestRejected {
			for _, r := range selected {
				if err := transition(ctx, tx, r, v1.RequestRejected); err != nil {
					return err
				}
				result.RejectedRequests = append(result.RejectedRequests, *r)
			}
			return nil
		}

		confirmed, err := tx.CountByEventAndStatus(ctx, eventID, v1.RequestConfirmed)
		if err != nil {
			return fmt.Errorf("count confirmed requests: %w", err)
		}
		remaining := event.ParticipantLimit - confirmed
		if remaining <= 0 {
			return httperr.Conflictf("event %s reached its participant limit of %d", eventID, event.ParticipantLimit)
		}
		for _, r := range selected {
			if remaining > 0 {
				if err := transition(ctx, tx, r, v1.RequestConfirmed); err != nil {
					return err
				}
				remaining--
				result.ConfirmedRequests = append(result.ConfirmedRequests, *r)
				continue
			}
			if err := transition(ctx, tx, r, v1.RequestCanceled); err != nil {
				return err
			}
			result.RejectedRequests = append(result.RejectedRequests, *r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("[Admission] Batch status update applied",
		"event_id", eventID,
		"target", upd.Status,
		"confirmed", len(result.ConfirmedRequests),
		"rejected_or_canceled", len(result.RejectedRequests),
	)
	return result, nil
}

// Cancel withdraws the requester's own pending request.
func (c *Controller) Cancel(ctx context.Context, userID, requestID string) (*v1.Request, error) {
	req, err := c.store.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFoundf("request %s", requestID)
		}
		return nil, fmt.Errorf("load request %s: %w", requestID, err)
	}
	if req.RequesterID != userID {
		return nil, httperr.NotFoundf("request %s", requestID)
	}

	err = c.store.WithinEvent(ctx, req.EventID, func(tx storage.RequestTx) error {
		current, err := tx.FindByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("reload request %s: %w", requestID, err)
		}
		if err := transition(ctx, tx, current, v1.RequestCanceled); err != nil {
			return err
		}
		req = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("[Admission] Request canceled by requester", "request_id", requestID, "user_id", userID)
	return req, nil
}

// ListByRequester returns the user's own requests in creation order.
func (c *Controller) ListByRequester(ctx context.Context, userID string) ([]*v1.Request, error) {
	reqs, err := c.store.FindAllByRequester(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests of %s: %w", userID, err)
	}
	return reqs, nil
}

// ListByEvent returns every request for an event owned by ownerID.
func (c *Controller) ListByEvent(ctx context.Context, ownerID, eventID string) ([]*v1.Request, error) {
	if _, err := c.events.EventByOwner(ctx, eventID, ownerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFoundf("event %s", eventID)
		}
		return nil, fmt.Errorf("resolve event %s: %w", eventID, err)
	}
	reqs, err := c.store.FindAllByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list requests of event %s: %w", eventID, err)
	}
	return reqs, nil
}

// ConfirmedCounts returns the CONFIRMED count per event id. Events without confirmations are absent.
func (c *Controller) ConfirmedCounts(ctx context.Context, eventIDs []string) (map[string]int, error) {
	if len(eventIDs) == 0 {
		return map[string]int{}, nil
	}
	counts, err := c.store.ConfirmedCounts(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("count confirmed requests: %w", err)
	}
	return counts, nil
}

// selectPending returns the PENDING requests of the event whose id is in ids, in store order.
func selectPending(ctx context.Context, tx storage.RequestTx, eventID string, ids []string) ([]*v1.Request, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	all, err := tx.FindAllByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load requests of event %s: %w", eventID, err)
	}
	selected := make([]*v1.Request, 0, len(ids))
	for _, r := range all {
		if _, ok := wanted[r.ID]; ok && r.Status == v1.RequestPending {
			selected = append(selected, r)
		}
	}
	if len(selected) != len(ids) {
		return nil, httperr.Conflictf("%d of %d requests are not pending for event %s", len(ids)-len(selected), len(ids), eventID)
	}
	return selected, nil
}

func transition(ctx context.Context, tx storage.RequestTx, r *v1.Request, to v1.RequestStatus) error {
	from := r.Status
	if err := r.Transition(to); err != nil {
		if errors.Is(err, v1.ErrTerminal) {
			return httperr.Conflictf("%v", err)
		}
		return err
	}
	if err := tx.UpdateStatus(ctx, r.ID, from, to); err != nil {
		if errors.Is(err, storage.ErrStale) {
			return httperr.Conflictf("request %s changed concurrently", r.ID)
		}
		return fmt.Errorf("update request %s: %w", r.ID, err)
	}
	return nil
}
