package lifecycle

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

// Minimum lead time between "now" and an event's date, by actor.
const (
	UserLeadTime  = 2 * time.Hour
	AdminLeadTime = 1 * time.Hour
)

// Service owns Event state transitions and edit-permission rules.
// It holds no state between calls: every operation loads, mutates a copy and saves.
type Service struct {
	store storage.EventStore
	users storage.UserDirectory
	nowFn func() time.Time
}

// NewService creates a new lifecycle service.
func NewService(store storage.EventStore, users storage.UserDirectory) *Service {
	if store == nil {
		panic("lifecycle: store must not be nil")
	}
	if users == nil {
		panic("lifecycle: user directory must not be nil")
	}
	return &Service{
		store: store,
		users: users,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Create persists a new PENDING event for initiatorID.
func (s *Service) Create(ctx context.Context, initiatorID string, in v1.NewEvent) (*v1.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, httperr.BadRequestf("%v", err)
	}
	now := s.nowFn()
	if err := checkLeadTime(in.EventDate, now, UserLeadTime); err != nil {
		return nil, err
	}

	initiator, err := s.users.ShortProfile(ctx, initiatorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httperr.NotFoundf("user %s", initiatorID)
		}
		return nil, fmt.Errorf("resolve initiator %s: %w", initiatorID, err)
	}

	event := &v1.Event{
		ID:                uuid.NewString(),
		InitiatorID:       initiator.ID,
		CategoryID:        in.CategoryID,
		Title:             in.Title,
		Annotation:        in.Annotation,
		Description:       in.Description,
		Location:          *in.Location,
		RequestModeration: true,
		State:             v1.StatePending,
		EventDate:         in.EventDate,
		CreatedOn:         now,
	}
	if in.Paid != nil {
		event.Paid = *in.Paid
	}
	if in.ParticipantLimit != nil {
		event.ParticipantLimit = *in.ParticipantLimit
	}
	if in.RequestModeration != nil {
		event.RequestModeration = *in.RequestModeration
	}

	if err := s.store.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	slog.Info("[EventLifecycle] Event created",
		"event_id", event.ID,
		"initiator_id", event.InitiatorID,
		"event_date", event.EventDate,
	)
	return event, nil
}

// UpdateByUser applies an initiator's patch to an unpublished event they own.
func (s *Service) UpdateByUser(ctx context.Context, userID, eventID string, req v1.UpdateEventUserRequest) (*v1.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, httperr.BadRequestf("%v", err)
	}

	event, err := s.store.FindByIDAndOwner(ctx, eventID, userID)
	if err != nil {
		return nil, lookupErr(eventID, err)
	}
	if event.State == v1.StatePublished {
		return nil, httperr.Conflictf("event %s is published and can no longer be changed by its initiator", eventID)
	}
	if req.EventDate != nil {
		if err := checkLeadTime(*req.EventDate, s.nowFn(), UserLeadTime); err != nil {
			return nil, err
		}
	}

	from := event.State
	if req.StateAction != nil {
		if *req.StateAction == v1.SendToReview {
			event.State = v1.StatePending
		} else {
			event.State = v1.StateCanceled
		}
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	req.ApplyTo(event)

	if err := s.store.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event %s: %w", eventID, err)
	}

	slog.Info("[EventLifecycle] Event updated by initiator",
		"event_id", eventID,
		"user_id", userID,
		"from", from,
		"to", event.State,
	)
	return event, nil
}

// UpdateByAdmin applies a moderator's patch to an event awaiting moderation.
func (s *Service) UpdateByAdmin(ctx context.Context, eventID string, req v1.UpdateEventAdminRequest) (*v1.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, httperr.BadRequestf("%v", err)
	}

	event, err := s.store.FindByID(ctx, eventID)
	if err != nil {
		return nil, lookupErr(eventID, err)
	}
	if event.State != v1.StatePending {
		return nil, httperr.Conflictf("only pending events can be moderated, event %s is %s", eventID, event.State)
	}
	now := s.nowFn()
	if req.EventDate != nil {
		if err := checkLeadTime(*req.EventDate, now, AdminLeadTime); err != nil {
			return nil, err
		}
	}

	if req.StateAction != nil {
		if *req.StateAction == v1.PublishEvent {
			event.State = v1.StatePublished
			event.PublishedOn = &now
		} else {
			event.State = v1.StateRejected
		}
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	req.ApplyTo(event)

	if err := s.store.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event %s: %w", eventID, err)
	}

	slog.Info("[EventLifecycle] Event moderated",
		"event_id", eventID,
		"from", v1.StatePending,
		"to", event.State,
	)
	return event, nil
}

// checkLeadTime allows exactly min and anything later.
func checkLeadTime(date, now time.Time, min time.Duration) error {
	if date.Before(now.Add(min)) {
		return httperr.BadRequestf("event date %s must be at least %s after now", date.Format(time.RFC3339), min)
	}
	return nil
}

func lookupErr(eventID string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return httperr.NotFoundf("event %s", eventID)
	}
	return fmt.Errorf("load event %s: %w", eventID, err)
}
