package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EventState is the moderation state of an Event.
type EventState string

const (
	// StatePending is the only non-terminal state. Every event starts here.
	StatePending   EventState = "PENDING"
	StatePublished EventState = "PUBLISHED"
	StateCanceled  EventState = "CANCELED"
	StateRejected  EventState = "REJECTED"
)

// Valid reports whether s is one of the known states.
func (s EventState) Valid() bool {
	switch s {
	case StatePending, StatePublished, StateCanceled, StateRejected:
		return true
	}
	return false
}

// UserStateAction is the state change an initiator may request on their own event.
type UserStateAction string

const (
	SendToReview UserStateAction = "SEND_TO_REVIEW"
	CancelReview UserStateAction = "CANCEL_REVIEW"
)

// AdminStateAction is the moderation decision an administrator may take.
type AdminStateAction string

const (
	PublishEvent AdminStateAction = "PUBLISH_EVENT"
	RejectEvent  AdminStateAction = "REJECT_EVENT"
)

// CoordinateScale is the number of decimal places stored for a coordinate.
const CoordinateScale = 6

var (
	maxLat = decimal.NewFromInt(90)
	maxLon = decimal.NewFromInt(180)
)

// Location is the geographic point where an event takes place.
// Coordinates are exact decimals; Validate rejects any the NUMERIC(9, 6) columns would round.
type Location struct {
	Lat decimal.Decimal `json:"lat"`
	Lon decimal.Decimal `json:"lon"`
}

// Validate checks coordinate ranges and scale.
func (l Location) Validate() error {
	if l.Lat.Abs().GreaterThan(maxLat) {
		return fmt.Errorf("location.lat %s out of range [-90, 90]", l.Lat)
	}
	if l.Lon.Abs().GreaterThan(maxLon) {
		return fmt.Errorf("location.lon %s out of range [-180, 180]", l.Lon)
	}
	if !l.Lat.Equal(l.Lat.Round(CoordinateScale)) || !l.Lon.Equal(l.Lon.Round(CoordinateScale)) {
		return fmt.Errorf("location coordinates allow at most %d decimal places", CoordinateScale)
	}
	return nil
}

// Event is a bookable activity created by an initiator.
type Event struct {
	ID          string `json:"id"`
	InitiatorID string `json:"initiator_id"`
	CategoryID  int64  `json:"category_id"`

	Title       string   `json:"title"`
	Annotation  string   `json:"annotation"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
	Paid        bool     `json:"paid"`

	// ParticipantLimit of 0 means unlimited.
	ParticipantLimit  int  `json:"participant_limit"`
	RequestModeration bool `json:"request_moderation"`

	State     EventState `json:"state"`
	EventDate time.Time  `json:"event_date"`
	CreatedOn time.Time  `json:"created_on"`

	// PublishedOn is set if and only if State == StatePublished.
	PublishedOn *time.Time `json:"published_on,omitempty"`
}

// ModerationOff reports whether join-requests are admitted without explicit approval.
// An unlimited event never needs moderation, whatever its RequestModeration flag says.
func (e *Event) ModerationOff() bool {
	return !e.RequestModeration || e.ParticipantLimit == 0
}

// URI is the stats path under which views of this event are recorded.
func (e *Event) URI() string {
	return EventURI(e.ID)
}

// EventURI derives the stats path for an event id.
func EventURI(id string) string {
	return "/events/" + id
}

// NewEvent is the payload for creating an event.
type NewEvent struct {
	Title             string    `json:"title"`
	Annotation        string    `json:"annotation"`
	Description       string    `json:"description"`
	CategoryID        int64     `json:"category_id"`
	EventDate         time.Time `json:"event_date"`
	Location          *Location `json:"location"`
	Paid              *bool     `json:"paid,omitempty"`
	ParticipantLimit  *int      `json:"participant_limit,omitempty"`
	RequestModeration *bool     `json:"request_moderation,omitempty"`
}

// Validate ensures all required fields are present and well formed.
func (n *NewEvent) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(n.Annotation) == "" {
		return fmt.Errorf("annotation is required")
	}
	if strings.TrimSpace(n.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if n.CategoryID <= 0 {
		return fmt.Errorf("category_id is required")
	}
	if n.EventDate.IsZero() {
		return fmt.Errorf("event_date is required")
	}
	if n.Location == nil {
		return fmt.Errorf("location is required")
	}
	if err := n.Location.Validate(); err != nil {
		return err
	}
	if n.ParticipantLimit != nil && *n.ParticipantLimit < 0 {
		return fmt.Errorf("participant_limit must be >= 0")
	}
	return nil
}

// EventPatch carries the descriptive fields shared by user and admin updates.
// A nil field is absent from the patch and leaves the stored value untouched.
type EventPatch struct {
	Title             *string    `json:"title,omitempty"`
	Annotation        *string    `json:"annotation,omitempty"`
	Description       *string    `json:"description,omitempty"`
	CategoryID        *int64     `json:"category_id,omitempty"`
	EventDate         *time.Time `json:"event_date,omitempty"`
	Location          *Location  `json:"location,omitempty"`
	Paid              *bool      `json:"paid,omitempty"`
	ParticipantLimit  *int       `json:"participant_limit,omitempty"`
	RequestModeration *bool      `json:"request_moderation,omitempty"`
}

// Validate rejects values that could never be stored. Lead-time rules are enforced by the lifecycle.
func (p *EventPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("title must not be blank")
	}
	if p.Annotation != nil && strings.TrimSpace(*p.Annotation) == "" {
		return fmt.Errorf("annotation must not be blank")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return fmt.Errorf("description must not be blank")
	}
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		return fmt.Errorf("category_id must be positive")
	}
	if p.ParticipantLimit != nil && *p.ParticipantLimit < 0 {
		return fmt.Errorf("participant_limit must be >= 0")
	}
	if p.Location != nil {
		if err := p.Location.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo overwrites the fields of e that are present in the patch.
// EventDate is not applied here; callers check its lead time first.
func (p *EventPatch) ApplyTo(e *Event) {
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.Annotation != nil {
		e.Annotation = *p.Annotation
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Paid != nil {
		e.Paid = *p.Paid
	}
	if p.ParticipantLimit != nil {
		e.ParticipantLimit = *p.ParticipantLimit
	}
	if p.RequestModeration != nil {
		e.RequestModeration = *p.RequestModeration
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
}

// UpdateEventUserRequest is an initiator's partial update of their own event.
type UpdateEventUserRequest struct {
	EventPatch
	StateAction *UserStateAction `json:"state_action,omitempty"`
}

// Validate checks the patch and the optional state action.
func (r *UpdateEventUserRequest) Validate() error {
	if r.StateAction != nil && *r.StateAction != SendToReview && *r.StateAction != CancelReview {
		return fmt.Errorf("invalid state_action %q", *r.StateAction)
	}
	return r.EventPatch.Validate()
}

// UpdateEventAdminRequest is a moderator's partial update of a pending event.
type UpdateEventAdminRequest struct {
	EventPatch
	StateAction *AdminStateAction `json:"state_action,omitempty"`
}

// Validate checks the patch and the optional state action.
func (r *UpdateEventAdminRequest) Validate() error {
	if r.StateAction != nil && *r.StateAction != PublishEvent && *r.StateAction != RejectEvent {
		return fmt.Errorf("invalid state_action %q", *r.StateAction)
	}
	return r.EventPatch.Validate()
}
