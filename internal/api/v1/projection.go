package v1

import "time"

// UserShort is the public identity of a user.
type UserShort struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Projection is a renderable view of an Event that can be decorated with counters.
type Projection interface {
	SetConfirmedRequests(n int)
	SetViews(n int64)
}

// EventFull is the detailed projection returned for single-event reads and admin listings.
type EventFull struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Annotation        string     `json:"annotation"`
	Description       string     `json:"description"`
	CategoryID        int64      `json:"category_id"`
	Initiator         UserShort  `json:"initiator"`
	Location          Location   `json:"location"`
	Paid              bool       `json:"paid"`
	ParticipantLimit  int        `json:"participant_limit"`
	RequestModeration bool       `json:"request_moderation"`
	State             EventState `json:"state"`
	EventDate         time.Time  `json:"event_date"`
	CreatedOn         time.Time  `json:"created_on"`
	PublishedOn       *time.Time `json:"published_on,omitempty"`
	ConfirmedRequests int        `json:"confirmed_requests"`
	Views             int64      `json:"views"`
}

// NewEventFull copies the static fields of e.
func NewEventFull(e *Event, initiator UserShort) *EventFull {
	return &EventFull{
		ID:                e.ID,
		Title:             e.Title,
		Annotation:        e.Annotation,
		Description:       e.Description,
		CategoryID:        e.CategoryID,
		Initiator:         initiator,
		Location:          e.Location,
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		RequestModeration: e.RequestModeration,
		State:             e.State,
		EventDate:         e.EventDate,
		CreatedOn:         e.CreatedOn,
		PublishedOn:       e.PublishedOn,
	}
}

func (p *EventFull) SetConfirmedRequests(n int) { p.ConfirmedRequests = n }
func (p *EventFull) SetViews(n int64)           { p.Views = n }

// HasCapacity reports whether the event still admits participants.
func (p *EventFull) HasCapacity() bool {
	return hasCapacity(p.ParticipantLimit, p.ConfirmedRequests)
}

// EventShort is the compact projection used in listings.
type EventShort struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Annotation        string    `json:"annotation"`
	CategoryID        int64     `json:"category_id"`
	Initiator         UserShort `json:"initiator"`
	Paid              bool      `json:"paid"`
	EventDate         time.Time `json:"event_date"`
	ConfirmedRequests int       `json:"confirmed_requests"`
	Views             int64     `json:"views"`

	// kept for capacity filtering, not rendered
	ParticipantLimit int `json:"-"`
}

// NewEventShort copies the listing fields of e.
func NewEventShort(e *Event, initiator UserShort) *EventShort {
	return &EventShort{
		ID:               e.ID,
		Title:            e.Title,
		Annotation:       e.Annotation,
		CategoryID:       e.CategoryID,
		Initiator:        initiator,
		Paid:             e.Paid,
		EventDate:        e.EventDate,
		ParticipantLimit: e.ParticipantLimit,
	}
}

func (p *EventShort) SetConfirmedRequests(n int) { p.ConfirmedRequests = n }
func (p *EventShort) SetViews(n int64)           { p.Views = n }

// HasCapacity reports whether the event still admits participants.
func (p *EventShort) HasCapacity() bool {
	return hasCapacity(p.ParticipantLimit, p.ConfirmedRequests)
}

// An unlimited event is always available. Otherwise only an exact match with the limit excludes it.
func hasCapacity(limit, confirmed int) bool {
	return limit == 0 || confirmed != limit
}
