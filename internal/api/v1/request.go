package v1

import (
	"fmt"
	"time"
)

// RequestStatus is the admission status of a participation Request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestConfirmed RequestStatus = "CONFIRMED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestCanceled  RequestStatus = "CANCELED"
)

// Terminal reports whether no further transition is defined out of s.
func (s RequestStatus) Terminal() bool {
	return s == RequestConfirmed || s == RequestRejected || s == RequestCanceled
}

// Active reports whether a request in status s occupies the requester's slot for its event.
func (s RequestStatus) Active() bool {
	return s == RequestPending || s == RequestConfirmed
}

// ErrTerminal is returned by Transition when the request already left PENDING.
var ErrTerminal = fmt.Errorf("request status is terminal")

// Request is a user's ask to participate in an event.
type Request struct {
	ID          string        `json:"id"`
	EventID     string        `json:"event"`
	RequesterID string        `json:"requester"`
	Status      RequestStatus `json:"status"`
	Created     time.Time     `json:"created"`
}

// Transition moves the request from PENDING to a terminal status.
func (r *Request) Transition(to RequestStatus) error {
	if r.Status != RequestPending {
		return fmt.Errorf("%w: request %s is %s", ErrTerminal, r.ID, r.Status)
	}
	if !to.Terminal() {
		return fmt.Errorf("invalid target status %q", to)
	}
	r.Status = to
	return nil
}

// StatusUpdate is an owner's batch moderation decision.
type StatusUpdate struct {
	RequestIDs []string      `json:"request_ids"`
	Status     RequestStatus `json:"status"`
}

// Validate ensures the batch targets a moderation outcome and names each request once.
func (u *StatusUpdate) Validate() error {
	if u.Status != RequestConfirmed && u.Status != RequestRejected {
		return fmt.Errorf("status must be %s or %s, got %q", RequestConfirmed, RequestRejected, u.Status)
	}
	if len(u.RequestIDs) == 0 {
		return fmt.Errorf("request_ids is required")
	}
	seen := make(map[string]struct{}, len(u.RequestIDs))
	for _, id := range u.RequestIDs {
		if id == "" {
			return fmt.Errorf("request_ids must not contain empty ids")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("request id %s listed twice", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// StatusUpdateResult splits a batch outcome. RejectedRequests also carries
// requests canceled because the event ran out of capacity.
type StatusUpdateResult struct {
	ConfirmedRequests []Request `json:"confirmed_requests"`
	RejectedRequests  []Request `json:"rejected_requests"`
}

// ConfirmedCount is the wire shape of the per-event confirmed counter.
type ConfirmedCount struct {
	EventID string `json:"event_id"`
	Count   int    `json:"count"`
}
