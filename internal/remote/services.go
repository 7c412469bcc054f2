package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
)

// RequestClient reads counters from the request service. It implements storage.ConfirmedCounter.
type RequestClient struct {
	client
}

func NewRequestClient(baseURL string, timeout time.Duration) *RequestClient {
	return &RequestClient{client: newClient(baseURL, timeout)}
}

func (c *RequestClient) ConfirmedCounts(ctx context.Context, eventIDs []string) (map[string]int, error) {
	if len(eventIDs) == 0 {
		return map[string]int{}, nil
	}

	q := url.Values{}
	q.Set("eventIds", strings.Join(eventIDs, ","))
	var body []v1.ConfirmedCount
	if err := c.getJSON(ctx, "/internal/requests/confirmed", q, &body); err != nil {
		return nil, fmt.Errorf("fetch confirmed counts: %w", err)
	}

	counts := make(map[string]int, len(body))
	for _, cc := range body {
		counts[cc.EventID] = cc.Count
	}
	return counts, nil
}

// EventClient reads raw event records from the event service. It implements storage.EventReader.
type EventClient struct {
	client
}

func NewEventClient(baseURL string, timeout time.Duration) *EventClient {
	return &EventClient{client: newClient(baseURL, timeout)}
}

func (c *EventClient) EventByID(ctx context.Context, id string) (*v1.Event, error) {
	var e v1.Event
	if err := c.getJSON(ctx, "/internal/events/"+url.PathEscape(id), nil, &e); err != nil {
		return nil, fmt.Errorf("fetch event %s: %w", id, err)
	}
	return &e, nil
}

func (c *EventClient) EventByOwner(ctx context.Context, id, ownerID string) (*v1.Event, error) {
	path := "/internal/users/" + url.PathEscape(ownerID) + "/events/" + url.PathEscape(id)
	var e v1.Event
	if err := c.getJSON(ctx, path, nil, &e); err != nil {
		return nil, fmt.Errorf("fetch event %s of %s: %w", id, ownerID, err)
	}
	return &e, nil
}
