package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	"github.com/rendezvous-lab/rendezvous/internal/core/cache"
	"golang.org/x/sync/singleflight"
)

// UserClient resolves user profiles from the user service. It implements storage.UserDirectory.
// Profiles are cached in an LRU and concurrent misses for the same user share one call.
type UserClient struct {
	client
	cache *cache.LRU[string, v1.UserShort]
	group singleflight.Group
}

// NewUserClient creates a user-service client caching up to cacheSize profiles.
func NewUserClient(baseURL string, timeout time.Duration, cacheSize int) *UserClient {
	return &UserClient{
		client: newClient(baseURL, timeout),
		cache:  cache.NewLRU[string, v1.UserShort](cacheSize),
	}
}

func (c *UserClient) ShortProfile(ctx context.Context, userID string) (v1.UserShort, error) {
	if u, ok := c.cache.Get(userID); ok {
		return u, nil
	}

	// The flight outlives a canceled caller and is bounded by the client timeout.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(userID, func() (interface{}, error) {
		if u, ok := c.cache.Get(userID); ok {
			return u, nil
		}
		var u v1.UserShort
		if err := c.getJSON(fetchCtx, "/admin/users/"+url.PathEscape(userID), nil, &u); err != nil {
			return nil, fmt.Errorf("fetch user %s: %w", userID, err)
		}
		c.cache.Put(userID, u)
		return u, nil
	})

	select {
	case <-ctx.Done():
		return v1.UserShort{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return v1.UserShort{}, res.Err
		}
		return res.Val.(v1.UserShort), nil
	}
}

func (c *UserClient) ShortProfiles(ctx context.Context, userIDs []string) ([]v1.UserShort, error) {
	out := make([]v1.UserShort, 0, len(userIDs))
	var missing []string
	for _, id := range userIDs {
		if u, ok := c.cache.Get(id); ok {
			out = append(out, u)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	q := url.Values{}
	q.Set("ids", strings.Join(missing, ","))
	var fetched []v1.UserShort
	if err := c.getJSON(ctx, "/admin/users/short", q, &fetched); err != nil {
		return nil, fmt.Errorf("fetch %d users: %w", len(missing), err)
	}
	for _, u := range fetched {
		c.cache.Put(u.ID, u)
	}
	return append(out, fetched...), nil
}
