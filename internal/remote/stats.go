package remote

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// StatsTimeLayout is the timestamp format of the stats service.
const StatsTimeLayout = "2006-01-02 15:04:05"

type viewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

type endpointHit struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

// StatsClient talks to the stats service. It implements storage.ViewCounter.
type StatsClient struct {
	client
	app string
}

// NewStatsClient creates a stats client that records hits under app.
func NewStatsClient(baseURL, app string, timeout time.Duration) *StatsClient {
	return &StatsClient{client: newClient(baseURL, timeout), app: app}
}

// Hits returns the hit count per URI over [start, end], as recorded under the client's app.
// URIs without hits are absent.
func (c *StatsClient) Hits(ctx context.Context, uris []string, start, end time.Time, unique bool) (map[string]int64, error) {
	q := url.Values{}
	q.Set("start", start.UTC().Format(StatsTimeLayout))
	q.Set("end", end.UTC().Format(StatsTimeLayout))
	q.Set("unique", strconv.FormatBool(unique))
	for _, u := range uris {
		q.Add("uris", u)
	}

	var stats []viewStats
	if err := c.getJSON(ctx, "/stats", q, &stats); err != nil {
		return nil, err
	}

	hits := make(map[string]int64, len(stats))
	for _, s := range stats {
		if s.App != c.app {
			continue
		}
		hits[s.URI] = s.Hits
	}
	return hits, nil
}

// Hit records one view of uri by ip.
func (c *StatsClient) Hit(ctx context.Context, uri, ip string, at time.Time) error {
	return c.postJSON(ctx, "/hit", endpointHit{
		App:       c.app,
		URI:       uri,
		IP:        ip,
		Timestamp: at.UTC().Format(StatsTimeLayout),
	})
}
