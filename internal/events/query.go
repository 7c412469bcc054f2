package events

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	httperr "github.com/rendezvous-lab/rendezvous/internal/core/errors"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
)

// queryTimeLayouts are accepted for range parameters, in order.
var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05"}

// AdminQuery narrows the admin search. Ranges apply to the creation time.
type AdminQuery struct {
	Users      []string
	States     []v1.EventState
	Categories []int64
	RangeStart *time.Time
	RangeEnd   *time.Time
}

func (q AdminQuery) filter() storage.EventFilter {
	return storage.EventFilter{
		Initiators:  q.Users,
		States:      q.States,
		Categories:  q.Categories,
		CreatedFrom: q.RangeStart,
		CreatedTo:   q.RangeEnd,
	}
}

// PublicQuery narrows the public search. Ranges apply to the event date;
// a missing RangeStart means "from now".
type PublicQuery struct {
	Text          string
	Categories    []int64
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
}

func (q PublicQuery) filter(now time.Time) storage.EventFilter {
	from := now
	if q.RangeStart != nil {
		from = *q.RangeStart
	}
	return storage.EventFilter{
		States:        []v1.EventState{v1.StatePublished},
		Text:          q.Text,
		Categories:    q.Categories,
		Paid:          q.Paid,
		EventDateFrom: &from,
		EventDateTo:   q.RangeEnd,
	}
}

func parseAdminQuery(v url.Values) (AdminQuery, error) {
	var (
		q   AdminQuery
		err error
	)
	q.Users = splitList(v["users"])
	for _, s := range splitList(v["states"]) {
		state := v1.EventState(strings.ToUpper(s))
		if !state.Valid() {
			return q, httperr.BadRequestf("unknown state %q", s)
		}
		q.States = append(q.States, state)
	}
	if q.Categories, err = parseIDs("categories", splitList(v["categories"])); err != nil {
		return q, err
	}
	if q.RangeStart, err = parseTime("rangeStart", v.Get("rangeStart")); err != nil {
		return q, err
	}
	if q.RangeEnd, err = parseTime("rangeEnd", v.Get("rangeEnd")); err != nil {
		return q, err
	}
	return q, checkRange(q.RangeStart, q.RangeEnd)
}

func parsePublicQuery(v url.Values) (PublicQuery, error) {
	var (
		q   PublicQuery
		err error
	)
	q.Text = strings.TrimSpace(v.Get("text"))
	if q.Categories, err = parseIDs("categories", splitList(v["categories"])); err != nil {
		return q, err
	}
	if raw := v.Get("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			return q, httperr.BadRequestf("paid must be a boolean, got %q", raw)
		}
		q.Paid = &paid
	}
	if q.RangeStart, err = parseTime("rangeStart", v.Get("rangeStart")); err != nil {
		return q, err
	}
	if q.RangeEnd, err = parseTime("rangeEnd", v.Get("rangeEnd")); err != nil {
		return q, err
	}
	if raw := v.Get("onlyAvailable"); raw != "" {
		if q.OnlyAvailable, err = strconv.ParseBool(raw); err != nil {
			return q, httperr.BadRequestf("onlyAvailable must be a boolean, got %q", raw)
		}
	}
	return q, checkRange(q.RangeStart, q.RangeEnd)
}

func parseTime(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, httperr.BadRequestf("%s: cannot parse time %q", name, raw)
}

func parseIDs(name string, raw []string) ([]int64, error) {
	var ids []int64
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return nil, httperr.BadRequestf("%s: invalid id %q", name, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return httperr.BadRequestf("rangeEnd must not be before rangeStart")
	}
	return nil
}

// splitList flattens repeated and comma-separated values, dropping blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
