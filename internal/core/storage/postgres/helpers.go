package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
)

const uniqueViolation = pq.ErrorCode("23505")

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans one row selected with eventColumns.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanEventRow(row scanner) (*v1.Event, error) {
	var (
		evt         v1.Event
		state       string
		publishedOn sql.NullTime
	)

	err := row.Scan(
		&evt.ID,
		&evt.InitiatorID,
		&evt.CategoryID,
		&evt.Title,
		&evt.Annotation,
		&evt.Description,
		&evt.Location.Lat,
		&evt.Location.Lon,
		&evt.Paid,
		&evt.ParticipantLimit,
		&evt.RequestModeration,
		&state,
		&evt.EventDate,
		&evt.CreatedOn,
		&publishedOn,
	)
	if err != nil {
		return nil, err
	}

	evt.State = v1.EventState(state)
	evt.EventDate = evt.EventDate.UTC()
	evt.CreatedOn = evt.CreatedOn.UTC()
	if publishedOn.Valid {
		t := publishedOn.Time.UTC()
		evt.PublishedOn = &t
	}
	return &evt, nil
}

func scanEventRows(rows *sql.Rows) ([]*v1.Event, error) {
	defer rows.Close()

	var events []*v1.Event
	for rows.Next() {
		event, err := scanEventRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// buildSearchQuery renders filter into a WHERE clause with positional arguments.
// Time bounds are inclusive.
func buildSearchQuery(f storage.EventFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if len(f.Initiators) > 0 {
		add("initiator_id = ANY($%d)", pq.Array(f.Initiators))
	}
	if len(f.States) > 0 {
		states := make([]string, len(f.States))
		for i, s := range f.States {
			states[i] = string(s)
		}
		add("state = ANY($%d)", pq.Array(states))
	}
	if len(f.Categories) > 0 {
		add("category_id = ANY($%d)", pq.Array(f.Categories))
	}
	if f.Text != "" {
		add("(annotation ILIKE $%[1]d OR description ILIKE $%[1]d)", "%"+escapeLike(f.Text)+"%")
	}
	if f.Paid != nil {
		add("paid = $%d", *f.Paid)
	}
	if f.EventDateFrom != nil {
		add("event_date >= $%d", *f.EventDateFrom)
	}
	if f.EventDateTo != nil {
		add("event_date <= $%d", *f.EventDateTo)
	}
	if f.CreatedFrom != nil {
		add("created_on >= $%d", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		add("created_on <= $%d", *f.CreatedTo)
	}

	query := querySearchEvents
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, "\n\t\t  AND ")
	}
	return query + querySearchOrder, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
