package postgres

// SQL for the events table. Column order matches scanEventRow.

const eventColumns = `
			id, initiator_id, category_id, title, annotation, description,
			lat, lon, paid, participant_limit, request_moderation,
			state, event_date, created_on, published_on`

const (
	queryCreateEvent = `
		INSERT INTO events (` + eventColumns + `
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	// querySaveEvent rewrites every mutable column. id, initiator_id and created_on never change.
	querySaveEvent = `
		UPDATE events SET
			category_id = $2, title = $3, annotation = $4, description = $5,
			lat = $6, lon = $7, paid = $8, participant_limit = $9, request_moderation = $10,
			state = $11, event_date = $12, published_on = $13
		WHERE id = $1
	`

	queryFindEventByID = `
		SELECT` + eventColumns + `
		FROM events
		WHERE id = $1
	`

	queryFindEventByIDAndOwner = `
		SELECT` + eventColumns + `
		FROM events
		WHERE id = $1 AND initiator_id = $2
	`

	queryFindEventByIDAndState = `
		SELECT` + eventColumns + `
		FROM events
		WHERE id = $1 AND state = $2
	`

	queryFindEventsByInitiator = `
		SELECT` + eventColumns + `
		FROM events
		WHERE initiator_id = $1
		ORDER BY event_date ASC, id ASC
	`

	queryFindEventsByIDs = `
		SELECT` + eventColumns + `
		FROM events
		WHERE id = ANY($1)
		ORDER BY event_date ASC, id ASC
	`

	// querySearchEvents is completed by buildSearchQuery.
	querySearchEvents = `
		SELECT` + eventColumns + `
		FROM events`

	querySearchOrder = `
		ORDER BY event_date ASC, id ASC`
)
