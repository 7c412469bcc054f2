package pgxstore

const (
	// queryLockEvent takes the transaction-scoped advisory lock for one event.
	queryLockEvent = `SELECT pg_advisory_xact_lock($1)`

	// queryCreateRequest relies on requests_active_pair_idx to reject a second active request.
	queryCreateRequest = `
		INSERT INTO requests (id, event_id, requester_id, status, created)
		VALUES ($1, $2, $3, $4, $5)
	`

	// queryUpdateRequestStatus is a compare-and-swap on status.
	queryUpdateRequestStatus = `
		UPDATE requests SET status = $3
		WHERE id = $1 AND status = $2
	`

	queryFindRequestByID = `
		SELECT id, event_id, requester_id, status, created
		FROM requests
		WHERE id = $1
	`

	queryFindRequestsByEvent = `
		SELECT id, event_id, requester_id, status, created
		FROM requests
		WHERE event_id = $1
		ORDER BY created ASC, id ASC
	`

	queryFindRequestsByRequester = `
		SELECT id, event_id, requester_id, status, created
		FROM requests
		WHERE requester_id = $1
		ORDER BY created ASC, id ASC
	`

	queryExistsActiveRequest = `
		SELECT EXISTS (
			SELECT 1 FROM requests
			WHERE event_id = $1 AND requester_id = $2 AND status = ANY($3)
		)
	`

	queryCountRequests = `
		SELECT COUNT(*)
		FROM requests
		WHERE event_id = $1 AND status = $2
	`

	queryConfirmedCounts = `
		SELECT event_id, COUNT(*)
		FROM requests
		WHERE event_id = ANY($1) AND status = $2
		GROUP BY event_id
	`
)
