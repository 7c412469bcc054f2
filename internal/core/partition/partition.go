package partition

import "hash/fnv"

// Count is the number of lock stripes used by in-process stores.
const Count = 256

// For returns the stripe for an event id in [0, Count).
// Stable and deterministic: the same id always maps to the same stripe.
func For(eventID string) int {
	h := fnv.New32a()
	h.Write([]byte(eventID))
	return int(h.Sum32() % Count)
}

// LockKey derives the bigint key passed to pg_advisory_xact_lock for an event.
// Collisions only cause unrelated events to serialize, never to interleave.
func LockKey(eventID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(eventID))
	return int64(h.Sum64())
}
