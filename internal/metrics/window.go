package metrics

import "time"

// WindowPadding widens the view window on both sides to absorb clock skew between services.
const WindowPadding = time.Minute

// ViewWindow returns [from − padding, now + padding].
func ViewWindow(from, now time.Time) (start, end time.Time) {
	return from.Add(-WindowPadding), now.Add(WindowPadding)
}
