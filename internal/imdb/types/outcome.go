package types

import "errors"

// Typed fetch outcomes. These are sentinels, not exceptions: callers are
// expected to branch on them, and the facade propagates ErrPrivacy so a
// UI can show its dedicated message.
var (
	// ErrPrivacy marks a list or user endpoint the owner did not publish.
	ErrPrivacy = errors.New("imdb: list is not public")

	// ErrFatal marks an IMDb error page or IP block that persisted
	// through retry.
	ErrFatal = errors.New("imdb: request blocked")

	// ErrNetwork marks a transient transport failure.
	ErrNetwork = errors.New("imdb: network failure")

	// ErrInvalidRequest marks a request the compiler rejected.
	ErrInvalidRequest = errors.New("imdb: invalid request")

	// ErrNoEndpoint is returned when IMDb has no endpoint for the
	// requested media (seasons have no search surface).
	ErrNoEndpoint = errors.New("imdb: no endpoint for media")
)

// IsSentinel reports whether err is one of the typed fetch outcomes
// rather than a programmer error.
func IsSentinel(err error) bool {
	return errors.Is(err, ErrPrivacy) ||
		errors.Is(err, ErrFatal) ||
		errors.Is(err, ErrNetwork) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrNoEndpoint)
}
