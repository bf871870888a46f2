package identity

import "errors"

// Error taxonomy for the session subsystem. Callers classify with errors.Is;
// wrapped variants carry backend detail.
var (
	// ErrInvalidCredentials is a rejected email/password pair. Recoverable
	// by resubmission.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNetwork is an unreachable backend or an undecodable response.
	// Recoverable by retry.
	ErrNetwork = errors.New("auth backend unavailable")

	// ErrMalformedToken is a bearer token that cannot be decoded. Treated
	// as logged out.
	ErrMalformedToken = errors.New("malformed token")

	// ErrUnknownRole is a role outside the closed set. Surfaced to the
	// user as a hard failure, never routed to a default page.
	ErrUnknownRole = errors.New("unknown role")

	// ErrSessionExpired is detected at read time and degrades silently to
	// the logged-out state.
	ErrSessionExpired = errors.New("session expired")
)
