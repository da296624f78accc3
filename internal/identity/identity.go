package identity

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidToken is returned when a bearer token is missing, malformed,
	// expired, or rejected by the identity provider.
	ErrInvalidToken = errors.New("identity: invalid or expired token")
	// ErrUserNotFound is returned when the provider has no user for the given ID.
	ErrUserNotFound = errors.New("identity: user not found")
)

// User is the identity resolved by the external provider.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LookupOutcome is the result of a by-email lookup. Unknown is distinct from
// NotFound so callers can choose strict or lenient handling when the provider
// is unreachable.
type LookupOutcome int

const (
	LookupFound LookupOutcome = iota
	LookupNotFound
	LookupUnknown
)

// Verifier resolves bearer tokens and user references against the external
// identity provider.
type Verifier interface {
	// VerifyToken resolves a bearer token to a user, or ErrInvalidToken.
	VerifyToken(ctx context.Context, token string) (*User, error)

	// UserByID fetches a user by their provider ID.
	UserByID(ctx context.Context, id string) (*User, error)

	// UserByEmail fetches a user by email. The outcome reports whether the
	// user was found, definitively absent, or could not be determined.
	UserByEmail(ctx context.Context, email string) (*User, LookupOutcome)
}
