package authenticator

import "time"

type TokenEngine interface {
	// Generate signs obj into a token expiring after the given duration.
	Generate(expiration time.Duration, obj any) (string, error)

	// Verify checks the token signature and expiration, then decodes the
	// signed object into obj.
	Verify(token string, obj any) error
}
