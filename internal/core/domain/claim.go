package domain

import (
	"errors"
	"time"
)

var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")

// Claim is the identity payload recovered from a valid session token.
// It reflects the user's role as of issuance; validation never consults
// the user store.
type Claim struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
