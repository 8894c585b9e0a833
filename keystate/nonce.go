package keystate

import (
	"crypto/rand"
	"encoding/hex"
)

// NonceSource produces the fresh random value used to perturb a
// KEY_CHANGED line's flood fingerprint so repeated announcements are not
// silently suppressed (spec.md §4.3.1).
type NonceSource interface {
	Next() string
}

// randNonce draws from crypto/rand rather than math/rand: the nonce only
// needs to vary the dedup fingerprint, but tinc's original random() call
// doubles as unpredictable input over an authenticated channel, and no
// pack example ships a dedicated nonce/token library to adopt instead.
type randNonce struct {
	size int
}

// DefaultNonceSource returns an 8-byte (16 hex character) nonce source.
func DefaultNonceSource() NonceSource {
	return randNonce{size: 8}
}

func (r randNonce) Next() string {
	buf := make([]byte, r.size)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is catastrophic for the host; fall back to an
		// all-zero nonce rather than panic, since a duplicate-suppressed
		// KEY_CHANGED is a correctness wart, not a security hole.
		return hex.EncodeToString(make([]byte, r.size))
	}
	return hex.EncodeToString(buf)
}
