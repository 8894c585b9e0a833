package wire

import "errors"

// Parse errors. The key-state machine (package keystate) wraps any of
// these into a MalformedPeer condition per spec.md §4.4/§7 — the peer is
// authenticated already, so a wire-format violation is always fatal for
// the meta-connection it arrived on.
var (
	ErrFieldCount     = errors.New("wire: wrong number of fields")
	ErrEmptyName      = errors.New("wire: empty name field")
	ErrNameTooLong    = errors.New("wire: name field exceeds maximum length")
	ErrBadHex         = errors.New("wire: key field is not valid lowercase hex")
	ErrOddHex         = errors.New("wire: key field has odd hex length")
	ErrBadInteger     = errors.New("wire: integer field is not a valid decimal")
	ErrNegativeMAC    = errors.New("wire: mac length is negative")
	ErrBadCompression = errors.New("wire: compression level out of range")
	ErrOpcodeMismatch = errors.New("wire: opcode does not match expected request")
)
