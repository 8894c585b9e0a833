package wire

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// split tokenizes a request line on whitespace, the way tinc's sscanf-based
// parser treats fields (spec.md §4.1: "whitespace-separated fields").
func split(line string) []string {
	return strings.Fields(line)
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// emptyKeyToken stands in for a zero-length key field. A real KEY_HEX
// token is never empty string on the wire: fmt.Sprintf's field separator
// is a single space, so an empty token between two spaces would collapse
// under strings.Fields and shift every field after it — the "no key"
// case (cipher_id = 0 imposes no length constraint, spec.md §3) must
// therefore be spelled out explicitly rather than left blank.
const emptyKeyToken = "-"

func decodeKeyHex(s string) ([]byte, error) {
	if s == emptyKeyToken {
		return nil, nil
	}
	if len(s)%2 != 0 {
		return nil, ErrOddHex
	}
	for _, c := range s {
		isLowerHexDigit := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
		if !isLowerHexDigit {
			return nil, ErrBadHex
		}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrBadHex
	}
	return b, nil
}

func encodeKeyHex(key []byte) string {
	if len(key) == 0 {
		return emptyKeyToken
	}
	return hex.EncodeToString(key)
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrBadInteger
	}
	return n, nil
}
