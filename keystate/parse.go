package keystate

import (
	"errors"

	"github.com/drep-project/meshlink/wire"
)

var (
	errUnknownNode    = errors.New("keystate: node does not exist in the connection list")
	errUnknownCipher  = errors.New("keystate: unknown cipher")
	errUnknownDigest  = errors.New("keystate: unknown digest")
	errWrongKeyLength = errors.New("keystate: wrong key length for cipher")
	errBogusMACLength = errors.New("keystate: bogus mac length")
)

// splitAndCheckOpcode tokenizes rawLine and verifies its leading opcode
// matches want, returning the remaining fields for the request-specific
// parser in package wire.
func splitAndCheckOpcode(rawLine string, want wire.Opcode) ([]string, error) {
	opField, rest, err := wire.SplitLine(rawLine)
	if err != nil {
		return nil, err
	}
	op, err := wire.ParseOpcode(opField)
	if err != nil {
		return nil, err
	}
	if op != want {
		return nil, wire.ErrOpcodeMismatch
	}
	return rest, nil
}

func parseKeyChanged(rawLine string) (wire.KeyChangedMsg, error) {
	fields, err := splitAndCheckOpcode(rawLine, wire.KeyChanged)
	if err != nil {
		return wire.KeyChangedMsg{}, err
	}
	return wire.ParseKeyChanged(fields)
}

func parseReqKey(rawLine string) (wire.ReqKeyMsg, error) {
	fields, err := splitAndCheckOpcode(rawLine, wire.ReqKey)
	if err != nil {
		return wire.ReqKeyMsg{}, err
	}
	return wire.ParseReqKey(fields)
}

func parseAnsKey(rawLine string) (wire.AnsKeyMsg, error) {
	fields, err := splitAndCheckOpcode(rawLine, wire.AnsKey)
	if err != nil {
		return wire.AnsKeyMsg{}, err
	}
	return wire.ParseAnsKey(fields)
}
