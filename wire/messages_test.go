package wire

import "testing"

func TestKeyChangedRoundTrip(t *testing.T) {
	line := BuildKeyChanged("deadbeef", "alice")
	op, rest, err := SplitLine(line)
	if err != nil {
		t.Fatalf("SplitLine: %v", err)
	}
	if op != "10" {
		t.Fatalf("opcode = %q, want 10", op)
	}
	msg, err := ParseKeyChanged(rest)
	if err != nil {
		t.Fatalf("ParseKeyChanged: %v", err)
	}
	if msg.Nonce != "deadbeef" || msg.Origin != "alice" {
		t.Fatalf("got %+v", msg)
	}
}

func TestKeyChangedRejectsUppercaseNonce(t *testing.T) {
	_, rest, _ := SplitLine(BuildKeyChanged("DEADBEEF", "alice"))
	if _, err := ParseKeyChanged(rest); err != ErrBadHex {
		t.Fatalf("err = %v, want ErrBadHex", err)
	}
}

func TestReqKeyRoundTrip(t *testing.T) {
	line := BuildReqKey("alice", "bob")
	_, rest, err := SplitLine(line)
	if err != nil {
		t.Fatalf("SplitLine: %v", err)
	}
	msg, err := ParseReqKey(rest)
	if err != nil {
		t.Fatalf("ParseReqKey: %v", err)
	}
	if msg.From != "alice" || msg.To != "bob" {
		t.Fatalf("got %+v", msg)
	}
}

func TestAnsKeyRoundTrip(t *testing.T) {
	key := []byte{0x01, 0x02, 0x03, 0x04}
	line := BuildAnsKey("alice", "bob", key, 1, 1, 16, 0)
	_, rest, err := SplitLine(line)
	if err != nil {
		t.Fatalf("SplitLine: %v", err)
	}
	msg, err := ParseAnsKey(rest)
	if err != nil {
		t.Fatalf("ParseAnsKey: %v", err)
	}
	if msg.From != "alice" || msg.To != "bob" || msg.CipherID != 1 || msg.DigestID != 1 || msg.MACLength != 16 {
		t.Fatalf("got %+v", msg)
	}
	if len(msg.Key) != len(key) {
		t.Fatalf("key length = %d, want %d", len(msg.Key), len(key))
	}
	for i := range key {
		if msg.Key[i] != key[i] {
			t.Fatalf("key mismatch at %d", i)
		}
	}
}

func TestAnsKeyRoundTripsEmptyKey(t *testing.T) {
	line := BuildAnsKey("alice", "bob", nil, 0, 0, 0, 0)
	_, rest, err := SplitLine(line)
	if err != nil {
		t.Fatalf("SplitLine: %v", err)
	}
	msg, err := ParseAnsKey(rest)
	if err != nil {
		t.Fatalf("ParseAnsKey: %v", err)
	}
	if len(msg.Key) != 0 {
		t.Fatalf("Key = %v, want empty", msg.Key)
	}
	if msg.From != "alice" || msg.To != "bob" {
		t.Fatalf("got %+v", msg)
	}
}

func TestAnsKeyRejectsBadCompression(t *testing.T) {
	line := BuildAnsKey("alice", "bob", []byte{0xaa}, 1, 1, 16, MaxCompression+1)
	_, rest, _ := SplitLine(line)
	if _, err := ParseAnsKey(rest); err != ErrBadCompression {
		t.Fatalf("err = %v, want ErrBadCompression", err)
	}
}

func TestAnsKeyRejectsOddHexKey(t *testing.T) {
	_, rest, _ := SplitLine("12 alice bob abc 1 1 16 0")
	if _, err := ParseAnsKey(rest); err != ErrOddHex {
		t.Fatalf("err = %v, want ErrOddHex", err)
	}
}

func TestParseOpcode(t *testing.T) {
	op, err := ParseOpcode("11")
	if err != nil {
		t.Fatalf("ParseOpcode: %v", err)
	}
	if op != ReqKey {
		t.Fatalf("op = %v, want ReqKey", op)
	}
	if op.String() != "REQ_KEY" {
		t.Fatalf("String() = %q", op.String())
	}
}

func TestFieldCountErrors(t *testing.T) {
	if _, err := ParseReqKey([]string{"alice"}); err != ErrFieldCount {
		t.Fatalf("err = %v, want ErrFieldCount", err)
	}
	if _, err := ParseKeyChanged(nil); err != ErrFieldCount {
		t.Fatalf("err = %v, want ErrFieldCount", err)
	}
}

func TestEmptyNameRejected(t *testing.T) {
	if _, err := ParseReqKey([]string{"", "bob"}); err != ErrEmptyName {
		t.Fatalf("err = %v, want ErrEmptyName", err)
	}
}
