package cipherset

import "testing"

func TestCipherByID(t *testing.T) {
	d := Default{}

	spec, err := d.CipherByID(CipherAES256CTR)
	if err != nil {
		t.Fatalf("CipherByID(AES256CTR): %v", err)
	}
	if spec.KeyLen != 32 || spec.IVLen != 16 {
		t.Fatalf("got key_len=%d iv_len=%d, want 32/16", spec.KeyLen, spec.IVLen)
	}

	if _, err := d.CipherByID(99); err != ErrUnknownCipher {
		t.Fatalf("err = %v, want ErrUnknownCipher", err)
	}
}

func TestDigestByID(t *testing.T) {
	d := Default{}

	spec, err := d.DigestByID(DigestHMACSHA256)
	if err != nil {
		t.Fatalf("DigestByID(HMACSHA256): %v", err)
	}
	if spec.OutputSize != 32 {
		t.Fatalf("OutputSize = %d, want 32", spec.OutputSize)
	}

	if _, err := d.DigestByID(99); err != ErrUnknownDigest {
		t.Fatalf("err = %v, want ErrUnknownDigest", err)
	}
}

func TestInitEncryptContextSplitsKeyAndIV(t *testing.T) {
	d := Default{}
	spec, _ := d.CipherByID(CipherAES256CTR)

	key := make([]byte, spec.KeyLen+spec.IVLen)
	for i := range key {
		key[i] = byte(i)
	}

	ctx, err := d.InitEncryptContext(spec, key)
	if err != nil {
		t.Fatalf("InitEncryptContext: %v", err)
	}
	if ctx.Block == nil {
		t.Fatal("expected a non-nil cipher.Block")
	}
	if len(ctx.IV) != spec.IVLen {
		t.Fatalf("len(IV) = %d, want %d", len(ctx.IV), spec.IVLen)
	}
}

func TestInitEncryptContextNoneCipher(t *testing.T) {
	d := Default{}
	spec, _ := d.CipherByID(CipherNone)

	ctx, err := d.InitEncryptContext(spec, nil)
	if err != nil {
		t.Fatalf("InitEncryptContext(None): %v", err)
	}
	if ctx != nil {
		t.Fatal("expected a nil context for the none cipher")
	}
}
