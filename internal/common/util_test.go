package common

import (
	"encoding/hex"
	"errors"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandHexString_EntropyHint(t *testing.T) {
	const n = 32
	a, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Logf("warning: two MakeRandHexString(%d) results are identical; extremely unlikely", n)
	}
}

// ---------- ValidationError ----------

func TestValidationError_FormatAndMatch(t *testing.T) {
	err := NewValidationError("field %q is too long", "display_name")
	if err.Error() != `validation error: field "display_name" is too long` {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !IsValidation(err) {
		t.Fatalf("IsValidation should match a ValidationError")
	}

	wrapped := errors.Join(errors.New("outer"), err)
	if !IsValidation(wrapped) {
		t.Fatalf("IsValidation should match a wrapped ValidationError")
	}
	if IsValidation(ErrorConflict) {
		t.Fatalf("IsValidation must not match sentinel errors")
	}
}
