package services

import (
	"strings"
	"testing"
)

func TestValidateLoginHandle(t *testing.T) {
	valid := []string{"abc", "alice_99", "A_b_C", strings.Repeat("a", 30)}
	for _, h := range valid {
		if err := validateLoginHandle(h); err != nil {
			t.Fatalf("%q should be valid: %v", h, err)
		}
	}

	invalid := []string{"", "ab", strings.Repeat("a", 31), "has space", "dash-ed", "ünïcode", "semi;colon"}
	for _, h := range invalid {
		if err := validateLoginHandle(h); err == nil {
			t.Fatalf("%q should be invalid", h)
		}
	}
}

func TestValidateDisplayName(t *testing.T) {
	got, err := validateDisplayName("  Alice Wonderland  ")
	if err != nil || got != "Alice Wonderland" {
		t.Fatalf("want trimmed name, got (%q, %v)", got, err)
	}

	if _, err := validateDisplayName("Žofia Nováková"); err != nil {
		t.Fatalf("unicode letters should be allowed: %v", err)
	}
	if _, err := validateDisplayName("J. O'Neil-Smith"); err != nil {
		t.Fatalf("punctuation from the allowed set should pass: %v", err)
	}

	invalid := []string{"", "  ", "ab", strings.Repeat("a", 31), "<script>", "tab\tname"}
	for _, n := range invalid {
		if _, err := validateDisplayName(n); err == nil {
			t.Fatalf("%q should be invalid", n)
		}
	}
}

func TestValidateContent_Bounds(t *testing.T) {
	if _, err := validateContent(strings.Repeat("x", 5000)); err != nil {
		t.Fatalf("5000 chars must be allowed: %v", err)
	}
	if _, err := validateContent(strings.Repeat("x", 5001)); err == nil {
		t.Fatalf("5001 chars must be rejected")
	}

	// Bounds count runes, not bytes.
	if _, err := validateContent(strings.Repeat("é", 5000)); err != nil {
		t.Fatalf("5000 multi-byte runes must be allowed: %v", err)
	}

	got, err := validateContent("  hello  ")
	if err != nil || got != "hello" {
		t.Fatalf("want trimmed content, got (%q, %v)", got, err)
	}
}

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct{ in, want string }{
		{`50%`, `50\%`},
		{`a_b`, `a\_b`},
		{`c\d`, `c\\d`},
		{`%_\`, `\%\_\\`},
		{`plain`, `plain`},
	}
	for _, tt := range tests {
		if got := escapeLikePattern(tt.in); got != tt.want {
			t.Fatalf("escapeLikePattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("short", 100); got != "short" {
		t.Fatalf("short strings must be untouched: %q", got)
	}
	in := strings.Repeat("日", 120)
	got := truncateRunes(in, 100)
	if n := len([]rune(got)); n != 100 {
		t.Fatalf("want 100 runes, got %d", n)
	}
	if !strings.HasPrefix(in, got) {
		t.Fatalf("truncation must be a prefix")
	}
}
