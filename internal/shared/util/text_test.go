package util

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "hello", n: 10, want: "hello"},
		{in: "hello", n: 3, want: "hel"},
		{in: "héllo", n: 2, want: "hé"},
		{in: "hello", n: 0, want: "hello"},
	}
	for _, tt := range tests {
		if got := TruncateRunes(tt.in, tt.n); got != tt.want {
			t.Fatalf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	in := "  Careers \n\n\t Senior   Engineer  \n   \nApply"
	want := "Careers\nSenior Engineer\nApply"
	if got := CollapseWhitespace(in); got != want {
		t.Fatalf("CollapseWhitespace() = %q, want %q", got, want)
	}
}

func TestSanitizeFileName(t *testing.T) {
	got, err := SanitizeFileName(" exports/outreach-email-1.txt ")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "exports_outreach-email-1.txt" {
		t.Fatalf("unexpected name %q", got)
	}
	if _, err := SanitizeFileName("../x"); !errors.Is(err, ErrInvalidFileName) {
		t.Fatalf("expected traversal error, got %v", err)
	}
	if _, err := SanitizeFileName(" \t "); !errors.Is(err, ErrInvalidFileName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
}

func TestSanitizeFileNameDropsControlsAndCapsLength(t *testing.T) {
	got, err := SanitizeFileName("email\x00\r\n.txt")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if got != "email.txt" {
		t.Fatalf("unexpected name %q", got)
	}

	long, err := SanitizeFileName(strings.Repeat("é", 500))
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	if n := utf8.RuneCountInString(long); n != maxFileNameRunes {
		t.Fatalf("expected %d runes, got %d", maxFileNameRunes, n)
	}
}
