package domain

import "testing"

func TestNormalizeISBN_Valid(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"isbn13 hyphenated", "978-0-12-345678-9", "9780123456789"},
		{"isbn13 bare", "9780123456789", "9780123456789"},
		{"isbn13 spaces", "978 0 12 345678 9", "9780123456789"},
		{"isbn10 bare", "0198526636", "0198526636"},
		{"isbn10 hyphenated", "0-19-852663-6", "0198526636"},
		{"isbn10 lowercase x", "0-19-852663-x", "019852663X"},
		{"isbn10 uppercase X", "019852663X", "019852663X"},
		{"mixed separators", "978-0 12-345678 9", "9780123456789"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeISBN(tc.in)
			if err != nil {
				t.Fatalf("NormalizeISBN(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("NormalizeISBN(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeISBN_Idempotent(t *testing.T) {
	first, err := NormalizeISBN("978-0-12-345678-9")
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := NormalizeISBN(first)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if first != second {
		t.Fatalf("normalization not idempotent: %q != %q", first, second)
	}
}

func TestNormalizeISBN_Length(t *testing.T) {
	for _, in := range []string{"", "12345", "978012345678", "97801234567890", "----"} {
		if _, err := NormalizeISBN(in); err != ErrISBNLength {
			t.Fatalf("NormalizeISBN(%q): expected ErrISBNLength, got %v", in, err)
		}
	}
}

func TestNormalizeISBN_Character(t *testing.T) {
	cases := []string{
		"97801234567ab",  // letters in isbn13
		"978012345678X",  // X not allowed in isbn13
		"X198526636",     // X only allowed in final position
		"01985X6636",     // X mid-string
		"0198526.36",     // punctuation survives stripping
	}
	for _, in := range cases {
		if _, err := NormalizeISBN(in); err != ErrISBNCharacter {
			t.Fatalf("NormalizeISBN(%q): expected ErrISBNCharacter, got %v", in, err)
		}
	}
}
