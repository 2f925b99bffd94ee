package domain

import "strings"

// NormalizeISBN strips hyphens and spaces from raw and validates the result
// as an ISBN-10 or ISBN-13, returning the canonical form persisted by the
// store (no separators, uppercase X check symbol).
//
// Accepting human-formatted input while persisting a single canonical form
// keeps differently-formatted duplicates from slipping past the unique
// index. Check-digit arithmetic is intentionally not enforced.
func NormalizeISBN(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, raw)

	if len(cleaned) != 10 && len(cleaned) != 13 {
		return "", ErrISBNLength
	}

	for i := 0; i < len(cleaned); i++ {
		c := cleaned[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if len(cleaned) == 10 && i == 9 && (c == 'x' || c == 'X') {
			continue
		}
		return "", ErrISBNCharacter
	}

	if len(cleaned) == 10 && cleaned[9] == 'x' {
		cleaned = cleaned[:9] + "X"
	}
	return cleaned, nil
}
