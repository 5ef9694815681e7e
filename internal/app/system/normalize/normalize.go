// Package normalize provides canonical forms for user-supplied identifiers.
//
// Phone numbers are the authentication identifier in NexoHub, so every
// code path that stores or compares a phone must go through Phone first.
package normalize

import "strings"

// MinPhoneDigits is the minimum plausible length of a normalized phone.
// Anything shorter is rejected as a validation error before any store
// or provider is touched.
const MinPhoneDigits = 8

// localPhoneDigits is the length of a national number without a country
// code. A 10-digit input gets the configured default country code
// prepended so that "3001234567" and "573001234567" compare equal.
const localPhoneDigits = 10

// Phone strips every non-digit character from raw. When countryCode is
// non-empty and the result looks like a bare national number, the
// country code is prepended.
func Phone(raw, countryCode string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if countryCode != "" && len(digits) == localPhoneDigits && !strings.HasPrefix(digits, countryCode) {
		return countryCode + digits
	}
	return digits
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
