package utils

import "strings"

// phoneKeyLength is the number of trailing digits used as the cross-record
// identity key. Source records carry inconsistent country-code prefixes
// ("0911234567" vs "+251911234567"), so equality is defined on the
// trailing digits only.
const phoneKeyLength = 8

// PhoneDigits strips every non-digit character from a phone string.
func PhoneDigits(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneKey returns the normalized identity key for a phone string: the
// trailing 8 digits after removing all formatting. The second return value
// is false when the string carries fewer than 8 digits and no key can be
// derived.
func PhoneKey(phone string) (string, bool) {
	digits := PhoneDigits(phone)
	if len(digits) < phoneKeyLength {
		return "", false
	}
	return digits[len(digits)-phoneKeyLength:], true
}

// SamePhone reports whether two phone strings identify the same person
// under the trailing-digit equality relation. Strings with fewer than 8
// digits never match anything.
func SamePhone(a, b string) bool {
	keyA, okA := PhoneKey(a)
	keyB, okB := PhoneKey(b)
	return okA && okB && keyA == keyB
}
