// Package email normalizes mailbox addresses for exact, case-insensitive
// matching.
package email

import (
	"strings"

	"github.com/emersion/go-message/mail"
)

// Normalize returns the bare lower-cased address of a header value such as
// `"Urząd Gminy" <UG@Example.pl>`. Values that do not parse as an address are
// trimmed and lower-cased as-is.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if addr, err := mail.ParseAddress(value); err == nil {
		return strings.ToLower(addr.Address)
	}
	return strings.ToLower(strings.Trim(value, "<>"))
}

// NormalizeList normalizes every value, dropping empties and duplicates while
// keeping first-seen order.
func NormalizeList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		n := Normalize(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}

// Domain returns the part after the last @, or "" when there is none.
func Domain(address string) string {
	at := strings.LastIndexByte(address, '@')
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return address[at+1:]
}

// Valid reports whether value holds exactly one parseable address.
func Valid(value string) bool {
	_, err := mail.ParseAddress(strings.TrimSpace(value))
	return err == nil
}
