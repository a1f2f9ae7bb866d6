package common

import (
	"strings"
)

type Email string

// NewEmail returns the normalized (trimmed, lower-cased) form used for lookups.
func NewEmail(rawEmail string) Email {
	return Email(strings.ToLower(strings.TrimSpace(rawEmail)))
}
