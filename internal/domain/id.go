package domain

import (
	"strconv"
	"strings"
)

// ParseID parses a decimal identifier taken from a path segment or a form
// field. Anything that is not a positive integer is rejected before it can
// reach the store.
func ParseID(field, raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, Required(field)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, InvalidCause(field, field+" must be an integer", err)
	}
	if id <= 0 {
		return 0, Invalid(field, field+" must be a positive integer")
	}
	return id, nil
}

// FormatID renders an id the way ParseID reads it.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
