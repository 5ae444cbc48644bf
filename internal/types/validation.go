package types

import (
	"sort"
	"strings"
)

// ValidationErrors maps field names to human-readable messages. It is never
// fatal; callers surface it and let the user correct the input.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for field := range v {
		msgs = append(msgs, v[field])
	}
	sort.Strings(msgs)
	return strings.Join(msgs, ", ")
}

// Add records a message for a field, keeping the first message if the field
// already failed an earlier rule
func (v ValidationErrors) Add(field, message string) {
	if _, ok := v[field]; !ok {
		v[field] = message
	}
}
