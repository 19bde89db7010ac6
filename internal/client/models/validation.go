package models

import (
	"sort"
	"strings"
)

// Violations maps a form field to its validation message.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Error joins the messages in field order so Violations can travel as an error.
func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+v[f])
	}
	return strings.Join(msgs, "; ")
}

func required(v Violations, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		v[field] = msg
	}
}

// MinPasswordLength is the shortest password registration accepts.
const MinPasswordLength = 6
