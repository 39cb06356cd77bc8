package forward

import "strings"

// Decides which messages are dropped instead of forwarded.
//
// A message is ignored when its From header contains any configured sender
// substring, or its subject contains any configured subject substring.
type Filter struct {
	senders  []string
	subjects []string
}

// Creates a filter from ignore lists. Either list may be empty.
func NewFilter(senders, subjects []string) *Filter {
	return &Filter{senders: senders, subjects: subjects}
}

// Reports whether a message should be dropped.
func (f *Filter) Ignores(from, subject string) bool {
	return containsAny(from, f.senders) || containsAny(subject, f.subjects)
}

// Reports whether s contains any of the given substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
