package reminder

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minPrefixLen     = 3
	maxAmbiguousList = 5
)

// Ambiguity is an input that prefixes more than one identifier.
type Ambiguity struct {
	Input   string
	Matches []Reminder // at most five
}

// Resolution is the outcome of ResolveIDs.
type Resolution struct {
	// IDs holds one identifier per resolved input, in input order.
	IDs        []string
	Ambiguous  []Ambiguity
	Unresolved []string
}

// Complete reports whether every input resolved.
func (r Resolution) Complete(inputs int) bool {
	return len(r.IDs) == inputs
}

// UniqueIDs returns IDs without repeats, keeping the first occurrence.
// Inputs such as "1" and a prefix of the same reminder resolve to one ID.
func (r Resolution) UniqueIDs() []string {
	seen := make(map[string]bool, len(r.IDs))
	out := make([]string, 0, len(r.IDs))
	for _, id := range r.IDs {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ResolveIDs turns user-typed tokens into reminder identifiers. A token is
// tried as a display number (1-based position in Sort order over all of
// reminders), then as an exact identifier, then as a case-insensitive
// prefix of at least three characters that matches exactly one reminder.
// Tokens matching several prefixes are reported as ambiguous; anything else
// is reported as unresolved. Neither kind stops the others from resolving.
func ResolveIDs(inputs []string, reminders []Reminder) Resolution {
	var res Resolution
	var sorted []Reminder

	for _, input := range inputs {
		if n, err := strconv.Atoi(input); err == nil && n > 0 && n <= len(reminders) {
			if sorted == nil {
				sorted = Sort(reminders)
			}
			res.IDs = append(res.IDs, sorted[n-1].ID)
			continue
		}

		if id, ok := exactID(input, reminders); ok {
			res.IDs = append(res.IDs, id)
			continue
		}

		if utf8.RuneCountInString(input) < minPrefixLen {
			res.Unresolved = append(res.Unresolved, input)
			continue
		}

		matches := prefixMatches(input, reminders)
		switch {
		case len(matches) == 1:
			res.IDs = append(res.IDs, matches[0].ID)
		case len(matches) > 1:
			res.Ambiguous = append(res.Ambiguous, Ambiguity{
				Input:   input,
				Matches: matches[:min(len(matches), maxAmbiguousList)],
			})
		default:
			res.Unresolved = append(res.Unresolved, input)
		}
	}
	return res
}

func exactID(input string, reminders []Reminder) (string, bool) {
	for _, r := range reminders {
		if r.ID != "" && r.ID == input {
			return r.ID, true
		}
	}
	return "", false
}

func prefixMatches(input string, reminders []Reminder) []Reminder {
	lower := strings.ToLower(input)
	var matches []Reminder
	for _, r := range reminders {
		if r.ID != "" && strings.HasPrefix(strings.ToLower(r.ID), lower) {
			matches = append(matches, r)
		}
	}
	return matches
}
