package model

import "regexp"

var ticketKeyPattern = regexp.MustCompile(`\b([A-Z][A-Z_0-9]+-[1-9][0-9]*)\b`)

// TicketKeys extracts the set of issue-tracker keys (e.g. "PROJ-123")
// mentioned anywhere in the given texts.
func TicketKeys(texts ...string) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, text := range texts {
		for _, m := range ticketKeyPattern.FindAllStringSubmatch(text, -1) {
			keys[m[1]] = struct{}{}
		}
	}
	return keys
}
