package app

import "strings"

// Span attributes get the query collapsed to single spaces and capped,
// raw multi-line SQL blows up trace storage.
const tracedQueryCap = 512

func formatDBQueryForTrace(query string) string {
	collapsed := strings.Join(strings.Fields(query), " ")
	if len(collapsed) > tracedQueryCap {
		return collapsed[:tracedQueryCap] + "..."
	}
	return collapsed
}
