package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes when the
// toggle is on and the URL does not already pin a value. Needed when
// the database sits behind pgbouncer in transaction pooling mode.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}
	q := parsed.Query()
	if q.Has("disable_prepared_binary_result") {
		return raw
	}
	q.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

// dbNameFromURL extracts the database name from either a postgres://
// URL or a key=value DSN, for the otelsql db.name attribute.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(raw) {
		value, ok := strings.CutPrefix(field, "dbname=")
		if !ok {
			continue
		}
		if name := strings.Trim(value, `"' `); name != "" {
			return name
		}
	}

	return ""
}
