package db

import "time"

// TimeFormat formats a time.Time as RFC3339 in UTC, the canonical
// representation for all timestamps stored in the database.
func TimeFormat(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TimeParse parses an RFC3339 timestamp from the database. An empty string
// parses to the zero time without error.
func TimeParse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
