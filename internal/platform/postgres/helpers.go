package postgres

import (
	"strconv"
	"time"
)

// nullableTime maps the zero time to SQL NULL. Zero timestamps mean
// "never happened" in the domain (e.g. a word that was materialized but
// not yet rated).
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

// nullableInt maps non-positive ints to SQL NULL; scope columns for the
// kind that is not in use stay NULL.
func nullableInt(n int) any {
	if n <= 0 {
		return nil
	}
	return n
}

func nullableInt64(n int64) any {
	if n <= 0 {
		return nil
	}
	return n
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
