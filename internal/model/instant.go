package model

import "time"

// NormalizeInstant accepts an RFC3339 instant or a bare date, the two
// forms date pickers produce, and returns the equivalent UTC instant.
// Storing UTC keeps the store's lexicographic date ordering equal to
// instant ordering.
func NormalizeInstant(s string) (string, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.RFC3339), nil
}
