package helper

import "strings"

// IsDuplicateKey reports a unique violation (Postgres SQLSTATE 23505).
// String-based so it also matches SQLite's "UNIQUE constraint failed" in
// tests, without importing a driver.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
