// Package mpointers holds small helpers to take the address of a literal
// value inline, without declaring an intermediate variable.
package mpointers

import "time"

// String returns a pointer to the given string.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to the given bool.
func Bool(b bool) *bool {
	return &b
}

// Int returns a pointer to the given int.
func Int(i int) *int {
	return &i
}

// Int64 returns a pointer to the given int64.
func Int64(i int64) *int64 {
	return &i
}

// Time returns a pointer to the given time.Time.
func Time(t time.Time) *time.Time {
	return &t
}
