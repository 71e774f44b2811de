package model

import (
	"strings"
	"unicode"
)

// NumRows is the fixed roster size.
const NumRows = 30

// DistinguishedKey is the key of the built-in attendance column.
const DistinguishedKey = "attend"

// Item is one tracked boolean column of the roster.
// Exactly one item per schema is non-removable; that one is summarized.
type Item struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Removable bool   `json:"removable"`
}

// DefaultItems returns a fresh copy of the built-in schema.
func DefaultItems() []Item {
	return []Item{
		{Key: DistinguishedKey, Label: "Attendance", Removable: false},
		{Key: "homework", Label: "Homework", Removable: true},
		{Key: "supplies", Label: "Supplies", Removable: true},
	}
}

// KeyFromLabel derives an item key: trimmed, with every whitespace run
// collapsed to a single '-'. An empty result means the label is unusable.
func KeyFromLabel(label string) string {
	return strings.Join(strings.FieldsFunc(label, unicode.IsSpace), "-")
}

// SameKey compares keys the way the schema does (case-insensitive).
func SameKey(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ValidRow reports whether row addresses one of the roster slots.
func ValidRow(row int) bool {
	return row >= 1 && row <= NumRows
}
