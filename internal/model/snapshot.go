package model

import (
	"errors"
	"fmt"
	"strings"
)

// StorageKey names the durable slot holding the snapshot.
const StorageKey = "student-checklist-data"

// Snapshot is the persisted unit: schema plus the true cells.
// Values only ever holds true entries; absence means false.
type Snapshot struct {
	Items  []Item          `json:"itemList"`
	Values map[string]bool `json:"checklistData"`
}

// DefaultSnapshot is the built-in schema with no checked cells.
func DefaultSnapshot() Snapshot {
	return Snapshot{Items: DefaultItems(), Values: map[string]bool{}}
}

var errInvalidSnapshot = errors.New("invalid snapshot")

// Validate checks the schema invariants: non-empty unique keys and
// exactly one non-removable item.
func (s Snapshot) Validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("%w: no items", errInvalidSnapshot)
	}
	seen := make(map[string]bool, len(s.Items))
	fixed := 0
	for i, it := range s.Items {
		if strings.TrimSpace(it.Key) == "" {
			return fmt.Errorf("%w: item %d has empty key", errInvalidSnapshot, i)
		}
		k := strings.ToLower(it.Key)
		if seen[k] {
			return fmt.Errorf("%w: duplicate key %q", errInvalidSnapshot, it.Key)
		}
		seen[k] = true
		if !it.Removable {
			fixed++
		}
	}
	if fixed != 1 {
		return fmt.Errorf("%w: want 1 non-removable item, have %d", errInvalidSnapshot, fixed)
	}
	return nil
}

// Normalize returns a copy with only the value entries that address a
// present item and a valid row. False entries are dropped.
func (s Snapshot) Normalize() Snapshot {
	out := Snapshot{
		Items:  append([]Item(nil), s.Items...),
		Values: make(map[string]bool, len(s.Values)),
	}
	keys := make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		keys[it.Key] = true
	}
	for name, v := range s.Values {
		if !v {
			continue
		}
		key, row, ok := ParseCellName(name)
		if !ok || !keys[key] || !ValidRow(row) {
			continue
		}
		out.Values[name] = true
	}
	return out
}
