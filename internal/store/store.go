// Package store persists checklist snapshots into a single durable slot.
// The Adapter never fails its callers: reads fall back to the default
// snapshot, writes log and leave the previous content in place.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/idilsaglam/checklist/internal/model"
)

var (
	// ErrNotFound is returned by a Slot that has never been written.
	ErrNotFound = errors.New("slot is empty")
	// ErrStorageUnavailable wraps any read or write failure of a slot.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Slot is one durable key holding the serialized snapshot.
// Put must replace the content atomically or fail without touching it.
type Slot interface {
	Get() ([]byte, error)
	Put([]byte) error
}

// Adapter moves snapshots in and out of a Slot.
type Adapter struct {
	slot Slot
	log  *zap.Logger
}

// NewAdapter wraps slot. A nil logger discards failure reports.
func NewAdapter(slot Slot, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{slot: slot, log: log}
}

// stored mirrors the wire format; pointers tell missing from empty.
type stored struct {
	Items  *[]model.Item    `json:"itemList"`
	Values *map[string]bool `json:"checklistData"`
}

// Load reads the slot. Any failure yields the default snapshot.
func (a *Adapter) Load() model.Snapshot {
	b, err := a.slot.Get()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.log.Debug("no stored checklist, using defaults")
		} else {
			a.log.Warn("load checklist failed, using defaults",
				zap.Error(fmt.Errorf("%w: %v", ErrStorageUnavailable, err)))
		}
		return model.DefaultSnapshot()
	}
	snap, err := decode(b)
	if err != nil {
		a.log.Warn("stored checklist unreadable, using defaults", zap.Error(err))
		return model.DefaultSnapshot()
	}
	return snap
}

func decode(b []byte) (model.Snapshot, error) {
	var raw stored
	if err := json.Unmarshal(b, &raw); err != nil {
		return model.Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snap := model.DefaultSnapshot()
	if raw.Items != nil {
		snap.Items = *raw.Items
	}
	if raw.Values != nil && *raw.Values != nil {
		snap.Values = *raw.Values
	}
	if err := snap.Validate(); err != nil {
		return model.Snapshot{}, err
	}
	return snap.Normalize(), nil
}

// Save replaces the slot content with snap. The error is also logged;
// callers inside the engine ignore it.
func (a *Adapter) Save(snap model.Snapshot) error {
	b, err := Encode(snap)
	if err != nil {
		a.log.Error("encode checklist failed", zap.Error(err))
		return err
	}
	if err := a.slot.Put(b); err != nil {
		err = fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		a.log.Error("save checklist failed", zap.Error(err))
		return err
	}
	return nil
}

// Encode is the canonical serialization. Map keys are emitted sorted, so
// equal snapshots always produce equal bytes.
func Encode(snap model.Snapshot) ([]byte, error) {
	if snap.Items == nil {
		snap.Items = []model.Item{}
	}
	if snap.Values == nil {
		snap.Values = map[string]bool{}
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}
