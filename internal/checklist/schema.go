package checklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/checklist/internal/model"
)

// ErrRejected marks a schema change that would break an invariant.
// Callers treat it as a no-op.
var ErrRejected = errors.New("rejected")

// schema is the ordered list of tracked items.
type schema struct {
	items []model.Item
}

func newSchema(items []model.Item) *schema {
	return &schema{items: append([]model.Item(nil), items...)}
}

func (s *schema) list() []model.Item {
	return append([]model.Item(nil), s.items...)
}

func (s *schema) index(key string) int {
	for i, it := range s.items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

func (s *schema) has(key string) bool { return s.index(key) >= 0 }

// distinguished returns the non-removable item.
func (s *schema) distinguished() (model.Item, bool) {
	for _, it := range s.items {
		if !it.Removable {
			return it, true
		}
	}
	return model.Item{}, false
}

func (s *schema) add(label string) (model.Item, error) {
	key := model.KeyFromLabel(label)
	if key == "" {
		return model.Item{}, fmt.Errorf("%w: empty label", ErrRejected)
	}
	for _, it := range s.items {
		if model.SameKey(it.Key, key) {
			return model.Item{}, fmt.Errorf("%w: item %q already exists", ErrRejected, it.Key)
		}
	}
	it := model.Item{Key: key, Label: strings.TrimSpace(label), Removable: true}
	s.items = append(s.items, it)
	return it, nil
}

func (s *schema) remove(key string) (model.Item, error) {
	i := s.index(key)
	if i < 0 {
		return model.Item{}, fmt.Errorf("%w: no item %q", ErrRejected, key)
	}
	it := s.items[i]
	if !it.Removable {
		return model.Item{}, fmt.Errorf("%w: item %q cannot be removed", ErrRejected, key)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return it, nil
}
