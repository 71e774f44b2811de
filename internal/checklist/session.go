// Package checklist holds the roster checklist engine: the ordered schema
// of tracked items, the sparse per-row values, the grid structure that
// mirrors what a view renders, and the derived summary and completion
// flags. Every mutation is persisted synchronously through a Persister.
//
// A Session is not safe for concurrent use. Hosts feed it one event at a
// time.
package checklist

import (
	"go.uber.org/zap"

	"github.com/idilsaglam/checklist/internal/model"
)

// Persister receives the full snapshot after every mutation. Failures
// are the persister's to report; the session does not act on them.
type Persister interface {
	Save(model.Snapshot) error
}

type nopPersister struct{}

func (nopPersister) Save(model.Snapshot) error { return nil }

// Session is the process-owned checklist state.
type Session struct {
	schema *schema
	values values
	grid   *Grid
	report *reporter

	distinguished string
	store         Persister
	view          *fanout
	log           *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithPersister sets where snapshots are written after each mutation.
func WithPersister(p Persister) Option {
	return func(s *Session) { s.store = p }
}

// WithView registers a view before the initial render.
func WithView(v View) Option {
	return func(s *Session) { s.view.add(v) }
}

// WithLogger sets the logger used for rejected operations.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New builds a session from a loaded snapshot. A snapshot that breaks
// the schema invariants is replaced by the default one.
func New(snap model.Snapshot, opts ...Option) *Session {
	s := &Session{
		store: nopPersister{},
		view:  &fanout{},
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if err := snap.Validate(); err != nil {
		s.log.Warn("discarding invalid snapshot", zap.Error(err))
		snap = model.DefaultSnapshot()
	}
	snap = snap.Normalize()

	s.schema = newSchema(snap.Items)
	s.values = valuesFrom(snap.Values)
	d, _ := s.schema.distinguished()
	s.distinguished = d.Key
	s.grid = newGrid(s.schema.list(), s.view)
	s.report = newReporter(s.view)
	s.render()
	return s
}

// Attach adds a view and replays the current state into it.
func (s *Session) Attach(v View) {
	s.view.add(v)
	v.RebuildHeader(s.grid.Header())
	for key, r := range s.valueRows() {
		for _, row := range r {
			v.ValueChanged(key, row, true)
		}
	}
	v.SummaryChanged(s.report.summary)
	for _, it := range s.schema.items {
		v.CompletionChanged(it.Key, s.report.complete[it.Key])
	}
}

// render pushes the startup state: values, summary, then every item's
// completion flag.
func (s *Session) render() {
	for key, rows := range s.valueRows() {
		for _, row := range rows {
			s.view.ValueChanged(key, row, true)
		}
	}
	s.report.refreshSummary(s.distinguished, s.values)
	for _, it := range s.schema.items {
		s.report.recompute(it.Key, s.values)
	}
}

func (s *Session) valueRows() map[string][]int {
	out := map[string][]int{}
	for _, it := range s.schema.items {
		for row := 1; row <= model.NumRows; row++ {
			if s.values.get(it.Key, row) {
				out[it.Key] = append(out[it.Key], row)
			}
		}
	}
	return out
}

// Items returns the schema in display order.
func (s *Session) Items() []model.Item { return s.schema.list() }

// Item looks up an item by exact key.
func (s *Session) Item(key string) (model.Item, bool) {
	i := s.schema.index(key)
	if i < 0 {
		return model.Item{}, false
	}
	return s.schema.items[i], true
}

// Distinguished returns the non-removable item.
func (s *Session) Distinguished() model.Item {
	it, _ := s.Item(s.distinguished)
	return it
}

// Value reads one cell; unknown cells are false.
func (s *Session) Value(key string, row int) bool {
	return s.values.get(key, row)
}

// Summary returns the distinguished column's true-count.
func (s *Session) Summary() Summary { return s.report.summary }

// Complete reports whether every row of key is checked.
func (s *Session) Complete(key string) bool { return s.report.complete[key] }

// Grid exposes the rendered structure.
func (s *Session) Grid() *Grid { return s.grid }

// Snapshot returns the persisted form of the current state.
func (s *Session) Snapshot() model.Snapshot {
	return model.Snapshot{Items: s.schema.list(), Values: s.values.export()}
}

// SetValue records one cell. Unknown items and rows are ignored.
// It reports whether the cell changed.
func (s *Session) SetValue(key string, row int, on bool) bool {
	if !s.schema.has(key) || !model.ValidRow(row) {
		return false
	}
	if !s.values.set(key, row, on) {
		return false
	}
	s.view.ValueChanged(key, row, on)
	s.aggregate(key)
	s.persist()
	return true
}

// Toggle flips one cell.
func (s *Session) Toggle(key string, row int) bool {
	return s.SetValue(key, row, !s.values.get(key, row))
}

// BulkSet moves every row of key to on. Only rows holding the other
// value are flipped, each with its own change notification; the derived
// state and the snapshot are updated once, after the last flip. It
// returns the flipped rows.
func (s *Session) BulkSet(key string, on bool) []int {
	if !s.schema.has(key) {
		return nil
	}
	var flipped []int
	for row := 1; row <= model.NumRows; row++ {
		if s.values.set(key, row, on) {
			flipped = append(flipped, row)
			s.view.ValueChanged(key, row, on)
		}
	}
	if len(flipped) == 0 {
		return nil
	}
	s.aggregate(key)
	s.persist()
	return flipped
}

// AddItem appends a removable column derived from label.
func (s *Session) AddItem(label string) (model.Item, error) {
	it, err := s.schema.add(label)
	if err != nil {
		s.log.Debug("add item rejected", zap.String("label", label), zap.Error(err))
		return model.Item{}, err
	}
	s.grid.addColumn(s.schema.list(), it)
	s.report.track(it.Key)
	s.persist()
	return it, nil
}

// RemoveItem drops a removable column and all of its values.
func (s *Session) RemoveItem(key string) error {
	it, err := s.schema.remove(key)
	if err != nil {
		s.log.Debug("remove item rejected", zap.String("key", key), zap.Error(err))
		return err
	}
	s.values.purge(it.Key)
	s.grid.removeColumn(s.schema.list(), it.Key)
	s.report.drop(it.Key)
	s.report.refreshSummary(s.distinguished, s.values)
	s.persist()
	return nil
}

func (s *Session) aggregate(key string) {
	s.report.recompute(key, s.values)
	if key == s.distinguished {
		s.report.refreshSummary(key, s.values)
	}
}

func (s *Session) persist() {
	// The persister logs its own failures; the next mutation retries.
	_ = s.store.Save(s.Snapshot())
}
