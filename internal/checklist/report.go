package checklist

import (
	"fmt"

	"github.com/idilsaglam/checklist/internal/model"
)

// Summary is the true-count of the distinguished column.
type Summary struct {
	Key   string
	Count int
	Total int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d / %d", s.Count, s.Total)
}

// reporter keeps the derived state: the summary and one completion
// flag per item. Flags only ever move INCOMPLETE <-> COMPLETE.
type reporter struct {
	view     View
	summary  Summary
	complete map[string]bool
}

func newReporter(view View) *reporter {
	return &reporter{view: view, complete: map[string]bool{}}
}

// track starts a flag for a new column. New columns are incomplete.
func (r *reporter) track(key string) {
	r.complete[key] = false
	r.view.CompletionChanged(key, false)
}

func (r *reporter) drop(key string) {
	delete(r.complete, key)
}

// recompute re-evaluates key's flag and pushes transitions.
func (r *reporter) recompute(key string, v values) {
	done := v.count(key) == model.NumRows
	prev, known := r.complete[key]
	r.complete[key] = done
	if !known || prev != done {
		r.view.CompletionChanged(key, done)
	}
}

func (r *reporter) refreshSummary(key string, v values) {
	r.summary = Summary{Key: key, Count: v.count(key), Total: model.NumRows}
	r.view.SummaryChanged(r.summary)
}
