package checklist

import "github.com/idilsaglam/checklist/internal/model"

// View receives structural and value notifications from a Session.
// Implementations render by querying the session; the session never
// assumes a rendering technology.
type View interface {
	RebuildHeader(items []model.Item)
	AppendCell(row int, key string)
	RemoveCell(row int, key string)
	ValueChanged(key string, row int, on bool)
	SummaryChanged(s Summary)
	CompletionChanged(key string, complete bool)
}

// NopView ignores every notification. Embed it to implement a subset.
type NopView struct{}

func (NopView) RebuildHeader([]model.Item)     {}
func (NopView) AppendCell(int, string)         {}
func (NopView) RemoveCell(int, string)         {}
func (NopView) ValueChanged(string, int, bool) {}
func (NopView) SummaryChanged(Summary)         {}
func (NopView) CompletionChanged(string, bool) {}

// fanout forwards notifications to every registered view in order.
type fanout struct {
	views []View
}

func (f *fanout) add(v View) {
	if v != nil {
		f.views = append(f.views, v)
	}
}

func (f *fanout) RebuildHeader(items []model.Item) {
	for _, v := range f.views {
		v.RebuildHeader(items)
	}
}

func (f *fanout) AppendCell(row int, key string) {
	for _, v := range f.views {
		v.AppendCell(row, key)
	}
}

func (f *fanout) RemoveCell(row int, key string) {
	for _, v := range f.views {
		v.RemoveCell(row, key)
	}
}

func (f *fanout) ValueChanged(key string, row int, on bool) {
	for _, v := range f.views {
		v.ValueChanged(key, row, on)
	}
}

func (f *fanout) SummaryChanged(s Summary) {
	for _, v := range f.views {
		v.SummaryChanged(s)
	}
}

func (f *fanout) CompletionChanged(key string, complete bool) {
	for _, v := range f.views {
		v.CompletionChanged(key, complete)
	}
}
