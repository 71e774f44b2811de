package checklist

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/checklist/internal/model"
)

// recorder is a View that logs every notification as a short string,
// and a Persister that keeps every saved snapshot.
type recorder struct {
	events []string
	saves  []model.Snapshot
	fail   error
}

func (r *recorder) RebuildHeader(items []model.Item) {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	r.events = append(r.events, fmt.Sprintf("header %v", keys))
}
func (r *recorder) AppendCell(row int, key string) {
	r.events = append(r.events, fmt.Sprintf("append %s-%d", key, row))
}
func (r *recorder) RemoveCell(row int, key string) {
	r.events = append(r.events, fmt.Sprintf("remove %s-%d", key, row))
}
func (r *recorder) ValueChanged(key string, row int, on bool) {
	r.events = append(r.events, fmt.Sprintf("value %s-%d=%t", key, row, on))
}
func (r *recorder) SummaryChanged(s Summary) {
	r.events = append(r.events, "summary "+s.String())
}
func (r *recorder) CompletionChanged(key string, complete bool) {
	r.events = append(r.events, fmt.Sprintf("complete %s=%t", key, complete))
}
func (r *recorder) Save(s model.Snapshot) error {
	r.saves = append(r.saves, s)
	return r.fail
}

func (r *recorder) reset() { r.events, r.saves = nil, nil }

func newTestSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := New(model.DefaultSnapshot(), WithView(rec), WithPersister(rec))
	rec.reset()
	return s, rec
}

func keys(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key
	}
	return out
}

func TestNewRendersStoredState(t *testing.T) {
	rec := &recorder{}
	snap := model.DefaultSnapshot()
	for row := 1; row <= model.NumRows; row++ {
		snap.Values[model.CellName("homework", row)] = true
	}
	snap.Values["attend-3"] = true

	s := New(snap, WithView(rec), WithPersister(rec))

	assert.Equal(t, "1 / 30", s.Summary().String())
	assert.True(t, s.Complete("homework"))
	assert.False(t, s.Complete("attend"))
	assert.Empty(t, rec.saves, "loading must not write")
	assert.Equal(t, "header [attend homework supplies]", rec.events[0])
	assert.Contains(t, rec.events, "summary 1 / 30")
	assert.Contains(t, rec.events, "complete homework=true")
}

func TestNewReplacesInvalidSnapshot(t *testing.T) {
	s := New(model.Snapshot{Items: []model.Item{{Key: "a", Removable: true}}})
	assert.Equal(t, []string{"attend", "homework", "supplies"}, keys(s.Items()))
}

func TestNewDropsValuesOfUnknownItems(t *testing.T) {
	snap := model.DefaultSnapshot()
	snap.Values["ghost-1"] = true
	snap.Values["attend-2"] = true
	s := New(snap)
	assert.Equal(t, map[string]bool{"attend-2": true}, s.Snapshot().Values)
}

func TestSetValue(t *testing.T) {
	s, rec := newTestSession(t)

	require.True(t, s.SetValue("attend", 4, true))
	assert.True(t, s.Value("attend", 4))
	assert.Equal(t, "1 / 30", s.Summary().String())
	require.Len(t, rec.saves, 1)
	assert.Equal(t, map[string]bool{"attend-4": true}, rec.saves[0].Values)

	// Same value again: nothing to do.
	assert.False(t, s.SetValue("attend", 4, true))
	assert.Len(t, rec.saves, 1)

	require.True(t, s.SetValue("attend", 4, false))
	assert.False(t, s.Value("attend", 4))
	assert.Equal(t, "0 / 30", s.Summary().String())
	assert.Empty(t, rec.saves[1].Values)
}

func TestSetValueIgnoresUnknownCells(t *testing.T) {
	s, rec := newTestSession(t)
	assert.False(t, s.SetValue("quiz", 1, true))
	assert.False(t, s.SetValue("attend", 0, true))
	assert.False(t, s.SetValue("attend", model.NumRows+1, true))
	assert.Empty(t, rec.saves)
	assert.Empty(t, rec.events)
}

func TestSetValueOnOtherColumnKeepsSummary(t *testing.T) {
	s, rec := newTestSession(t)
	s.SetValue("homework", 1, true)
	for _, e := range rec.events {
		assert.NotContains(t, e, "summary")
	}
}

func TestToggle(t *testing.T) {
	s, _ := newTestSession(t)
	s.Toggle("supplies", 9)
	assert.True(t, s.Value("supplies", 9))
	s.Toggle("supplies", 9)
	assert.False(t, s.Value("supplies", 9))
}

func TestBulkSetCompletesColumn(t *testing.T) {
	s, rec := newTestSession(t)
	s.SetValue("attend", 2, true)
	rec.reset()

	flipped := s.BulkSet("attend", true)

	assert.Len(t, flipped, model.NumRows-1)
	assert.NotContains(t, flipped, 2)
	for row := 1; row <= model.NumRows; row++ {
		assert.True(t, s.Value("attend", row), "row %d", row)
	}
	assert.True(t, s.Complete("attend"))
	assert.Equal(t, "30 / 30", s.Summary().String())
	require.Len(t, rec.saves, 1, "one write per bulk action")
	assert.Len(t, rec.saves[0].Values, model.NumRows)
}

func TestBulkSetNotifiesBeforeAggregating(t *testing.T) {
	s, rec := newTestSession(t)
	s.BulkSet("homework", true)

	var values int
	last := -1
	for i, e := range rec.events {
		if len(e) > 6 && e[:6] == "value " {
			values++
			last = i
		}
	}
	assert.Equal(t, model.NumRows, values)
	require.Equal(t, last+1, len(rec.events)-1, "only the completion push follows the flips")
	assert.Equal(t, "complete homework=true", rec.events[len(rec.events)-1])
}

func TestBulkSetOff(t *testing.T) {
	s, rec := newTestSession(t)
	s.SetValue("supplies", 1, true)
	s.SetValue("supplies", 7, true)
	rec.reset()

	assert.Equal(t, []int{1, 7}, s.BulkSet("supplies", false))
	assert.Empty(t, s.Snapshot().Values)
	assert.Len(t, rec.saves, 1)

	rec.reset()
	assert.Nil(t, s.BulkSet("supplies", false))
	assert.Empty(t, rec.saves)
}

func TestBulkSetUnknownItem(t *testing.T) {
	s, rec := newTestSession(t)
	assert.Nil(t, s.BulkSet("nope", true))
	assert.Empty(t, rec.events)
}

func TestCompletionTransitions(t *testing.T) {
	s, rec := newTestSession(t)
	s.BulkSet("homework", true)
	rec.reset()

	s.SetValue("homework", 12, false)
	assert.False(t, s.Complete("homework"))
	assert.Contains(t, rec.events, "complete homework=false")

	rec.reset()
	s.SetValue("homework", 13, false)
	assert.NotContains(t, rec.events, "complete homework=false", "no transition, no push")
}

func TestAddItem(t *testing.T) {
	s, rec := newTestSession(t)

	it, err := s.AddItem("  Quiz  ")
	require.NoError(t, err)
	assert.Equal(t, model.Item{Key: "Quiz", Label: "Quiz", Removable: true}, it)
	assert.Equal(t, []string{"attend", "homework", "supplies", "Quiz"}, keys(s.Items()))
	for row := 1; row <= model.NumRows; row++ {
		assert.False(t, s.Value("Quiz", row))
	}
	assert.False(t, s.Complete("Quiz"))
	require.Len(t, rec.saves, 1)
	assert.Len(t, rec.saves[0].Items, 4)
	assert.Contains(t, rec.events, "append Quiz-30")
	assert.Contains(t, rec.events, "complete Quiz=false")

	rec.reset()
	_, err = s.AddItem("Quiz")
	assert.True(t, errors.Is(err, ErrRejected))
	_, err = s.AddItem("quiz")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Len(t, s.Items(), 4)
	assert.Empty(t, rec.saves)
	assert.Empty(t, rec.events)
}

func TestAddItemRejectsBlankLabel(t *testing.T) {
	s, rec := newTestSession(t)
	_, err := s.AddItem(" \t ")
	assert.ErrorIs(t, err, ErrRejected)
	assert.Len(t, s.Items(), 3)
	assert.Empty(t, rec.saves)
}

func TestRemoveItem(t *testing.T) {
	s, rec := newTestSession(t)
	s.BulkSet("homework", true)
	rec.reset()

	require.NoError(t, s.RemoveItem("homework"))
	assert.Equal(t, []string{"attend", "supplies"}, keys(s.Items()))
	assert.Empty(t, s.Snapshot().Values)
	assert.False(t, s.Complete("homework"))
	require.Len(t, rec.saves, 1)
	assert.Contains(t, rec.events, "remove homework-1")

	rec.reset()
	assert.ErrorIs(t, s.RemoveItem("attend"), ErrRejected)
	assert.ErrorIs(t, s.RemoveItem("homework"), ErrRejected)
	assert.ErrorIs(t, s.RemoveItem("SUPPLIES"), ErrRejected, "removal matches keys exactly")
	assert.Equal(t, []string{"attend", "supplies"}, keys(s.Items()))
	assert.Empty(t, rec.saves)
	assert.Empty(t, rec.events)
}

func TestRemoveThenAddDoesNotResurrectValues(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetValue("supplies", 5, true)
	require.NoError(t, s.RemoveItem("supplies"))

	it, err := s.AddItem("supplies")
	require.NoError(t, err)
	for row := 1; row <= model.NumRows; row++ {
		assert.False(t, s.Value(it.Key, row))
	}
}

func TestDistinguishedItemSurvivesSchemaChurn(t *testing.T) {
	s, _ := newTestSession(t)
	ops := []func(){
		func() { s.AddItem("a") },
		func() { s.RemoveItem("attend") },
		func() { s.AddItem("Attend") },
		func() { s.RemoveItem("homework") },
		func() { s.AddItem("b c") },
		func() { s.RemoveItem("a") },
		func() { s.RemoveItem("supplies") },
		func() { s.RemoveItem("b-c") },
	}
	for _, op := range ops {
		op()
		items := s.Items()
		require.NotEmpty(t, items)
		assert.Equal(t, "attend", items[0].Key)
		assert.False(t, items[0].Removable)
	}
	assert.Equal(t, "attend", s.Distinguished().Key)
	assert.Equal(t, []string{"attend"}, keys(s.Items()))
}

func TestSnapshotMatchesSaves(t *testing.T) {
	s, rec := newTestSession(t)
	s.SetValue("attend", 1, true)
	s.AddItem("Quiz")
	s.SetValue("Quiz", 30, true)

	want := model.Snapshot{
		Items: append(model.DefaultItems(), model.Item{Key: "Quiz", Label: "Quiz", Removable: true}),
		Values: map[string]bool{
			"attend-1": true,
			"Quiz-30":  true,
		},
	}
	if diff := cmp.Diff(want, rec.saves[len(rec.saves)-1]); diff != "" {
		t.Errorf("last save mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveFailureDoesNotUndoMutation(t *testing.T) {
	s, rec := newTestSession(t)
	rec.fail = errors.New("disk full")
	assert.True(t, s.SetValue("attend", 1, true))
	assert.True(t, s.Value("attend", 1))
	_, err := s.AddItem("Quiz")
	assert.NoError(t, err)
}

func TestAttachReplaysState(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetValue("attend", 3, true)

	late := &recorder{}
	s.Attach(late)
	assert.Equal(t, "header [attend homework supplies]", late.events[0])
	assert.Contains(t, late.events, "value attend-3=true")
	assert.Contains(t, late.events, "summary 1 / 30")
	assert.Contains(t, late.events, "complete supplies=false")

	late.events = nil
	s.SetValue("attend", 4, true)
	assert.Contains(t, late.events, "summary 2 / 30")
}

func TestDefaultScenario(t *testing.T) {
	s, _ := newTestSession(t)
	s.BulkSet("attend", true)
	assert.Equal(t, "30 / 30", s.Summary().String())
	assert.True(t, s.Complete("attend"))
}
