package checklist

import "github.com/idilsaglam/checklist/internal/model"

type cell struct {
	key string
	row int
}

// values is a sparse set of checked cells; absence reads as false.
type values map[cell]struct{}

func valuesFrom(m map[string]bool) values {
	v := make(values, len(m))
	for name, on := range m {
		if !on {
			continue
		}
		if key, row, ok := model.ParseCellName(name); ok {
			v[cell{key, row}] = struct{}{}
		}
	}
	return v
}

func (v values) get(key string, row int) bool {
	_, ok := v[cell{key, row}]
	return ok
}

// set records on/off and reports whether the cell flipped.
func (v values) set(key string, row int, on bool) bool {
	c := cell{key, row}
	_, was := v[c]
	if was == on {
		return false
	}
	if on {
		v[c] = struct{}{}
	} else {
		delete(v, c)
	}
	return true
}

func (v values) purge(key string) {
	for c := range v {
		if c.key == key {
			delete(v, c)
		}
	}
}

func (v values) count(key string) int {
	n := 0
	for c := range v {
		if c.key == key {
			n++
		}
	}
	return n
}

func (v values) export() map[string]bool {
	out := make(map[string]bool, len(v))
	for c := range v {
		out[model.CellName(c.key, c.row)] = true
	}
	return out
}
