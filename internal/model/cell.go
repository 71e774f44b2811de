package model

import (
	"strconv"
	"strings"
)

// CellName is the persisted name of one checkbox: "<key>-<row>".
func CellName(key string, row int) string {
	return key + "-" + strconv.Itoa(row)
}

// ParseCellName splits a cell name at its last '-'. Keys may themselves
// contain '-', so the row is always the final segment.
func ParseCellName(name string) (key string, row int, ok bool) {
	i := strings.LastIndexByte(name, '-')
	if i <= 0 || i == len(name)-1 {
		return "", 0, false
	}
	row, err := strconv.Atoi(name[i+1:])
	if err != nil || row < 1 {
		return "", 0, false
	}
	return name[:i], row, true
}
