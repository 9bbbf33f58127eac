package ods

import (
	"strconv"
	"testing"
)

func repeatedRow(repeat int) *Element {
	r := &Element{Name: ElemRow, Attrs: []Attr{{Name: "table:style-name", Value: "ro1"}}}
	if repeat > 1 {
		r.SetAttr(AttrRowsRepeated, strconv.Itoa(repeat))
	}
	return r
}

func tableOf(repeats ...int) *Element {
	table := &Element{Name: "table:table", Attrs: []Attr{{Name: AttrTableName, Value: "T"}}}
	for _, n := range repeats {
		table.AppendChild(repeatedRow(n))
	}
	return table
}

func TestEnsureRowSplitPreservesLogicalCount(t *testing.T) {
	const runLen = 9
	for target := 1; target <= runLen; target++ {
		table := tableOf(runLen)
		row := EnsureRow(table, target)
		if row == nil {
			t.Fatalf("target %d: EnsureRow returned nil", target)
		}
		if got := RepeatCount(row, AttrRowsRepeated); got != 1 {
			t.Fatalf("target %d: target run repeat = %d, want 1", target, got)
		}
		if got := LogicalRows(table); got != runLen {
			t.Fatalf("target %d: logical rows = %d, want %d", target, got, runLen)
		}
		// The same index must now resolve to the split-out run.
		if RowAt(table, target) != row {
			t.Fatalf("target %d: RowAt does not resolve to the split run", target)
		}
		switch target {
		case 1, runLen:
			if n := len(TableRows(table)); n != 2 {
				t.Fatalf("edge target %d: runs = %d, want 2", target, n)
			}
		default:
			if n := len(TableRows(table)); n != 3 {
				t.Fatalf("target %d: runs = %d, want 3", target, n)
			}
		}
	}
}

func TestEnsureRowSingleRunUntouched(t *testing.T) {
	table := tableOf(1, 1, 1)
	before := TableRows(table)
	row := EnsureRow(table, 2)
	if row != before[1] {
		t.Fatalf("EnsureRow replaced an already-physical row")
	}
	if len(TableRows(table)) != 3 {
		t.Fatalf("physical lookup changed run structure")
	}
}

func TestEnsureRowAcrossRuns(t *testing.T) {
	// Runs of 3, 5, 2 cover logical rows 1-3, 4-8, 9-10.
	table := tableOf(3, 5, 2)
	row := EnsureRow(table, 6)
	if row == nil {
		t.Fatalf("EnsureRow(6) = nil")
	}
	if got := LogicalRows(table); got != 10 {
		t.Fatalf("logical rows = %d, want 10", got)
	}
	rows := TableRows(table)
	wantRepeats := []int{3, 2, 1, 2, 2}
	if len(rows) != len(wantRepeats) {
		t.Fatalf("runs = %d, want %d", len(rows), len(wantRepeats))
	}
	for i, want := range wantRepeats {
		if got := RepeatCount(rows[i], AttrRowsRepeated); got != want {
			t.Fatalf("run %d repeat = %d, want %d", i, got, want)
		}
	}
}

func TestEnsureRowBeyondEnd(t *testing.T) {
	table := tableOf(3, 5)
	if EnsureRow(table, 9) != nil {
		t.Fatalf("EnsureRow beyond the last run must return nil")
	}
	if LogicalRows(table) != 8 {
		t.Fatalf("failed lookup mutated the table")
	}
}

func TestRowAtReadOnly(t *testing.T) {
	table := tableOf(4)
	if RowAt(table, 3) == nil {
		t.Fatalf("RowAt(3) = nil inside a run of 4")
	}
	if len(TableRows(table)) != 1 {
		t.Fatalf("RowAt split the run")
	}
	if RowAt(table, 5) != nil {
		t.Fatalf("RowAt past the end must return nil")
	}
}

func TestEnsureCellSplitsColumns(t *testing.T) {
	row := &Element{Name: ElemRow}
	wide := &Element{Name: ElemCell}
	wide.SetAttr(AttrColsRepeated, "8")
	row.AppendChild(wide)

	cell := EnsureCell(row, 4)
	if cell == nil {
		t.Fatalf("EnsureCell(4) = nil")
	}
	cells := RowCells(row)
	wantRepeats := []int{3, 1, 4}
	if len(cells) != len(wantRepeats) {
		t.Fatalf("cell runs = %d, want %d", len(cells), len(wantRepeats))
	}
	total := 0
	for i, want := range wantRepeats {
		got := RepeatCount(cells[i], AttrColsRepeated)
		if got != want {
			t.Fatalf("cell run %d repeat = %d, want %d", i, got, want)
		}
		total += got
	}
	if total != 8 {
		t.Fatalf("logical column count = %d, want 8", total)
	}
}

func TestEnsureCellCountsCoveredCells(t *testing.T) {
	row := &Element{Name: ElemRow}
	row.AppendChild(&Element{Name: ElemCell})
	covered := &Element{Name: ElemCoveredCell}
	covered.SetAttr(AttrColsRepeated, "2")
	row.AppendChild(covered)
	last := &Element{Name: ElemCell, Attrs: []Attr{{Name: "table:style-name", Value: "ce9"}}}
	row.AppendChild(last)

	// Columns: 1 cell, 2-3 covered, 4 cell.
	cell := EnsureCell(row, 4)
	if cell != last {
		t.Fatalf("EnsureCell(4) did not account for covered columns")
	}
	if EnsureCell(row, 5) != nil {
		t.Fatalf("EnsureCell beyond the row must return nil")
	}
}

func TestRepeatCountDefaults(t *testing.T) {
	r := &Element{Name: ElemRow}
	if got := RepeatCount(r, AttrRowsRepeated); got != 1 {
		t.Fatalf("missing attr: repeat = %d, want 1", got)
	}
	r.SetAttr(AttrRowsRepeated, "bogus")
	if got := RepeatCount(r, AttrRowsRepeated); got != 1 {
		t.Fatalf("malformed attr: repeat = %d, want 1", got)
	}
}
