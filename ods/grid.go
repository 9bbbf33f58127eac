package ods

import "strconv"

// Attribute and element names used by the grid operations.
const (
	ElemRow         = "table:table-row"
	ElemCell        = "table:table-cell"
	ElemCoveredCell = "table:covered-table-cell"

	AttrRowsRepeated = "table:number-rows-repeated"
	AttrColsRepeated = "table:number-columns-repeated"
	AttrTableName    = "table:name"
	AttrPrintRanges  = "table:print-ranges"
)

// RepeatCount returns the run length stored in the named repeat attribute,
// treating an absent or malformed value as 1.
func RepeatCount(el *Element, attr string) int {
	v := el.Attr(attr)
	if v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TableRows returns the row elements of a table in order.
func TableRows(table *Element) []*Element {
	return table.ChildElements(ElemRow)
}

// RowCells returns the cell elements of a row in order, covered cells
// included since they occupy logical columns.
func RowCells(row *Element) []*Element {
	return row.ChildElements(ElemCell, ElemCoveredCell)
}

// LogicalRows returns the number of logical rows the table holds, i.e. the
// sum of the repeat counts of its row runs.
func LogicalRows(table *Element) int {
	total := 0
	for _, row := range TableRows(table) {
		total += RepeatCount(row, AttrRowsRepeated)
	}
	return total
}

// EnsureRow returns the physical row at 1-based logical index, splitting the
// run that covers it if the run represents more than one row. The split
// replaces the run with up to three clones (before / target / after) whose
// repeat counts sum to the original, so the table's logical row count is
// unchanged. Returns nil if index lies beyond the last run.
func EnsureRow(table *Element, index int) *Element {
	return ensureAt(table, TableRows(table), AttrRowsRepeated, index)
}

// RowAt is the read-only counterpart of EnsureRow: it locates the physical
// row covering the logical index without splitting anything. A nil result is
// a normal outcome meaning the index lies beyond all rows, which callers use
// as an append-at-the-end signal.
func RowAt(table *Element, index int) *Element {
	current := 1
	for _, row := range TableRows(table) {
		repeat := RepeatCount(row, AttrRowsRepeated)
		if current <= index && index <= current+repeat-1 {
			return row
		}
		current += repeat
	}
	return nil
}

// EnsureCell returns the physical cell at the 1-based logical column of a
// row, splitting a repeated cell run if needed. Covered cells participate in
// the column count. Returns nil if the column lies beyond the row's cells.
func EnsureCell(row *Element, col int) *Element {
	return ensureAt(row, RowCells(row), AttrColsRepeated, col)
}

// ensureAt materializes the node covering a logical index inside a run list.
// parent holds the runs as children; runs is the filtered run view; attr is
// the repeat-count attribute for this axis.
func ensureAt(parent *Element, runs []*Element, attr string, index int) *Element {
	current := 1
	for _, run := range runs {
		repeat := RepeatCount(run, attr)
		if index < current || index > current+repeat-1 {
			current += repeat
			continue
		}
		if repeat == 1 {
			return run
		}

		offset := index - current
		var pieces []*Element
		if offset > 0 {
			before := run.Clone()
			before.SetAttr(attr, strconv.Itoa(offset))
			pieces = append(pieces, before)
		}
		target := run.Clone()
		target.SetAttr(attr, "1")
		pieces = append(pieces, target)
		if remaining := repeat - offset - 1; remaining > 0 {
			after := run.Clone()
			after.SetAttr(attr, strconv.Itoa(remaining))
			pieces = append(pieces, after)
		}

		for _, p := range pieces {
			parent.InsertBefore(p, run)
		}
		parent.RemoveChild(run)
		return target
	}
	return nil
}
