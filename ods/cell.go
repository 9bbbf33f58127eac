package ods

// Value-bearing cell attributes stripped by ClearCell.
var valueAttrs = []string{
	"office:value",
	"office:value-type",
	"office:date-value",
}

// ClearCell removes the cell's content children and value-bearing attributes,
// leaving it indistinguishable from an empty template cell. Style attributes
// are untouched. Clearing nil or an already-empty cell is a no-op.
func ClearCell(cell *Element) {
	if cell == nil {
		return
	}
	cell.Children = nil
	for _, a := range valueAttrs {
		cell.RemoveAttr(a)
	}
}

// SetCellText clears the cell and, if text is non-empty, marks it as holding
// a string value with a single text:p paragraph child. Setting empty text is
// equivalent to ClearCell.
func SetCellText(cell *Element, text string) {
	ClearCell(cell)
	if text == "" {
		return
	}
	cell.SetAttr("office:value-type", "string")
	cell.AppendChild(&Element{
		Name:     "text:p",
		Children: []Node{Text(text)},
	})
}
