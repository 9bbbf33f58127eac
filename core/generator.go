package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"odsfill/config"
	"odsfill/ods"
)

// 1-based column numbers of the template columns the filler touches.
const (
	colC = 3
	colD = 4
	colF = 6
	colL = 12
	colN = 14
	colO = 15
	colR = 18
)

// Geometry of the template sheet.
const (
	blockRows     = 31 // rows per record block
	lineItemRows  = 16 // line items the block can render
	overflowMax   = 25 // highest line-item index the input may carry
	grandTotalRow = 29 // row of the grand-total cell within the block

	// Logical row of the template sheet whose attributes mark a page
	// break; they are stamped onto the first row of every block after
	// the first.
	pageBreakRow = 1000

	printRangeLastCol = "R"
)

type cellRef struct {
	col, row int // row is 1-based within the block
}

type colRange struct {
	col, rowStart, rowEnd int
}

// Header cells cleared before each record is written.
var clearCells = []cellRef{
	{colD, 5},
	{colD, 6},
	{colN, 6},
	{colR, 5},
	{colR, 7},
}

// Line-item column ranges cleared before each record is written, so a record
// that fills fewer than 16 items never shows template residue.
var clearRanges = []colRange{
	{colC, 13, 28},
	{colF, 13, 28},
	{colL, 13, 28},
	{colN, 13, 28},
	{colO, 13, 28},
	{colO, 29, 29},
}

// Generator builds the output document from a record source: it copies the
// template, keeps only the configured sheet, renders one 31-row block per
// record, sets the print range and saves, accumulating reconciliation
// entries as it goes.
type Generator struct {
	Config *config.RunConfig
	Source RecordSource
	Log    *ReconLog
}

func NewGenerator(cfg *config.RunConfig, source RecordSource) *Generator {
	return &Generator{Config: cfg, Source: source, Log: &ReconLog{}}
}

// Generate executes the whole run. Per-record problems (parse failures,
// total mismatches, overflowing line items) degrade to zero-valued fields
// plus a log entry and never abort; only structural problems (unreadable
// input, missing template sheet) are returned as errors.
func (g *Generator) Generate() error {
	start := time.Now()

	records, err := g.Source.Fetch()
	if err != nil {
		return fmt.Errorf("fetching records: %w", err)
	}
	slog.Info("Fetched records", "count", len(records))

	if err := copyFile(g.Config.Template, g.Config.Output); err != nil {
		return fmt.Errorf("copying template: %w", err)
	}

	doc, err := ods.Load(g.Config.Output)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	sheet, err := selectSheet(doc, g.Config.Sheet)
	if err != nil {
		return err
	}

	// Materialize the first block's rows and snapshot them as the
	// prototype for every later block, before any mutation.
	master := make([]*ods.Element, blockRows)
	complete := true
	for i := range master {
		master[i] = ods.EnsureRow(sheet, i+1)
		if master[i] == nil {
			complete = false
		}
	}
	if len(records) > 0 && !complete {
		return fmt.Errorf("sheet %q has %d logical rows, the template block needs %d",
			g.Config.Sheet, ods.LogicalRows(sheet), blockRows)
	}

	var template []*ods.Element
	if complete {
		template = make([]*ods.Element, blockRows)
		for i, row := range master {
			template[i] = row.Clone()
		}
	}

	var breakAttrs []ods.Attr
	if breakRow := ods.EnsureRow(sheet, pageBreakRow); breakRow != nil {
		breakAttrs = append(breakAttrs, breakRow.Attrs...)
	}

	for n, rec := range records {
		g.fillRecord(sheet, master, template, breakAttrs, n+1, rec)
	}

	if len(records) > 0 {
		endRow := len(records) * blockRows
		name := g.Config.Sheet
		sheet.SetAttr(ods.AttrPrintRanges,
			fmt.Sprintf("'%s'.A1:'%s'.%s%d", name, name, printRangeLastCol, endRow))
	}

	if err := doc.Save(g.Config.Output); err != nil {
		return fmt.Errorf("saving output: %w", err)
	}
	slog.Info("Saved output document", "path", g.Config.Output, "records", len(records))

	g.Log.Add(ReasonSummary, Record{},
		KV{Key: "TotalRecords", Value: strconv.Itoa(len(records))},
		KV{Key: "ElapsedSeconds", Value: fmt.Sprintf("%.2f", time.Since(start).Seconds())},
		KV{Key: "Output", Value: g.Config.Output},
	)

	if g.Log.Len() > 0 {
		if err := g.Log.AppendTo(g.Config.Log); err != nil {
			return fmt.Errorf("writing log: %w", err)
		}
	}
	return nil
}

// fillRecord renders one record into its 31-row block. The first record
// reuses the live master rows; later records clone the template, insert the
// clones before the row holding their start position (or append past the
// end) and stamp the page-break attributes on the block's first row.
func (g *Generator) fillRecord(sheet *ods.Element, master, template []*ods.Element, breakAttrs []ods.Attr, ordinal int, rec Record) {
	startRow := 1 + (ordinal-1)*blockRows

	var block []*ods.Element
	if ordinal == 1 {
		block = master
	} else {
		insertBefore := ods.RowAt(sheet, startRow)
		block = make([]*ods.Element, len(template))
		for i, row := range template {
			block[i] = row.Clone()
			sheet.InsertBefore(block[i], insertBefore)
		}
		applyPageBreak(block[0], breakAttrs)
	}

	for _, cr := range clearRanges {
		for r := cr.rowStart; r <= cr.rowEnd; r++ {
			ods.ClearCell(ods.EnsureCell(block[r-1], cr.col))
		}
	}
	for _, cc := range clearCells {
		ods.ClearCell(ods.EnsureCell(block[cc.row-1], cc.col))
	}

	orderDate := normalizeText(rec.Get(FieldOrderDate))
	if orderDate != "" {
		// Keep only the date portion of "2024-01-31 14:05:00".
		orderDate, _, _ = strings.Cut(orderDate, " ")
	}

	setText(block[4], colD, orderDate)
	setText(block[5], colD, normalizeText(rec.Get(FieldCustomerName)))
	setText(block[5], colN, normalizeText(rec.Get(FieldSerialNo)))
	setText(block[4], colR, normalizeText(rec.Get(FieldOrderNo)))
	setText(block[6], colR, normalizeText(rec.Get(FieldCustomerPhone)))

	totalsSum := decimal.Zero
	for i := 1; i <= lineItemRows; i++ {
		row := block[12+i-1]
		totalRaw := rec.Get(ProductField(i, "Total"))
		totalsSum = totalsSum.Add(parseAmount(totalRaw, rec, ProductField(i, "Total"), g.Log))

		setText(row, colC, normalizeText(rec.Get(ProductField(i, "SKU"))))
		setText(row, colF, normalizeText(rec.Get(ProductField(i, "Name"))))
		setText(row, colL, normalizeNumberText(rec.Get(ProductField(i, "Quantity"))))
		setText(row, colN, normalizeNumberText(rec.Get(ProductField(i, "Price"))))
		setText(row, colO, normalizeNumberText(totalRaw))
	}

	grand := parseAmount(rec.Get(FieldGrandTotal), rec, FieldGrandTotal, g.Log)
	setText(block[grandTotalRow-1], colO, "$"+formatDecimal(grand))

	if !totalsSum.Equal(grand) {
		g.Log.Add(ReasonTotalMismatch, rec,
			KV{Key: "Sum(Product Totals)", Value: formatDecimal(totalsSum)},
			KV{Key: "Diff", Value: formatDecimal(grand.Sub(totalsSum))},
		)
	}

	// Line items 17-25 have no rows in the block; their data is dropped
	// from the document on purpose and only flagged in the log, so the
	// log is the sole place this data loss is visible.
	if hasOverflowItems(rec) {
		g.Log.Add(ReasonOverflow, rec)
	}

	slog.Debug("Record filled",
		"ordinal", ordinal,
		"startRow", startRow,
		"serial", rec.Get(FieldSerialNo),
	)
}

func setText(row *ods.Element, col int, text string) {
	ods.SetCellText(ods.EnsureCell(row, col), text)
}

// selectSheet finds the designated sheet and removes every other sheet from
// the document. A missing designated sheet is fatal.
func selectSheet(doc *ods.Document, name string) (*ods.Element, error) {
	ss := doc.Spreadsheet()
	if ss == nil {
		return nil, fmt.Errorf("document has no spreadsheet body")
	}
	var target *ods.Element
	for _, table := range ss.ChildElements("table:table") {
		if table.Attr(ods.AttrTableName) == name {
			target = table
		} else {
			ss.RemoveChild(table)
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%s sheet not found", name)
	}
	return target, nil
}

// applyPageBreak copies the harvested page-break attributes onto a block's
// first row. The repeat-count attribute must not travel with them.
func applyPageBreak(row *ods.Element, attrs []ods.Attr) {
	for _, a := range attrs {
		if a.Name == ods.AttrRowsRepeated {
			continue
		}
		row.SetAttr(a.Name, a.Value)
	}
}

func hasOverflowItems(rec Record) bool {
	for i := lineItemRows + 1; i <= overflowMax; i++ {
		for _, part := range []string{"Name", "SKU", "Quantity", "Price", "Total"} {
			if normalizeText(rec.Get(ProductField(i, part))) != "" {
				return true
			}
		}
	}
	return false
}

func copyFile(src, dst string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
