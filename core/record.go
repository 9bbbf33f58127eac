// Package core fills an OpenDocument spreadsheet template from order records
// and produces a reconciliation log. One 31-row block is rendered per record;
// line items beyond the 16 the template can show are logged and dropped from
// the document (see Generator), never an error.
package core

import "fmt"

// Record is one order keyed by its column headers.
type Record map[string]string

// Get returns the named field or "" if the record does not carry it.
func (r Record) Get(field string) string {
	return r[field]
}

// Base identity fields carried on every reconciliation log entry, in the
// order they are rendered.
var baseFields = []string{
	FieldSerialNo,
	FieldOrderNo,
	FieldOrderDate,
	FieldCustomerName,
	FieldGrandTotal,
}

// Column names of the record layout.
const (
	FieldSerialNo      = "Serial No"
	FieldOrderNo       = "Order No"
	FieldOrderDate     = "Order Date"
	FieldCustomerName  = "Customer Name"
	FieldCustomerPhone = "Customer Phone"
	FieldGrandTotal    = "Grand Total"
)

// ProductField names the per-line-item column, e.g. ProductField(3, "SKU")
// is "Product 3 SKU".
func ProductField(index int, part string) string {
	return fmt.Sprintf("Product %d %s", index, part)
}

// RecordSource yields order records. Sources return records in their storage
// order; the CSV source preserves file order, which downstream block
// placement relies on.
type RecordSource interface {
	Fetch() ([]Record, error)
}

// MockRecordSource is a fixed-data source for tests.
type MockRecordSource struct {
	Records []Record
	Err     error
}

func (m *MockRecordSource) Fetch() ([]Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}
