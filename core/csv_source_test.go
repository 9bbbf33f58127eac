package core

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCSVRecordSourceFetch(t *testing.T) {
	path := writeCSV(t, "Serial No,Order No,Grand Total\nS1,O1,10.00\nS2,O2,20.00\n")

	records, err := NewCSVRecordSource(path).Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	// File order is preserved.
	if records[0].Get(FieldSerialNo) != "S1" || records[1].Get(FieldSerialNo) != "S2" {
		t.Fatalf("records out of order: %v", records)
	}
	if records[0].Get(FieldGrandTotal) != "10.00" {
		t.Fatalf("Grand Total = %q", records[0].Get(FieldGrandTotal))
	}
}

func TestCSVRecordSourceShortRows(t *testing.T) {
	path := writeCSV(t, "Serial No,Order No,Grand Total\nS1\n")

	records, err := NewCSVRecordSource(path).Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Get(FieldSerialNo) != "S1" {
		t.Fatalf("Serial No = %q", records[0].Get(FieldSerialNo))
	}
	if records[0].Get(FieldOrderNo) != "" {
		t.Fatalf("missing column = %q, want empty", records[0].Get(FieldOrderNo))
	}
}

func TestCSVRecordSourceHeaderOnly(t *testing.T) {
	path := writeCSV(t, "Serial No,Order No\n")

	records, err := NewCSVRecordSource(path).Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %d, want 0", len(records))
	}
}

func TestCSVRecordSourceMissingFile(t *testing.T) {
	_, err := NewCSVRecordSource(filepath.Join(t.TempDir(), "nope.csv")).Fetch()
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
