package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogEntryLineFormat(t *testing.T) {
	rec := Record{
		FieldSerialNo:     "SN1",
		FieldOrderNo:      "ORD-9",
		FieldOrderDate:    "2024-03-01",
		FieldCustomerName: "Acme",
		FieldGrandTotal:   "12.50",
	}
	e := LogEntry{
		Reason: ReasonTotalMismatch,
		Record: rec,
		Extra: []KV{
			{Key: "Sum(Product Totals)", Value: "12.49"},
			{Key: "Diff", Value: "0.01"},
		},
	}
	want := "Reason=TOTAL_MISMATCH,Serial No=SN1,Order No=ORD-9,Order Date=2024-03-01,Customer Name=Acme,Grand Total=12.50,Sum(Product Totals)=12.49,Diff=0.01"
	if got := e.Line(); got != want {
		t.Fatalf("Line() = %q, want %q", got, want)
	}
}

func TestLogEntryLineMissingFields(t *testing.T) {
	e := LogEntry{Reason: ReasonOverflow, Record: Record{FieldSerialNo: "SN2"}}
	got := e.Line()
	if !strings.HasPrefix(got, "Reason=HAS_PRODUCT_17_25,Serial No=SN2,Order No=,") {
		t.Fatalf("Line() = %q", got)
	}
}

func TestReconLogAppendTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "log.txt")

	log := &ReconLog{}
	log.Add(ReasonParseError, Record{FieldSerialNo: "A"}, KV{Key: "Field", Value: "Grand Total"})
	if err := log.AppendTo(path); err != nil {
		t.Fatalf("AppendTo: %v", err)
	}

	// A second run appends rather than truncates.
	log2 := &ReconLog{}
	log2.Add(ReasonSummary, Record{}, KV{Key: "TotalRecords", Value: "0"})
	if err := log2.AppendTo(path); err != nil {
		t.Fatalf("AppendTo second run: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("log lines = %d, want 2: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "Reason=PARSE_ERROR,") {
		t.Fatalf("line 1 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Reason=SUMMARY,") {
		t.Fatalf("line 2 = %q", lines[1])
	}
}

func TestReconLogAppendToEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	log := &ReconLog{}
	if err := log.AppendTo(path); err != nil {
		t.Fatalf("AppendTo: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("empty log created a file")
	}
}
