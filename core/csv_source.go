package core

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVRecordSource reads header-driven records from a CSV file, preserving
// file order.
type CSVRecordSource struct {
	Path string
}

func NewCSVRecordSource(path string) *CSVRecordSource {
	return &CSVRecordSource{Path: path}
}

func (s *CSVRecordSource) Fetch() ([]Record, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %s: %w", s.Path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Rows may be shorter than the header when trailing fields are empty.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv content: %w", err)
	}
	if len(rows) < 1 {
		return nil, nil // Empty
	}

	header := rows[0]
	var result []Record
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for j, col := range row {
			if j < len(header) {
				rec[header[j]] = col
			}
		}
		result = append(result, rec)
	}
	return result, nil
}
