package core

import (
	"database/sql"
	"fmt"
)

// SQLRecordSource reads order records from a database table whose column
// names match the CSV header layout. Works with the mysql and postgres
// drivers registered by the CLI.
type SQLRecordSource struct {
	DB    *sql.DB
	Table string
}

func NewSQLRecordSource(db *sql.DB, table string) *SQLRecordSource {
	return &SQLRecordSource{DB: db, Table: table}
}

func (s *SQLRecordSource) Fetch() ([]Record, error) {
	rows, err := s.DB.Query(fmt.Sprintf("SELECT * FROM %s", s.Table))
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var result []Record
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case nil:
				rec[col] = ""
			case []byte:
				// MySQL driver often returns strings as []byte.
				rec[col] = string(v)
			case string:
				rec[col] = v
			default:
				rec[col] = fmt.Sprintf("%v", v)
			}
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return result, nil
}
