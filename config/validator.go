package config

import "fmt"

// Validate checks the configuration for contradictions before any work
// starts.
func (c *RunConfig) Validate() error {
	if c.Template == "" {
		return fmt.Errorf("template path is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if c.Log == "" {
		return fmt.Errorf("log path is required")
	}
	if c.Sheet == "" {
		return fmt.Errorf("sheet name is required")
	}

	switch c.Source.Type {
	case SourceCSV:
		if c.Input == "" {
			return fmt.Errorf("csv source requires an input path")
		}
	case SourceMySQL, SourcePostgres:
		if c.Source.DSN == "" {
			return fmt.Errorf("%s source requires a dsn", c.Source.Type)
		}
		if c.Source.Table == "" {
			return fmt.Errorf("%s source requires a table", c.Source.Type)
		}
	case SourceDynamoDB:
		if c.Source.Table == "" {
			return fmt.Errorf("dynamodb source requires a table")
		}
	default:
		return fmt.Errorf("unsupported source type: %s", c.Source.Type)
	}

	if c.S3 != nil && c.S3.Bucket == "" {
		return fmt.Errorf("s3 upload requires a bucket")
	}
	return nil
}
