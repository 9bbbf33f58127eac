// Package config holds the run configuration: artifact paths, the template
// sheet, the record source, and optional S3 upload settings. Configuration
// may come from a YAML file, from CLI flags, or both (flags win).
package config

// SourceType selects where order records come from.
type SourceType string

const (
	SourceCSV      SourceType = "csv"
	SourceMySQL    SourceType = "mysql"
	SourcePostgres SourceType = "postgres"
	SourceDynamoDB SourceType = "dynamodb"
)

// SourceConfig configures the record source.
type SourceConfig struct {
	Type  SourceType `yaml:"type"`
	DSN   string     `yaml:"dsn,omitempty"`   // connection string for mysql/postgres
	Table string     `yaml:"table,omitempty"` // table name for sql/dynamodb sources
}

// S3Config configures artifact upload after a successful run.
type S3Config struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix,omitempty"`
}

// RunConfig is the whole configuration of one build run.
type RunConfig struct {
	Input    string `yaml:"input"`            // CSV path (csv source only)
	Template string `yaml:"template"`         // template .ods
	Output   string `yaml:"output"`           // output .ods
	Log      string `yaml:"log"`              // reconciliation log
	Report   string `yaml:"report,omitempty"` // optional XLSX report of the log
	Sheet    string `yaml:"sheet,omitempty"`  // template sheet name

	Source SourceConfig `yaml:"source,omitempty"`
	S3     *S3Config    `yaml:"s3,omitempty"`

	// Parameters expand ${name} placeholders in the path fields. Values
	// may use the dynamic date form "$date:format:unit:offset".
	Parameters map[string]string `yaml:"parameters,omitempty"`
}

// Default artifact locations relative to the installation.
const (
	DefaultInput    = "in/input.csv"
	DefaultTemplate = "in/templates.ods"
	DefaultOutput   = "out/output.ods"
	DefaultLog      = "out/log.txt"
	DefaultSheet    = "PRINT_ALL"
)

// Default returns a RunConfig with every default filled in.
func Default() *RunConfig {
	return &RunConfig{
		Input:    DefaultInput,
		Template: DefaultTemplate,
		Output:   DefaultOutput,
		Log:      DefaultLog,
		Sheet:    DefaultSheet,
		Source:   SourceConfig{Type: SourceCSV},
	}
}

// ApplyDefaults fills any unset field with its default.
func (c *RunConfig) ApplyDefaults() {
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.Template == "" {
		c.Template = DefaultTemplate
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Log == "" {
		c.Log = DefaultLog
	}
	if c.Sheet == "" {
		c.Sheet = DefaultSheet
	}
	if c.Source.Type == "" {
		c.Source.Type = SourceCSV
	}
}
