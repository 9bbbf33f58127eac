package config

import (
	"strings"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr string
	}{
		{
			name:    "missing template",
			mutate:  func(c *RunConfig) { c.Template = "" },
			wantErr: "template path",
		},
		{
			name:    "missing output",
			mutate:  func(c *RunConfig) { c.Output = "" },
			wantErr: "output path",
		},
		{
			name:    "missing log",
			mutate:  func(c *RunConfig) { c.Log = "" },
			wantErr: "log path",
		},
		{
			name:    "missing sheet",
			mutate:  func(c *RunConfig) { c.Sheet = "" },
			wantErr: "sheet name",
		},
		{
			name:    "csv without input",
			mutate:  func(c *RunConfig) { c.Input = "" },
			wantErr: "input path",
		},
		{
			name: "mysql without dsn",
			mutate: func(c *RunConfig) {
				c.Source = SourceConfig{Type: SourceMySQL, Table: "orders"}
			},
			wantErr: "dsn",
		},
		{
			name: "postgres without table",
			mutate: func(c *RunConfig) {
				c.Source = SourceConfig{Type: SourcePostgres, DSN: "postgres://x"}
			},
			wantErr: "table",
		},
		{
			name: "dynamodb without table",
			mutate: func(c *RunConfig) {
				c.Source = SourceConfig{Type: SourceDynamoDB}
			},
			wantErr: "table",
		},
		{
			name:    "unknown source",
			mutate:  func(c *RunConfig) { c.Source.Type = "ftp" },
			wantErr: "unsupported source",
		},
		{
			name:    "s3 without bucket",
			mutate:  func(c *RunConfig) { c.S3 = &S3Config{} },
			wantErr: "bucket",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate succeeded, want error containing %q", c.wantErr)
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("err = %v, want it to mention %q", err, c.wantErr)
			}
		})
	}
}

func TestValidateAcceptedSources(t *testing.T) {
	cfg := Default()
	cfg.Source = SourceConfig{Type: SourceMySQL, DSN: "user:pass@/db", Table: "orders"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("mysql config invalid: %v", err)
	}

	cfg = Default()
	cfg.Source = SourceConfig{Type: SourceDynamoDB, Table: "orders"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("dynamodb config invalid: %v", err)
	}
}
