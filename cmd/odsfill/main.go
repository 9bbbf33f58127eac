package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"odsfill/config"
	"odsfill/core"

	// Database drivers

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		slog.Error("Build failed", "error", err)
		os.Exit(1)
	}
}

func run(output io.Writer, args []string) error {
	flags := flag.NewFlagSet("odsfill", flag.ContinueOnError)
	flags.SetOutput(output)

	configFile := flags.String("config", "", "Path to YAML run configuration (optional)")
	inputPath := flags.String("input", "", "Path to input CSV")
	templatePath := flags.String("template", "", "Path to template .ods")
	outputPath := flags.String("output", "", "Path to output .ods")
	logPath := flags.String("log", "", "Path to reconciliation log")
	reportPath := flags.String("report", "", "Optional XLSX report of the reconciliation log")
	sheetName := flags.String("sheet", "", "Template sheet name")
	sourceType := flags.String("source", "", "Record source: csv, mysql, postgres, dynamodb")
	dbDSN := flags.String("db-dsn", "", "Database connection string (DSN) for mysql/postgres")
	table := flags.String("table", "", "Table name for mysql/postgres/dynamodb sources")
	s3Bucket := flags.String("s3-bucket", "", "S3 bucket name for uploading artifacts")
	s3Prefix := flags.String("s3-prefix", "odsfill-output", "S3 prefix (folder) for uploaded artifacts")

	if err := flags.Parse(args); err != nil {
		return err
	}

	// Initialize structured logger
	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// 1. Resolve configuration: file first, flags override.
	cfg := config.Default()
	if *configFile != "" {
		slog.Info("Loading configuration", "file", *configFile)
		loaded, err := config.Load(*configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	applyFlag(&cfg.Input, *inputPath)
	applyFlag(&cfg.Template, *templatePath)
	applyFlag(&cfg.Output, *outputPath)
	applyFlag(&cfg.Log, *logPath)
	applyFlag(&cfg.Report, *reportPath)
	applyFlag(&cfg.Sheet, *sheetName)
	if *sourceType != "" {
		cfg.Source.Type = config.SourceType(*sourceType)
	}
	applyFlag(&cfg.Source.DSN, *dbDSN)
	applyFlag(&cfg.Source.Table, *table)
	if *s3Bucket != "" {
		cfg.S3 = &config.S3Config{Bucket: *s3Bucket, Prefix: *s3Prefix}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 2. Prepare record source
	var source core.RecordSource

	switch cfg.Source.Type {
	case config.SourceDynamoDB:
		slog.Info("Initializing DynamoDB record source", "table", cfg.Source.Table)
		// Load AWS Config (handles env vars, IAM roles, etc.)
		awscfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			return fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		source = core.NewDynamoDBRecordSource(awscfg, cfg.Source.Table)
	case config.SourceMySQL, config.SourcePostgres:
		slog.Info("Initializing SQL record source", "type", cfg.Source.Type, "table", cfg.Source.Table)
		db, err := sql.Open(string(cfg.Source.Type), cfg.Source.DSN)
		if err != nil {
			return fmt.Errorf("failed to open db connection: %w", err)
		}
		// Verify connection
		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping db: %w", err)
		}
		source = core.NewSQLRecordSource(db, cfg.Source.Table)
	default:
		if _, err := os.Stat(cfg.Input); err != nil {
			return fmt.Errorf("input CSV not found: %s", cfg.Input)
		}
		slog.Info("Initializing CSV record source", "path", cfg.Input)
		source = core.NewCSVRecordSource(cfg.Input)
	}

	// 3. Build the output document
	slog.Info("Building output document", "template", cfg.Template, "output", cfg.Output, "sheet", cfg.Sheet)

	generator := core.NewGenerator(cfg, source)
	if err := generator.Generate(); err != nil {
		return fmt.Errorf("build %s: %w", cfg.Output, err)
	}
	slog.Info("Successfully generated", "output", cfg.Output, "log", cfg.Log)

	// 4. Optional XLSX report of the reconciliation log
	if cfg.Report != "" {
		if err := core.WriteReportXLSX(cfg.Report, generator.Log.Entries()); err != nil {
			return fmt.Errorf("write report %s: %w", cfg.Report, err)
		}
		slog.Info("Wrote reconciliation report", "path", cfg.Report)
	}

	// 5. Upload artifacts to S3 if configured
	if cfg.S3 != nil {
		slog.Info("Starting S3 upload", "bucket", cfg.S3.Bucket, "prefix", cfg.S3.Prefix)

		awscfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			return fmt.Errorf("unable to load AWS SDK config for S3: %w", err)
		}

		uploader := core.NewS3Uploader(awscfg, cfg.S3.Bucket, cfg.S3.Prefix)
		if err := uploader.UploadFiles(cfg.Output, cfg.Log, cfg.Report); err != nil {
			return fmt.Errorf("failed to upload artifacts to s3: %w", err)
		}
		slog.Info("Successfully uploaded to S3")
	}

	return nil
}

func applyFlag(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
