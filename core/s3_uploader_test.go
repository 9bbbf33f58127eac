package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MockS3Client implements S3Client for testing.
type MockS3Client struct {
	PutObjectFunc func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.PutObjectFunc(ctx, params, optFns...)
}

func TestUploadFilesKeysAndSkips(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "output.ods")
	if err := os.WriteFile(outPath, []byte("data"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var keys []string
	mock := &MockS3Client{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			if *params.Bucket != "my-bucket" {
				t.Errorf("bucket = %q", *params.Bucket)
			}
			keys = append(keys, *params.Key)
			return &s3.PutObjectOutput{}, nil
		},
	}

	u := &S3Uploader{Client: mock, Bucket: "my-bucket", Prefix: "runs/today"}
	missing := filepath.Join(dir, "log.txt") // never written
	if err := u.UploadFiles(outPath, missing, ""); err != nil {
		t.Fatalf("UploadFiles: %v", err)
	}

	if len(keys) != 1 {
		t.Fatalf("uploads = %d, want 1 (missing and empty paths skipped)", len(keys))
	}
	if keys[0] != "runs/today/output.ods" {
		t.Fatalf("key = %q", keys[0])
	}
}

func TestUploadFileMissingLocal(t *testing.T) {
	u := &S3Uploader{Client: &MockS3Client{}, Bucket: "b"}
	if err := u.UploadFile(filepath.Join(t.TempDir(), "nope"), "k"); err == nil {
		t.Fatalf("expected error for unreadable local file")
	}
}
