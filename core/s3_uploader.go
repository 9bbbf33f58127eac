package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client defines the interface needed for uploading.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader pushes run artifacts (output document, log) to S3.
type S3Uploader struct {
	Client S3Client
	Bucket string
	Prefix string
}

// NewS3Uploader creates a new uploader.
func NewS3Uploader(cfg aws.Config, bucket, prefix string) *S3Uploader {
	return &S3Uploader{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
		Prefix: prefix,
	}
}

// UploadFiles uploads each local file under the configured prefix, keyed by
// its base name. Missing optional artifacts (an unwritten log) are skipped.
func (u *S3Uploader) UploadFiles(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			slog.Info("Skipping missing artifact", "path", p)
			continue
		}
		key := strings.TrimPrefix(path.Join(u.Prefix, path.Base(p)), "/")
		if err := u.UploadFile(p, key); err != nil {
			return err
		}
	}
	return nil
}

// UploadFile uploads a single file to S3.
func (u *S3Uploader) UploadFile(localPath, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", localPath, err)
	}
	defer file.Close()

	slog.Info("Uploading to S3", "local", localPath, "bucket", u.Bucket, "key", key)

	_, err = u.Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to s3: %w", err)
	}
	return nil
}
