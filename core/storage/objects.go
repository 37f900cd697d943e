package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
)

const (
	// InputsPrefix is the key prefix of uploaded parts and placement tables.
	InputsPrefix = "inputs"
	// ReportsPrefix is the key prefix of generated production workbooks.
	ReportsPrefix = "reports"

	// XLSXContentType is the MIME type of generated workbooks.
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ErrObjectNotFound is returned when a requested key does not exist.
var ErrObjectNotFound = errors.New("storage: object not found")

// ReportKey returns the object key of the workbook exported for a run.
func ReportKey(runID string) string {
	return path.Join(ReportsPrefix, runID+".xlsx")
}

// InputKey returns the object key of an input table uploaded for a run.
func InputKey(runID, name string) string {
	return path.Join(InputsPrefix, runID, path.Base(name))
}

// InputPrefix returns the key prefix under which a run's inputs are stored.
func InputPrefix(runID string) string {
	return path.Join(InputsPrefix, runID) + "/"
}

// EnsureBucket creates bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, c Client, bucket, region string) error {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// Upload stores data under key.
func Upload(ctx context.Context, c Client, bucket, key string, data []byte, contentType string) error {
	_, err := c.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Download reads the whole object at key. A missing key yields ErrObjectNotFound.
func Download(ctx context.Context, c Client, bucket, key string) ([]byte, error) {
	obj, err := c.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapNotFound(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, wrapNotFound(key, err)
	}
	return data, nil
}

// RemovePrefix deletes every object whose key starts with prefix and returns
// how many were removed.
func RemovePrefix(ctx context.Context, c Client, bucket, prefix string) (int, error) {
	removed := 0
	for obj := range c.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return removed, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if err := c.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", obj.Key, err)
		}
		removed++
	}
	return removed, nil
}

// Remove deletes the object at key.
func Remove(ctx context.Context, c Client, bucket, key string) error {
	if err := c.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func wrapNotFound(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" || strings.Contains(err.Error(), "does not exist") {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return fmt.Errorf("failed to download %s: %w", key, err)
}
