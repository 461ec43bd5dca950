package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotConfigured is returned by callers when no bucket is configured.
var ErrNotConfigured = errors.New("storage service not configured")

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service stores exported files in remote object storage.
type Service interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
}
