package storage

import (
	"context"
	"io"
	"time"
)

// Package storage is the remote asset store abstraction: an S3-compatible
// object store fronting the binaries (thumbnails, PDFs, cover images) that
// content documents reference. Implementations stream; nothing touches local
// disk.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; set -1 to let the
// implementation chunk as the backend supports.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the remote asset store client.
type Storage interface {
	// Put uploads an object under the given key from the provided reader.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its
	// info. The returned reader honors ctx cancellation, which callers rely
	// on when proxying large downloads.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Callers treat failures on superseded
	// objects as non-fatal.
	Delete(ctx context.Context, key string) error
	// PublicURL returns the stable retrieval URL clients use to fetch the
	// object directly.
	PublicURL(key string) string
	// PresignGet returns a time-limited URL usable without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
