// Package storage is the filesystem abstraction the report job archives to.
//
// Two drivers are available:
//   - "local"  - local filesystem (default)
//   - "s3"     - S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	storage.Connect()
//	disk := storage.Default()
//	disk.Put(ctx, "reports/crm-report-20250106-060000.txt", data)
package storage

import (
	"context"
)

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// Files lists the files directly inside directory, as disk paths.
	Files(ctx context.Context, directory string) ([]string, error)
}
