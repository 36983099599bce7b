// Package storage abstracts where generated report files are archived.
//
// Two drivers are available:
//   - "local"  — local filesystem (default)
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disks, _ := storage.Connect()
//	disks.Default().Put(ctx, "reports/sales-2025-01.pdf", data)
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/uyumazulvi/eticaret-stok-yonetim/config"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/logger"
)

// Disk is the driver interface for archived report files.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// Files lists the file paths directly inside directory.
	Files(ctx context.Context, directory string) ([]string, error)

	// LastModified returns the file's last-modified time.
	LastModified(ctx context.Context, path string) (time.Time, error)

	// URL returns the public URL for path.
	URL(path string) string
}

// Manager holds the configured disks and knows which one is the default.
type Manager struct {
	disks       map[string]Disk
	defaultName string
}

// Connect boots the storage manager from configuration. The local disk is
// always available; the S3 disk is added when S3_BUCKET is set.
func Connect() (*Manager, error) {
	m := &Manager{
		disks:       map[string]Disk{"local": newLocalDisk()},
		defaultName: config.Get("STORAGE_DISK", "local"),
	}

	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.disks["s3"] = d
		}
	}

	if _, ok := m.disks[m.defaultName]; !ok {
		return nil, fmt.Errorf("storage: default disk %q is not configured", m.defaultName)
	}
	return m, nil
}

// Default returns the disk named by STORAGE_DISK.
func (m *Manager) Default() Disk {
	return m.disks[m.defaultName]
}

// Use returns the named disk, or nil when it is not configured.
func (m *Manager) Use(name string) Disk {
	return m.disks[name]
}
