package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/crm/config"
	"github.com/shashiranjanraj/crm/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the local disk and, when S3_BUCKET is set, the s3 disk.
// A failing s3 disk is logged and left out.
func Connect(ctx context.Context) {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())

	if config.StorageS3Bucket() == "" {
		return
	}
	d, err := NewS3Disk(ctx, S3Config{
		Bucket:   config.StorageS3Bucket(),
		Region:   config.StorageS3Region(),
		Key:      config.StorageS3Key(),
		Secret:   config.StorageS3Secret(),
		Endpoint: config.StorageS3Endpoint(),
		URL:      config.StorageS3URL(),
	})
	if err != nil {
		logger.Warn("storage: s3 disk disabled", "error", err)
		return
	}
	disks["s3"] = d
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	managerMu.RLock()
	defer managerMu.RUnlock()
	d, ok := disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the STORAGE_DISK disk, falling back to local when that
// disk is not configured.
func Default() Disk {
	if d, err := Use(defaultDisk); err == nil {
		return d
	}
	d, err := Use("local")
	if err != nil {
		return NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}
