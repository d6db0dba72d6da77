// Package storage is the durable key-value surface the portfolio persists to.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrClosed = errors.New("storage closed")

// KV saves and loads string values by key.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Open returns the KV for driver. path is ignored by the memory driver.
func Open(driver, path string) (KV, error) {
	switch driver {
	case "sqlite":
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		return NewSQLite(path)
	case "file":
		return NewFile(path)
	case "memory", "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
