// Package blob stores experiment files under slash separated keys in memory,
// on the local filesystem or in an S3 bucket.
package blob

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Driver names a Store implementation.
type Driver string

const (
	DriverMemory     Driver = "memory"
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
)

var (
	ErrNotFound      = errors.New("blob not found")
	ErrInvalidKey    = errors.New("invalid blob key")
	ErrUnknownDriver = errors.New("unknown blob driver")
)

// Store is a flat key/value store of files. Put overwrites.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	// Get fails with ErrNotFound when key is absent. The caller closes the
	// returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the keys starting with prefix in ascending order.
	List(ctx context.Context, prefix string) ([]string, error)
	// Delete fails with ErrNotFound when key is absent.
	Delete(ctx context.Context, key string) error
}

// Config selects and configures a driver.
type Config struct {
	Driver Driver
	Root   string // filesystem root
	S3     S3Config
}

// Open returns the store cfg.Driver names.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFilesystem, "":
		return NewFilesystem(cfg.Root)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, errors.Wrapf(ErrUnknownDriver, "%q", cfg.Driver)
	}
}

// cleanKey rejects keys that are empty, absolute or escape the store root.
func cleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.Wrap(ErrInvalidKey, "empty key")
	}

	if strings.HasPrefix(key, "/") {
		return "", errors.Wrapf(ErrInvalidKey, "absolute key %s", key)
	}

	clean := path.Clean(key)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errors.Wrapf(ErrInvalidKey, "key %s escapes the store", key)
	}

	return clean, nil
}
