// Package artifact persists published datasets as flat JSON files.
package artifact

import (
	"context"
	"errors"
)

// ErrNotExist indicates a missing artifact.
var ErrNotExist = errors.New("artifact: does not exist")

// Store reads and writes named artifacts.
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
}
