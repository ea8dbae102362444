// Package storage provides the blob store abstraction for resume files.
// Production uses the local-disk implementation; cloud object storage can be
// swapped in behind the same interface.
package storage

import (
	"context"

	"github.com/google/uuid"
)

// Store is the byte storage collaborator for resume files. Put returns an
// opaque locator that Get and Delete accept.
type Store interface {
	Put(ctx context.Context, ownerID uuid.UUID, filename string, content []byte) (string, error)
	Get(ctx context.Context, locator string) ([]byte, error)
	Delete(ctx context.Context, locator string) (bool, error)
}
