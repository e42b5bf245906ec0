// Package storage provides the durable key/value storage a project is persisted to.
package storage

import (
	"context"
	"errors"
)

//go:generate mockgen -source=storage.go -destination=../mocks/storage/mock_storage.go -package=mock_storage

// Keys under which the three project collections are persisted.
const (
	SubplotsKey    = "storybuilder_subplots"
	NodesKey       = "storybuilder_nodes"
	ThreadOrderKey = "storybuilder_threadOrder"
)

// ErrNotFound is returned by Get when nothing is stored under a key.
var ErrNotFound = errors.New("storage: key not found")

// ProjectKeys returns every key a project writes, in a stable order.
func ProjectKeys() []string {
	return []string{SubplotsKey, NodesKey, ThreadOrderKey}
}

// Storage stores opaque values by key.
type Storage interface {
	// Get returns the stored value, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
