package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by operations that must target an existing record
var ErrNotFound = errors.New("record not found")

// ErrDuplicateID is returned when a record with the same id already exists
var ErrDuplicateID = errors.New("duplicate id")

// Backend is a durable key/value blob store. Every entity family is stored
// as one JSON document under a fixed key, so Set must replace the whole
// value atomically.
type Backend interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
