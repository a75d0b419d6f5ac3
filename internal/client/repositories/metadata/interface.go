// Package metadata is the local key/value store of the client. It plays the
// role browser local storage plays for a web front-end.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value stored under key; ok is false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
