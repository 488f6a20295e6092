package repo

import "context"

// KeyValueRepository is a string-keyed slot store. The catalog keeps its
// whole product list as one value under one key.
type KeyValueRepository interface {
	// Get returns the value stored at key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set overwrites the value at key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
