package ports

import "context"

// AssetStore keeps catalog images outside the database.
type AssetStore interface {
	// Put stores data under key and returns the public reference to record on the item.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Remove releases the asset behind a reference previously returned by Put.
	Remove(ctx context.Context, ref string) error
}
