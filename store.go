package main

import "context"

// BlobStore persists one JSON blob per collection kind. Every Save replaces
// the previous blob for that kind; Load on a kind that was never saved
// returns (nil, nil).
type BlobStore interface {
	Load(ctx context.Context, kind string) ([]byte, error)
	Save(ctx context.Context, kind string, blob []byte) error
}

// storageKey namespaces collection blobs inside a shared key-value store.
func storageKey(kind string) string {
	return "zenkeep:" + kind
}
