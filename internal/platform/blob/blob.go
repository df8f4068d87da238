// Package blob defines the content store for raw EML files and attachment
// payloads. Keys are slash separated paths chosen by the caller.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrNoSuchBlob is returned by Open for unknown keys.
var ErrNoSuchBlob = errors.New("blob: no such blob")

// UnknownSize may be passed to Put when the payload length is not known.
const UnknownSize int64 = -1

type Store interface {
	// Put writes the full contents of r under key, replacing any previous blob.
	Put(ctx context.Context, key string, r io.Reader, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}
