// Package blobtest runs the shared behaviour checks every blob.Store backend
// must pass.
package blobtest

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feder/internal/platform/blob"
)

// Run exercises store. The store must start empty.
func Run(t *testing.T, store blob.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("put then open returns the payload", func(t *testing.T) {
		payload := []byte("%PDF-1.4 attachment body")
		require.NoError(t, store.Put(ctx, "attachments/ab/abcdef", bytes.NewReader(payload), int64(len(payload))))

		rc, err := store.Open(ctx, "attachments/ab/abcdef")
		require.NoError(t, err)
		defer rc.Close()
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("unknown size is accepted", func(t *testing.T) {
		payload := bytes.Repeat([]byte("x"), 4096)
		require.NoError(t, store.Put(ctx, "eml/streamed", bytes.NewReader(payload), blob.UnknownSize))
		rc, err := store.Open(ctx, "eml/streamed")
		require.NoError(t, err)
		defer rc.Close()
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "eml/over", bytes.NewReader([]byte("one")), 3))
		require.NoError(t, store.Put(ctx, "eml/over", bytes.NewReader([]byte("two")), 3))
		rc, err := store.Open(ctx, "eml/over")
		require.NoError(t, err)
		defer rc.Close()
		got, _ := io.ReadAll(rc)
		assert.Equal(t, "two", string(got))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Open(ctx, "eml/missing")
		assert.ErrorIs(t, err, blob.ErrNoSuchBlob)
		ok, err := store.Exists(ctx, "eml/missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "eml/gone", bytes.NewReader([]byte("x")), 1))
		require.NoError(t, store.Delete(ctx, "eml/gone"))
		require.NoError(t, store.Delete(ctx, "eml/gone"))
		ok, err := store.Exists(ctx, "eml/gone")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
