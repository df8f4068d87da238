// Package s3 stores blobs in an S3-compatible bucket through minio-go.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"feder/internal/platform/blob"
	"feder/internal/platform/config"
)

// streamPartSize is the multipart chunk for uploads of unknown length. minio-go
// rejects parts below 5 MiB and defaults to 500 MiB buffers otherwise.
const streamPartSize = 5 << 20

type Store struct {
	cl           *minio.Client
	bucketName   string
	objectPrefix string
}

func New(cfg config.BlobS3Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("blob s3: endpoint not set")
	}
	cl, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("blob s3: %w", err)
	}
	return &Store{cl: cl, bucketName: cfg.Bucket, objectPrefix: cfg.Prefix}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("blob s3: bucket lookup: %w", err)
	}
	if ok {
		return nil
	}
	if err := s.cl.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("blob s3: make bucket: %w", err)
	}
	return nil
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	opts := minio.PutObjectOptions{ContentType: "application/octet-stream"}
	if size == blob.UnknownSize {
		opts.PartSize = streamPartSize
	}
	if _, err := s.cl.PutObject(ctx, s.bucketName, s.objectPrefix+key, r, size, opts); err != nil {
		return fmt.Errorf("s3 PutObject: %w", err)
	}
	return nil
}

// Open stats the object first because GetObject defers errors to the first
// read.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.cl.GetObject(ctx, s.bucketName, s.objectPrefix+key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translate(err)
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, translate(err)
	}
	return obj, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.cl.StatObject(ctx, s.bucketName, s.objectPrefix+key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if translate(err) == blob.ErrNoSuchBlob {
		return false, nil
	}
	return false, err
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	var lastErr error
	for _, k := range keys {
		if err := s.cl.RemoveObject(ctx, s.bucketName, s.objectPrefix+k, minio.RemoveObjectOptions{}); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func translate(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" {
		return blob.ErrNoSuchBlob
	}
	return err
}

var _ blob.Store = (*Store)(nil)
