package analysis

import (
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
)

// BlobStore keeps the original report uploads.
type BlobStore interface {
	Put(ctx context.Context, path string, content []byte, contentType string) error
	Remove(ctx context.Context, path string) error
}

type minioStore struct {
	client *minio.Client
	bucket string
}

func NewMinIOStore(client *minio.Client, bucket string) BlobStore {
	return &minioStore{client: client, bucket: bucket}
}

func (s *minioStore) Put(ctx context.Context, path string, content []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *minioStore) Remove(ctx context.Context, path string) error {
	return s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
}
