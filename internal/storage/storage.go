// Package storage wraps the S3-compatible object store behind a small
// interface so services can be exercised with fakes in tests.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the subset of object-store operations the content pipeline
// needs: presigned reads, raw downloads, and idempotent uploads.
type ObjectStore interface {
	// PresignGetURL mints a time-limited GET URL for the exact bucket/key.
	PresignGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	// Download returns the full byte content at bucket/key.
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	// Upload writes data to bucket/key, overwriting any prior object.
	Upload(ctx context.Context, bucket, key, contentType string, data []byte) error
	// PublicURL resolves the non-expiring URL for an object in a public bucket.
	PublicURL(bucket, key string) string
}

type s3Store struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	baseURL       string
}

// NewS3Store creates an ObjectStore backed by the given S3 client. baseURL
// is the store's public endpoint, used to resolve public object URLs.
func NewS3Store(client *s3.Client, baseURL string) ObjectStore {
	return &s3Store{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
}

func (s *s3Store) PresignGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	resp, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return resp.URL, nil
}

func (s *s3Store) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return data, nil
}

func (s *s3Store) Upload(ctx context.Context, bucket, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *s3Store) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, strings.TrimLeft(key, "/"))
}
