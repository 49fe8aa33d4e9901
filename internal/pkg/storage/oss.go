package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStorage stores files in an Alibaba Cloud OSS bucket.
type OSSStorage struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
	publicBase string
}

func NewOSSStorage(endpoint, accessKey, secretKey, bucketName, publicBase string) (*OSSStorage, error) {
	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create oss client: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open oss bucket: %w", err)
	}
	return &OSSStorage{
		bucket:     bkt,
		endpoint:   endpoint,
		bucketName: bucketName,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

func (s *OSSStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	key := strings.TrimLeft(path, "/")
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}
	if err := s.bucket.PutObject(key, file, opts...); err != nil {
		return "", fmt.Errorf("failed to put oss object %s: %w", key, err)
	}
	return key, nil
}

func (s *OSSStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	body, err := s.bucket.GetObject(path, oss.WithContext(ctx))
	if err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 404 {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get oss object %s: %w", path, err)
	}
	return body, nil
}

func (s *OSSStorage) Delete(ctx context.Context, path string) error {
	if err := s.bucket.DeleteObject(path, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete oss object %s: %w", path, err)
	}
	return nil
}

func (s *OSSStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	if expiry > 0 {
		signed, err := s.bucket.SignURL(path, oss.HTTPGet, int64(expiry.Seconds()), oss.WithContext(ctx))
		if err != nil {
			return "", fmt.Errorf("failed to sign oss object %s: %w", path, err)
		}
		return signed, nil
	}
	return s.publicURL(path), nil
}

func (s *OSSStorage) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := s.bucket.IsObjectExist(path, oss.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to stat oss object %s: %w", path, err)
	}
	return ok, nil
}

func (s *OSSStorage) publicURL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, end, key)
}
