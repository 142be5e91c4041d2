package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store хранит файлы в S3-совместимом бакете с публичным базовым URL.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// S3Config - настройки S3 хранилища.
type S3Config struct {
	Region        string
	Bucket        string
	PublicBaseURL string
}

// NewS3Store создаёт хранилище поверх AWS SDK.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Region == "" || cfg.Bucket == "" || cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("s3 config incomplete: region, bucket and public base URL are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return &S3Store{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload загружает объект и возвращает его публичный URL.
func (s *S3Store) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	key = strings.TrimLeft(key, "/")

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        r,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return s.publicBaseURL + "/" + key, nil
}

func (s *S3Store) String() string { return fmt.Sprintf("s3(%s)", s.bucket) }
