package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobStore is the boundary contract the user and staff surfaces depend on
// for photo assets. Upload returns a public URL for the stored object.
type BlobStore interface {
	Upload(ctx context.Context, bucket, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, bucket, key string) (bool, error)
}

type S3Store struct {
	client        *s3.Client
	region        string
	defaultBucket string
	publicBaseURL string
}

type S3Config struct {
	Region        string
	AccessKey     string
	SecretKey     string
	DefaultBucket string
	PublicBaseURL string
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load blob storage config: %w", err)
	}

	return &S3Store{
		client:        s3.NewFromConfig(awsCfg),
		region:        cfg.Region,
		defaultBucket: cfg.DefaultBucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, bucket, key string, body []byte, contentType string) (string, error) {
	if bucket == "" {
		bucket = s.defaultBucket
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}

	return s.publicURL(bucket, key), nil
}

func (s *S3Store) Delete(ctx context.Context, bucket, key string) (bool, error) {
	if bucket == "" {
		bucket = s.defaultBucket
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

func (s *S3Store) publicURL(bucket, key string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.publicBaseURL, "/"), bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.region, key)
}
