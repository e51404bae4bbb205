package storage

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ldagroup/timetracking/internal/httperr"
)

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether enough settings are present to talk to a bucket.
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store builds a client from static credentials. A custom endpoint
// (MinIO, R2 and friends) switches to path style addressing.
func NewS3Store(cfg S3Config) *S3Store {
	region := cfg.Region
	if region == "" {
		region = "eu-west-2"
	}

	opts := s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}

	baseURL := "https://" + cfg.Bucket + ".s3." + region + ".amazonaws.com"
	if cfg.Endpoint != "" {
		endpoint := strings.TrimRight(cfg.Endpoint, "/")
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
		baseURL = endpoint + "/" + cfg.Bucket
	}

	return &S3Store{
		client:  s3.New(opts),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}
}

func (s *S3Store) URL(key string) string {
	return s.baseURL + "/" + key
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// Disabled is used when no bucket is configured.
type Disabled struct{}

func (Disabled) Put(context.Context, string, string, []byte) (string, error) {
	return "", httperr.ErrValidation("photo_storage_disabled")
}

func (Disabled) Delete(context.Context, string) error {
	return nil
}
