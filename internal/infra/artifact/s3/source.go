// Package s3 implements the artifact source over an S3-compatible backend
// (AWS S3 or MinIO). Minimal surface area: one bucket, one object key.
package s3

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"fitrecon/internal/artifact/core"
	"fitrecon/pkg/domain"
)

// DefaultKey is the object key the merge job publishes under.
const DefaultKey = "fft_combined.json"

// Source reads the merge artifact from a single S3 object.
type Source struct {
	client *s3.Client
	bucket string
	key    string
}

// Config holds explicit construction parameters (mostly for tests). For
// prod we rely primarily on environment variables.
type Config struct {
	Region    string
	Bucket    string
	Key       string
	Endpoint  string // optional; enables custom endpoint (e.g. MinIO)
	PathStyle bool
}

// Environment variables:
//
//	FITRECON_ARTIFACT_DRIVER=s3
//	FITRECON_ARTIFACT_S3_BUCKET=<bucket> (required)
//	FITRECON_ARTIFACT_S3_KEY=<object key> (default fft_combined.json)
//	FITRECON_ARTIFACT_S3_REGION=<region> (default us-east-1)
//	FITRECON_ARTIFACT_S3_ENDPOINT=<url> (optional, for MinIO)
//	FITRECON_ARTIFACT_S3_PATH_STYLE=true|false (default false)
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

// New creates an S3 artifact source from Config.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	return &Source{client: client, bucket: cfg.Bucket, key: key}, nil
}

// OpenFromEnv constructs an S3 artifact source from process environment.
func OpenFromEnv(ctx context.Context) (*Source, error) {
	bucket := os.Getenv("FITRECON_ARTIFACT_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("FITRECON_ARTIFACT_S3_BUCKET required for s3 driver")
	}
	cfg := Config{
		Bucket:    bucket,
		Key:       os.Getenv("FITRECON_ARTIFACT_S3_KEY"),
		Region:    os.Getenv("FITRECON_ARTIFACT_S3_REGION"),
		Endpoint:  os.Getenv("FITRECON_ARTIFACT_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("FITRECON_ARTIFACT_S3_PATH_STYLE"), "true"),
	}
	return New(ctx, cfg)
}

func (s *Source) Driver() core.Driver { return core.DriverS3 }

// Fetch downloads and decodes the artifact object. A missing object maps to
// core.ErrNotFound.
func (s *Source) Fetch(ctx context.Context) ([]domain.Participant, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", core.ErrNotFound, s.bucket, s.key)
		}
		return nil, fmt.Errorf("get artifact object: %w", err)
	}
	defer func() { _ = out.Body.Close() }()
	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read artifact object: %w", err)
	}
	var records []domain.Participant
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decode artifact s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return records, nil
}

// Put uploads records as the artifact object, replacing any previous one.
func (s *Source) Put(ctx context.Context, records []domain.Participant) error {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	contentType := "application/json"
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &s.key,
		Body:        strings.NewReader(string(b)),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("put artifact object: %w", err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	return errors.As(err, &nf)
}
