package storage

import (
	"bytes"
	"context"
	"fmt"

	"apartment-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// ReportStore uploads generated reports to an S3-compatible bucket
// (AWS S3, Cloudflare R2, MinIO).
type ReportStore struct {
	client *s3.Client
	bucket string
}

// NewReportStore returns nil when no bucket is configured.
func NewReportStore(ctx context.Context, cfg *config.Config) (*ReportStore, error) {
	rc := cfg.Reports
	if rc.Bucket == "" {
		zap.L().Info("[Storage] No report bucket configured, archiving disabled")
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(rc.Region),
	}
	if rc.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(rc.AccessKey, rc.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("configure report storage: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if rc.Endpoint != "" {
			o.BaseEndpoint = aws.String(rc.Endpoint)
			o.UsePathStyle = true
		}
	})

	zap.L().Info("[Storage] Report archive enabled", zap.String("bucket", rc.Bucket))
	return &ReportStore{client: client, bucket: rc.Bucket}, nil
}

// Upload writes body under key, replacing any existing object
func (s *ReportStore) Upload(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
