// Package archive uploads full-resolution portraits to S3-compatible object
// storage and produces presigned download links. The gallery keeps only the
// display copy; the archive holds the original bytes.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/portraitstudio/internal/netx"
	sc "github.com/dmitrijs2005/portraitstudio/internal/server/config"
)

// presignValidity bounds how long a download link stays usable.
const presignValidity = 15 * time.Minute

// Service wraps the S3 client pair used for uploads and presigned GETs.
type Service struct {
	config *sc.Config
}

func NewService(config *sc.Config) *Service {
	return &Service{config: config}
}

// Enabled reports whether archival is configured at all.
func (s *Service) Enabled() bool {
	return s.config.S3Bucket != "" && s.config.S3BaseEndpoint != ""
}

// StorageKey builds a date-sharded object key for one portrait.
func StorageKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("portraits/%s/%d/%d/%d/%v", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Service) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Upload stores data under a fresh key and returns the key together with a
// presigned GET URL. The upload itself goes through a presigned PUT so the
// SDK is only used for signing.
func (s *Service) Upload(ctx context.Context, userID string, data []byte, contentType string) (string, string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("s3 client: %w", err)
	}

	presign := s3.NewPresignClient(client)
	bucket := s.config.S3Bucket
	key := StorageKey(userID)

	put, err := presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", "", fmt.Errorf("presign put %s: %w", key, err)
	}

	if err := netx.UploadToPresignedURL(ctx, put.URL, data, contentType); err != nil {
		return "", "", fmt.Errorf("upload %s: %w", key, err)
	}

	url, err := s.PresignGet(ctx, key)
	if err != nil {
		return "", "", err
	}
	return key, url, nil
}

// PresignGet returns a time-limited download URL for an archived object.
func (s *Service) PresignGet(ctx context.Context, key string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	presign := s3.NewPresignClient(client)
	bucket := s.config.S3Bucket

	req, err := presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}
