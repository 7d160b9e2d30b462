package client

import (
	"bytes"
	"context"
	"fmt"
	"najia-backend/internal/config"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ObjectStore abstracts the blob storage used for profile photos and
// grocery receipts.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(key string) (string, error)
}

const presignExpiry = time.Hour

type s3StoreImpl struct {
	s3     *s3.S3
	bucket string
}

func NewS3Store(cfg *config.AWS) (ObjectStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &s3StoreImpl{
		s3:     s3.New(sess),
		bucket: cfg.S3Bucket,
	}, nil
}

func (s *s3StoreImpl) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}

func (s *s3StoreImpl) PresignGet(key string) (string, error) {
	req, _ := s.s3.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign get object: %w", err)
	}
	return url, nil
}
