// Package avatar stores profile pictures in S3-compatible object storage.
package avatar

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mrlokans/chatauth/internal/config"
)

// PutObjectAPI is the subset of *s3.Client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes avatars to a bucket and returns their public URL.
type S3Uploader struct {
	client        PutObjectAPI
	bucket        string
	region        string
	endpoint      string
	publicBaseURL string
	maxBytes      int64
}

// NewS3Uploader builds an S3 client from cfg. Static credentials are used
// when both keys are set; otherwise the default AWS credential chain applies.
func NewS3Uploader(ctx context.Context, cfg config.Avatar) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3UploaderWithClient(client, cfg), nil
}

// NewS3UploaderWithClient wraps an existing client.
func NewS3UploaderWithClient(client PutObjectAPI, cfg config.Avatar) *S3Uploader {
	return &S3Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      strings.TrimRight(cfg.Endpoint, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxBytes:      cfg.MaxBytes,
	}
}

// Upload decodes payload and stores it under a fresh key for userID.
// Payload problems are reported as ErrInvalidImage.
func (u *S3Uploader) Upload(ctx context.Context, userID, payload string) (string, error) {
	img, err := DecodePayload(payload, u.maxBytes)
	if err != nil {
		return "", err
	}

	key := ObjectKey(userID, img.Extension)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentLength: aws.Int64(int64(len(img.Data))),
		ContentType:   aws.String(img.ContentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return u.PublicURL(key), nil
}

// ObjectKey returns a unique key; objects are never overwritten.
func ObjectKey(userID, ext string) string {
	return fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
}

// PublicURL resolves key against, in order: the configured public base
// URL, the custom endpoint (path style), or the AWS virtual-hosted URL.
func (u *S3Uploader) PublicURL(key string) string {
	switch {
	case u.publicBaseURL != "":
		return u.publicBaseURL + "/" + key
	case u.endpoint != "":
		return u.endpoint + "/" + u.bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
	}
}
