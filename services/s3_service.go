package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appConfig "github.com/Azeezfasasi/lasu-mba-cloth/config"
)

// maxDeleteBatch is the per-request key limit of DeleteObjects
const maxDeleteBatch = 1000

// S3Interface defines the bucket operations the media client needs
type S3Interface interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
	DeleteObjects(ctx context.Context, keys []string) error
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PublicURL(key string) string
}

// S3Service talks to the S3-compatible bucket hosting cloth images
type S3Service struct {
	client        *s3.Client
	presign       *s3.PresignClient
	bucket        string
	region        string
	endpoint      string
	publicBaseURL string
}

// NewS3Service builds a client from the media settings.
// A custom endpoint switches to path-style addressing for S3-compatible hosts.
func NewS3Service(ctx context.Context, cfg appConfig.MediaConfig) (*S3Service, error) {
	if cfg.CloudName == "" {
		return nil, errors.New("MEDIA_CLOUD_NAME is required for media uploads")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.APIKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.APIKey, cfg.APISecret, ""),
		))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Service{
		client:        client,
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.CloudName,
		region:        cfg.Region,
		endpoint:      strings.TrimRight(cfg.Endpoint, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// PutObject uploads body under key
func (s *S3Service) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// DeleteObjects removes keys in batches; per-key failures are reported together
func (s *S3Service) DeleteObjects(ctx context.Context, keys []string) error {
	var failed []string
	for start := 0; start < len(keys); start += maxDeleteBatch {
		end := min(start+maxDeleteBatch, len(keys))
		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}

		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("failed to delete files from S3: %w", err)
		}
		for _, e := range out.Errors {
			failed = append(failed, fmt.Sprintf("%s (%s)", aws.ToString(e.Key), aws.ToString(e.Message)))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to delete %d file(s) from S3: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

// PresignPut returns a URL the browser can PUT the object to directly
func (s *S3Service) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	request, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return request.URL, nil
}

// PublicURL is where a stored object can be read from
func (s *S3Service) PublicURL(key string) string {
	switch {
	case s.publicBaseURL != "":
		return s.publicBaseURL + "/" + key
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
}
