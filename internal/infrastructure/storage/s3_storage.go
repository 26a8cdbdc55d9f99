package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage stores blobs in any S3-compatible bucket. The credential is
// resolved on every call; the client is rebuilt only when it changes.
type S3Storage struct {
	bucketName    string
	region        string
	endpoint      string
	publicBaseURL string
	credential    func() string

	mu         sync.Mutex
	client     *s3.Client
	clientCred string
}

func NewS3Storage(cfg config.BlobConfig, credential func() string) *S3Storage {
	return &S3Storage{
		bucketName:    cfg.Bucket,
		region:        cfg.Region,
		endpoint:      strings.TrimRight(cfg.Endpoint, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		credential:    credential,
	}
}

var _ repositories.BlobStore = (*S3Storage)(nil)

func (s *S3Storage) clientFor(ctx context.Context) (*s3.Client, error) {
	cred := ""
	if s.credential != nil {
		cred = strings.TrimSpace(s.credential())
	}
	if cred == "" {
		return nil, fmt.Errorf("%w: no credential set", repositories.ErrStorageNotConfigured)
	}
	if s.bucketName == "" {
		return nil, fmt.Errorf("%w: BLOB_BUCKET is empty", repositories.ErrStorageNotConfigured)
	}
	accessKey, secretKey, ok := strings.Cut(cred, ":")
	if !ok || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("%w: credential must be ACCESS_KEY_ID:SECRET_ACCESS_KEY", repositories.ErrStorageNotConfigured)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil && s.clientCred == cred {
		return s.client, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.endpoint != "" {
			o.BaseEndpoint = aws.String(s.endpoint)
			o.UsePathStyle = true
		}
	})
	s.client = client
	s.clientCred = cred
	return client, nil
}

func (s *S3Storage) Put(ctx context.Context, obj repositories.BlobObject) (string, error) {
	client, err := s.clientFor(ctx)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucketName),
		Key:          aws.String(obj.Key),
		Body:         obj.Body,
		ContentType:  aws.String(obj.ContentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}
	if obj.Size > 0 {
		input.ContentLength = aws.Int64(obj.Size)
	}
	if _, err := client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("S3 upload failed: %w", err)
	}

	return s.publicURL(obj.Key), nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	if !s.Owns(url) {
		return nil
	}
	client, err := s.clientFor(ctx)
	if err != nil {
		return err
	}
	key := strings.TrimPrefix(url, s.urlPrefix())
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("S3 delete failed: %w", err)
	}
	return nil
}

func (s *S3Storage) Owns(url string) bool {
	return s.bucketName != "" && strings.HasPrefix(url, s.urlPrefix())
}

func (s *S3Storage) urlPrefix() string {
	switch {
	case s.publicBaseURL != "":
		return s.publicBaseURL + "/"
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/", s.endpoint, s.bucketName)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucketName, s.region)
	}
}

func (s *S3Storage) publicURL(key string) string {
	return s.urlPrefix() + key
}
