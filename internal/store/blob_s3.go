package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
)

// Replaced in tests.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// s3API is the subset of *s3.Client the picture storage uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3PictureStorage is the S3 implementation of [PictureStorage]. Objects are
// written with the public-read canned ACL so their URLs can be handed to
// clients directly.
type s3PictureStorage struct {
	client  s3API
	bucket  string
	baseURL string
	logger  *logger.Logger
}

// NewS3PictureStorage builds an S3 client from cfg. Static credentials are
// used when both keys are set, otherwise the default AWS credential chain.
// A custom Endpoint (MinIO, localstack) switches to path-style addressing.
func NewS3PictureStorage(ctx context.Context, cfg config.Blob, log *logger.Logger) (PictureStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3PictureStorage").Msg("error loading AWS config")
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().Str("bucket", cfg.Bucket).Str("region", cfg.Region).Msg("S3 picture storage created")

	return newS3PictureStorage(client, cfg, log), nil
}

func newS3PictureStorage(client s3API, cfg config.Blob, log *logger.Logger) *s3PictureStorage {
	return &s3PictureStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: s3BaseURL(cfg),
		logger:  log,
	}
}

// s3BaseURL returns the URL prefix objects are reachable under:
// PublicURL if set, the path-style endpoint URL for custom endpoints, or the
// virtual-hosted AWS URL.
func s3BaseURL(cfg config.Blob) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Put implements [PictureStorage].
func (s *s3PictureStorage) Put(ctx context.Context, key string, picture models.Picture) (string, error) {
	log := logger.FromContext(ctx)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(picture.Data),
		ContentLength: aws.Int64(int64(len(picture.Data))),
		ACL:           types.ObjectCannedACLPublicRead,
	}
	if picture.ContentType != "" {
		input.ContentType = aws.String(picture.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Err(err).Str("func", "*s3PictureStorage.Put").Str("key", key).Msg("error uploading picture")
		return "", fmt.Errorf("%w: %w", ErrUploadingPicture, err)
	}

	return s.baseURL + "/" + url.PathEscape(key), nil
}

// Get implements [PictureStorage].
func (s *s3PictureStorage) Get(ctx context.Context, key string) (models.Picture, error) {
	log := logger.FromContext(ctx)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return models.Picture{}, ErrPictureNotFound
		}
		log.Err(err).Str("func", "*s3PictureStorage.Get").Str("key", key).Msg("error downloading picture")
		return models.Picture{}, fmt.Errorf("%w: %w", ErrReadingPicture, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		log.Err(err).Str("func", "*s3PictureStorage.Get").Str("key", key).Msg("error reading picture body")
		return models.Picture{}, fmt.Errorf("%w: %w", ErrReadingPicture, err)
	}

	return models.Picture{
		FileName:    key,
		ContentType: aws.ToString(out.ContentType),
		Data:        data,
	}, nil
}

func isS3NotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var responseErr *awshttp.ResponseError
	return errors.As(err, &responseErr) && responseErr.HTTPStatusCode() == http.StatusNotFound
}
