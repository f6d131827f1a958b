package cloudflare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"propsite_backend/pkg/config"
)

var ErrNotConfigured = errors.New("r2 storage is not configured")

// Uploader stores listing photos in an R2 bucket served from PublicURL.
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
	now       func() time.Time
}

type UploadResult struct {
	URL string
	Key string
}

func getS3Client(ctx context.Context, cfg config.R2Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

// NewUploader returns ErrNotConfigured unless every R2 setting is present.
func NewUploader(ctx context.Context, cfg config.R2Config) (*Uploader, error) {
	if cfg.AccountID == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" || cfg.PublicURL == "" {
		return nil, ErrNotConfigured
	}

	client, err := getS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Uploader{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		now:       time.Now,
	}, nil
}

// ObjectKey builds listings/<slug>/<unixnano>-<uuid><ext>.
func (u *Uploader) ObjectKey(listingSlug, ext string) string {
	name := fmt.Sprintf("%d-%s%s", u.now().UnixNano(), uuid.NewString(), ext)
	return path.Join("listings", slug.Make(listingSlug), name)
}

func (u *Uploader) UploadListingImage(ctx context.Context, listingSlug, ext, contentType string, body io.Reader) (UploadResult, error) {
	key := u.ObjectKey(listingSlug, ext)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("could not upload file to R2: %w", err)
	}

	return UploadResult{
		URL: u.publicURL + "/" + key,
		Key: key,
	}, nil
}

// Owns reports whether url points at an object in this bucket.
func (u *Uploader) Owns(url string) bool {
	return u.objectKeyFromURL(url) != ""
}

func (u *Uploader) DeleteImage(ctx context.Context, url string) error {
	key := u.objectKeyFromURL(url)
	if key == "" {
		return fmt.Errorf("%s is not served from %s", url, u.publicURL)
	}

	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("could not delete file from R2: %w", err)
	}

	return nil
}

func (u *Uploader) objectKeyFromURL(url string) string {
	prefix := u.publicURL + "/"
	if u.publicURL == "" || !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
