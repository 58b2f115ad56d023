package gallerystore

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/funzone-site/internal/domain/gallery"
)

const defaultPresignTTL = 15 * time.Minute

// S3Options configures an S3 compatible bucket holding gallery images.
type S3Options struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	Region     string
	PresignTTL time.Duration
}

// S3Resolver presigns site-relative image paths as bucket object keys.
type S3Resolver struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
	logger *slog.Logger
}

// NewS3Resolver constructs the resolver.
func NewS3Resolver(opts S3Options, logger *slog.Logger) (*S3Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Bucket == "" {
		return nil, fmt.Errorf("gallery bucket is required")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	client, err := minio.New(sanitizeEndpoint(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       strings.HasPrefix(strings.ToLower(opts.Endpoint), "https"),
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	ttl := opts.PresignTTL
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}
	return &S3Resolver{
		client: client,
		bucket: opts.Bucket,
		ttl:    ttl,
		logger: logger.With("component", "gallerystore.s3"),
	}, nil
}

func (r *S3Resolver) Resolve(ctx context.Context, src string) (string, error) {
	if isAbsolute(src) {
		return src, nil
	}
	key := strings.TrimLeft(src, "/")
	if key == "" {
		return "", fmt.Errorf("empty image key")
	}
	u, err := r.client.PresignedGetObject(ctx, r.bucket, key, r.ttl, url.Values{})
	if err != nil {
		r.logger.Warn("presign gallery image failed", "key", key, "error", err)
		return "", err
	}
	return u.String(), nil
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	host, _, _ := strings.Cut(raw, "/")
	return host
}

var _ gallery.URLResolver = (*S3Resolver)(nil)
