// Package objectstore implements the file system port for s3:// locators on
// any S3-compatible object store. Keys are addressed as s3://bucket/key and
// "/" separated prefixes are treated as directories.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
	"github.com/custodia-labs/pdfshelf/internal/logger"
)

// Ensure FileSystem implements the interface.
var _ driven.SchemeFileSystem = (*FileSystem)(nil)

// API is the subset of the S3 client used by the adapter.
type API interface {
	s3.ListObjectsV2APIClient
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Config holds the connection settings for the object store.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// FileSystem reads and deletes objects in an S3-compatible store.
type FileSystem struct {
	client API
}

// New creates an adapter from connection settings. Static credentials are
// used when both keys are set, otherwise the default AWS chain applies.
func New(ctx context.Context, cfg Config) (*FileSystem, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return NewWithClient(client), nil
}

// NewWithClient creates an adapter over an existing client.
func NewWithClient(client API) *FileSystem {
	return &FileSystem{client: client}
}

// Schemes returns the schemes handled by this adapter.
func (f *FileSystem) Schemes() []string {
	return []string{domain.SchemeS3}
}

// List returns the objects and common prefixes directly under dir.
func (f *FileSystem) List(ctx context.Context, dir domain.Locator) ([]domain.Entry, error) {
	bucket, key, err := split(dir)
	if err != nil {
		return nil, err
	}
	prefix := dirPrefix(key)

	var entries []domain.Entry
	pages := s3.NewListObjectsV2Paginator(f.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return entries, wrapError(dir, err)
		}
		for _, p := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(p.Prefix), prefix), "/")
			if name == "" {
				continue
			}
			entries = append(entries, domain.Entry{
				Kind:    domain.EntryDirectory,
				Locator: locator(bucket, aws.ToString(p.Prefix)),
				Name:    name,
			})
		}
		for _, obj := range page.Contents {
			objKey := aws.ToString(obj.Key)
			if objKey == prefix || strings.HasSuffix(objKey, "/") {
				continue
			}
			entries = append(entries, domain.Entry{
				Kind:    domain.EntryFile,
				Locator: locator(bucket, objKey),
				Name:    strings.TrimPrefix(objKey, prefix),
				Size:    aws.ToInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
			})
		}
	}
	return entries, nil
}

// Stat describes an object, or a prefix when no object has the exact key.
func (f *FileSystem) Stat(ctx context.Context, loc domain.Locator) (*domain.Entry, error) {
	bucket, key, err := split(loc)
	if err != nil {
		return nil, err
	}

	if key != "" && !strings.HasSuffix(key, "/") {
		head, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err == nil {
			return &domain.Entry{
				Kind:    domain.EntryFile,
				Locator: loc,
				Name:    loc.Base(),
				Size:    aws.ToInt64(head.ContentLength),
				ModTime: aws.ToTime(head.LastModified),
			}, nil
		}
		if !isNotFound(err) {
			return nil, wrapError(loc, err)
		}
	}

	prefix := dirPrefix(key)
	out, err := f.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return nil, wrapError(loc, err)
	}
	if prefix != "" && len(out.Contents) == 0 && len(out.CommonPrefixes) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, loc)
	}
	return &domain.Entry{
		Kind:    domain.EntryDirectory,
		Locator: loc,
		Name:    loc.Base(),
	}, nil
}

// CopyToPath downloads src into the local file dst.
func (f *FileSystem) CopyToPath(ctx context.Context, src domain.Locator, dst string) error {
	bucket, key, err := split(src)
	if err != nil {
		return err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapError(src, err)
	}
	defer out.Body.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}

	tmp := dst + ".part"
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	n, err := io.Copy(file, out.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("download %s: %w", src, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("download %s: %w", src, err)
	}

	logger.Debug("downloaded %s (%d bytes) to %s", src, n, dst)
	return nil
}

// Remove deletes the object at loc. S3 deletes are idempotent, so
// existence is checked first to report ErrNotFound.
func (f *FileSystem) Remove(ctx context.Context, loc domain.Locator) error {
	bucket, key, err := split(loc)
	if err != nil {
		return err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, loc)
	}

	if _, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return wrapError(loc, err)
	}

	if _, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return wrapError(loc, err)
	}
	return nil
}

// split parses s3://bucket/key.
func split(loc domain.Locator) (bucket, key string, err error) {
	if loc.Scheme() != domain.SchemeS3 {
		return "", "", fmt.Errorf("%w: %q", domain.ErrUnsupportedScheme, loc.Scheme())
	}
	bucket, key, _ = strings.Cut(loc.Opaque(), "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: missing bucket in %s", domain.ErrInvalidInput, loc)
	}
	return bucket, key, nil
}

func dirPrefix(key string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return key
	}
	return key + "/"
}

func locator(bucket, key string) domain.Locator {
	return domain.Locator(domain.SchemeS3 + "://" + bucket + "/" + strings.TrimSuffix(key, "/"))
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey) || errors.As(err, &noSuchBucket)
}

func wrapError(loc domain.Locator, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, loc)
	}
	return fmt.Errorf("%s: %w", loc, err)
}
