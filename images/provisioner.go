// Package images seeds the property image bucket with sample images and
// removes it again when the stack is deleted.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// maxDeleteBatch is the DeleteObjects limit per request.
const maxDeleteBatch = 1000

// ErrDeleteObjects is returned when S3 reports per-object delete failures.
var ErrDeleteObjects = errors.New("images: failed to delete objects")

// S3API is the subset of the S3 client used by Provisioner.
// *s3.Client satisfies it.
type S3API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
}

// Provisioner populates and tears down a single bucket.
type Provisioner struct {
	client S3API
	bucket string
	logger *slog.Logger
}

// NewProvisioner creates a Provisioner for bucket.
func NewProvisioner(client S3API, bucket string, logger *slog.Logger) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provisioner{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Seed uploads every regular file in fsys to the bucket, keyed by its base
// name. It returns the number of objects written.
func (p *Provisioner) Seed(ctx context.Context, fsys fs.FS) (int, error) {
	count := 0
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		key := path.Base(name)
		input := &s3.PutObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(data),
		}
		if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
			input.ContentType = aws.String(ct)
		}
		if _, err := p.client.PutObject(ctx, input); err != nil {
			return fmt.Errorf("put %s: %w", key, err)
		}

		p.logger.Debug("uploaded object", "bucket", p.bucket, "key", key, "size", len(data))
		count++
		return nil
	})
	if err != nil {
		return count, err
	}

	p.logger.Info("seeded bucket", "bucket", p.bucket, "objects", count)
	return count, nil
}

// Teardown deletes every object in the bucket and then the bucket itself.
// A bucket that no longer exists is not an error.
func (p *Provisioner) Teardown(ctx context.Context) error {
	deleted := 0
	paginator := s3.NewListObjectsV2Paginator(p.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			var noBucket *types.NoSuchBucket
			if errors.As(err, &noBucket) {
				p.logger.Info("bucket already deleted", "bucket", p.bucket)
				return nil
			}
			return fmt.Errorf("list objects: %w", err)
		}

		ids := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			ids = append(ids, types.ObjectIdentifier{Key: obj.Key})
		}
		for start := 0; start < len(ids); start += maxDeleteBatch {
			end := min(start+maxDeleteBatch, len(ids))
			if err := p.deleteBatch(ctx, ids[start:end]); err != nil {
				return err
			}
			deleted += end - start
		}
	}

	if _, err := p.client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(p.bucket)}); err != nil {
		return fmt.Errorf("delete bucket: %w", err)
	}

	p.logger.Info("deleted bucket", "bucket", p.bucket, "objects", deleted)
	return nil
}

func (p *Provisioner) deleteBatch(ctx context.Context, ids []types.ObjectIdentifier) error {
	out, err := p.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(p.bucket),
		Delete: &types.Delete{
			Objects: ids,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return fmt.Errorf("delete objects: %w", err)
	}
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("%w: %d failed, first %s: %s", ErrDeleteObjects,
			len(out.Errors), aws.ToString(first.Key), aws.ToString(first.Message))
	}
	return nil
}
