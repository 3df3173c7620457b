// Package s3 implements object storage against an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/and161185/classroom-gateway/internal/errs"
	"github.com/and161185/classroom-gateway/internal/storage"
)

// Options configure the S3 client.
type Options struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	// Endpoint overrides the AWS endpoint for S3-compatible backends (MinIO).
	Endpoint string
	// PublicBaseURL overrides public URL resolution; defaults to
	// <endpoint>/<bucket> or the AWS virtual-host URL.
	PublicBaseURL string
}

// Client is a bucket handle constructed once at startup and shared across
// requests. Safe for concurrent use.
type Client struct {
	api     *s3.Client
	bucket  string
	baseURL string
}

var _ storage.ObjectStorage = (*Client)(nil)

// New builds the S3 client from static credentials.
func New(ctx context.Context, opts Options) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		api:     api,
		bucket:  opts.Bucket,
		baseURL: publicBaseURL(opts),
	}, nil
}

func publicBaseURL(opts Options) string {
	if opts.PublicBaseURL != "" {
		return strings.TrimRight(opts.PublicBaseURL, "/")
	}
	if opts.Endpoint != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(opts.Endpoint, "/"), opts.Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
}

// Put uploads raw bytes under key with the declared content type.
func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", errs.ErrUpstream, key, err)
	}
	return nil
}

// List returns metadata for all objects currently in the bucket.
// Pagination is handled here; callers see the full listing.
func (c *Client) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	var out []storage.ObjectInfo
	p := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list: %v", errs.ErrUpstream, err)
		}
		for _, obj := range page.Contents {
			info := storage.ObjectInfo{Key: aws.ToString(obj.Key)}
			if obj.Size != nil {
				info.Size = *obj.Size
			}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			out = append(out, info)
		}
	}
	return out, nil
}

// Delete removes an object from the bucket.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return errs.ErrNotFound
		}
		return fmt.Errorf("%w: delete %s: %v", errs.ErrUpstream, key, err)
	}
	return nil
}

// PublicURL resolves the public URL for a key without any I/O.
func (c *Client) PublicURL(key string) string {
	segs := strings.Split(key, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return c.baseURL + "/" + strings.Join(segs, "/")
}
