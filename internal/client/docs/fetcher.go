// Package docs downloads the document attached to a warranty record. The
// backend stores either a public http(s) URL or an s3://bucket/key location
// on S3-compatible storage.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/warrantyreminder/internal/netx"
)

// DefaultMaxBytes caps a single document download.
const DefaultMaxBytes int64 = 50 << 20

var (
	ErrUnsupportedScheme = errors.New("unsupported document URL scheme")
	ErrInvalidS3URL      = errors.New("invalid s3 URL")
)

type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// ObjectGetter is the part of the S3 client the fetcher uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Fetcher struct {
	http     *http.Client
	s3cfg    S3Config
	maxBytes int64

	once  sync.Once
	s3    ObjectGetter
	s3Err error
}

type Option func(*Fetcher)

func WithS3Client(c ObjectGetter) Option {
	return func(f *Fetcher) { f.s3 = c }
}

func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) { f.maxBytes = n }
}

func NewFetcher(httpClient *http.Client, cfg S3Config, opts ...Option) *Fetcher {
	f := &Fetcher{http: httpClient, s3cfg: cfg, maxBytes: DefaultMaxBytes}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch returns the document bytes and a file name for it.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, "", fmt.Errorf("parse document URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return netx.Download(ctx, f.http, u.String(), f.maxBytes)
	case "s3":
		bucket, key, err := ParseS3URL(u.String())
		if err != nil {
			return nil, "", err
		}
		return f.fetchS3(ctx, bucket, key)
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// ParseS3URL splits s3://bucket/key.
func ParseS3URL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "s3" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidS3URL, raw)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidS3URL, raw)
	}
	return bucket, key, nil
}

func (f *Fetcher) client(ctx context.Context) (ObjectGetter, error) {
	f.once.Do(func() {
		if f.s3 != nil {
			return
		}
		f.s3, f.s3Err = newS3Client(ctx, f.s3cfg, f.http)
	})
	return f.s3, f.s3Err
}

func newS3Client(ctx context.Context, cfg S3Config, httpClient *http.Client) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if httpClient != nil {
			o.HTTPClient = httpClient
		}
	}), nil
}

func (f *Fetcher) fetchS3(ctx context.Context, bucket, key string) ([]byte, string, error) {
	c, err := f.client(ctx)
	if err != nil {
		return nil, "", err
	}

	out, err := c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	var r io.Reader = out.Body
	if f.maxBytes > 0 {
		r = io.LimitReader(out.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, "", netx.ErrTooLarge
	}

	return data, path.Base(key), nil
}
