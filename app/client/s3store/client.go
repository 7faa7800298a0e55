package s3store

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	appconfig "semlog/app/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/samber/do"
	"github.com/samber/oops"
)

const contentType = "application/rdf+xml"

// Putter is the part of the S3 API the client uses.
type Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client uploads episode documents to a bucket.
type Client struct {
	api     Putter
	bucket  string
	prefix  string
	timeout time.Duration
}

// New returns nil, nil when no bucket is configured.
func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*appconfig.Config](di).Storage.S3
	if cfg.Bucket == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, oops.In("s3store").Wrapf(err, "failed to load AWS config")
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewClient(api, cfg.Bucket, cfg.Prefix, time.Duration(cfg.TimeoutSeconds)*time.Second), nil
}

func NewClient(api Putter, bucket, prefix string, timeout time.Duration) *Client {
	return &Client{
		api:     api,
		bucket:  bucket,
		prefix:  prefix,
		timeout: timeout,
	}
}

func (c *Client) Key(episodeID string) string {
	return path.Join(strings.TrimSuffix(c.prefix, "/"), "Episodes", episodeID+"_ED.owl")
}

func (c *Client) Write(episodeID, text string) error {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	key := c.Key(episodeID)

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(text),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"episode": episodeID,
		},
	})
	if err != nil {
		return oops.In("s3store").With("bucket", c.bucket, "key", key).Wrapf(err, "failed to upload episode document")
	}

	slog.Info("Episode document uploaded", "bucket", c.bucket, "key", key)

	return nil
}
