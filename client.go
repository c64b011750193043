// Package filebase is a Go client for Filebase: S3-compatible object storage
// backed by decentralized networks, plus the IPFS pin-status API.
//
// A Client wraps both backends behind typed methods. Every method performs
// direct blocking calls with no retries or caching; failures come back as
// *errs.Error values that callers inspect with the errs predicates.
//
// Usage:
//
//	cfg := filebase.DefaultConfig(os.Getenv("FILEBASE_KEY"), os.Getenv("FILEBASE_SECRET"))
//	client, err := filebase.New(ctx, cfg)
//	if err != nil { ... }
//	defer client.Close()
//
//	cid, err := client.UploadObject(ctx, "photo.jpg", "photo.jpg", "my-bucket")
package filebase

import (
	"bytes"
	"context"
	"os"
	"strings"
	"time"

	"github.com/Nadro-J/filebase-go/errs"
	"github.com/Nadro-J/filebase-go/internal/logger"
	"github.com/Nadro-J/filebase-go/objstore"
	"github.com/Nadro-J/filebase-go/objstore/minio"
	"github.com/Nadro-J/filebase-go/objstore/s3"
	"github.com/Nadro-J/filebase-go/pinning"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the object store and the pin-status API on behalf of one
// credential pair. It holds no mutable per-call state and is safe for
// concurrent use by multiple goroutines.
type Client struct {
	cfg   *Config
	store objstore.Store
	pins  *pinning.Client
	log   *logger.Logger
}

// New constructs a Client for cfg. Construction performs no network I/O;
// invalid credentials surface on the first call. Use Ping for an eager check.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errs.New(errs.ErrKindInvalidInput, "nil config")
	}

	var (
		store objstore.Store
		err   error
	)
	switch cfg.Provider {
	case objstore.ProviderMinIO, "":
		store, err = minio.New(ctx, cfg.storeConfig())
	case objstore.ProviderS3:
		store, err = s3.New(ctx, cfg.storeConfig())
	default:
		return nil, errs.New(errs.ErrKindInvalidInput, "unknown provider: "+string(cfg.Provider))
	}
	if err != nil {
		return nil, err
	}

	return NewWithStore(cfg, store), nil
}

// NewWithStore constructs a Client over an existing Store. Useful for tests
// and for callers that build their own driver.
func NewWithStore(cfg *Config, store objstore.Store) *Client {
	log := logger.Nop()
	if cfg.LogLevel != "" {
		log = logger.New(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	}

	return &Client{
		cfg:   cfg,
		store: store,
		pins:  pinning.New(&pinning.Config{BaseURL: cfg.APIEndpoint}),
		log:   log,
	}
}

// Ping verifies the object store is reachable with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// Close releases the underlying store handle.
func (c *Client) Close() error {
	return c.store.Close()
}

// CreateBucket creates a bucket. The name is folded to lower case before
// submission; bucket identifiers are case-insensitive from the caller's
// point of view.
func (c *Client) CreateBucket(ctx context.Context, name string) error {
	bucket := strings.ToLower(name)
	c.log.With().Str("bucket", bucket).Logger().Debug("creating bucket")

	if err := c.store.CreateBucket(ctx, bucket); err != nil {
		c.log.With().Str("bucket", bucket).Err(err).Logger().Error("create bucket failed")
		return err
	}
	return nil
}

// ListBuckets returns all buckets accessible with the configured credentials.
func (c *Client) ListBuckets(ctx context.Context) ([]objstore.BucketInfo, error) {
	return c.store.ListBuckets(ctx)
}

// ListObjects returns the objects in bucket that match opts.
func (c *Client) ListObjects(ctx context.Context, bucket string, opts objstore.ListOptions) ([]objstore.ObjectInfo, error) {
	return c.store.ListObjects(ctx, strings.ToLower(bucket), opts)
}

// UploadObject uploads the file at pathToFile to bucket under name and
// returns the content identifier the backend assigned. A missing or
// unreadable file is reported as an invalid-input error; nothing panics.
func (c *Client) UploadObject(ctx context.Context, pathToFile, name, bucket string) (string, error) {
	f, err := os.Open(pathToFile)
	if err != nil {
		return "", errs.Wrap(errs.ErrKindInvalidInput, "cannot open source file", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", errs.Wrap(errs.ErrKindInvalidInput, "cannot stat source file", err)
	}

	b := strings.ToLower(bucket)
	c.log.With().Str("bucket", b).Str("key", name).Logger().Debug("uploading object")

	info, err := c.store.PutObject(ctx, b, name, f, fi.Size(), objstore.PutOptions{})
	if err != nil {
		c.log.With().Str("bucket", b).Str("key", name).Err(err).Logger().Error("upload failed")
		return "", err
	}
	return info.CID, nil
}

// UploadMetadata serializes data to indented JSON and uploads it to bucket
// under name, returning the content identifier the backend assigned.
func (c *Client) UploadMetadata(ctx context.Context, data interface{}, name, bucket string) (string, error) {
	payload, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return "", errs.Wrap(errs.ErrKindInvalidInput, "cannot serialize metadata", err)
	}

	b := strings.ToLower(bucket)
	c.log.With().Str("bucket", b).Str("key", name).Int("bytes", len(payload)).Logger().Debug("uploading metadata")

	info, err := c.store.PutObject(ctx, b, name, bytes.NewReader(payload), int64(len(payload)), objstore.PutOptions{
		ContentType: "application/json",
	})
	if err != nil {
		c.log.With().Str("bucket", b).Str("key", name).Err(err).Logger().Error("metadata upload failed")
		return "", err
	}
	return info.CID, nil
}

// DownloadObject opens a streaming handle to the object stored under name in
// bucket. The caller MUST call Close() after reading.
func (c *Client) DownloadObject(ctx context.Context, name, bucket string) (objstore.Object, error) {
	return c.store.GetObject(ctx, strings.ToLower(bucket), name)
}

// StatObject returns metadata, including the content identifier, for the
// object stored under name in bucket.
func (c *Client) StatObject(ctx context.Context, name, bucket string) (*objstore.ObjectInfo, error) {
	return c.store.StatObject(ctx, strings.ToLower(bucket), name)
}

// DeleteObject removes the object stored under name in bucket. The bucket is
// folded to lower case; the object key is used verbatim.
func (c *Client) DeleteObject(ctx context.Context, name, bucket string) error {
	b := strings.ToLower(bucket)
	c.log.With().Str("bucket", b).Str("key", name).Logger().Debug("deleting object")

	if err := c.store.DeleteObject(ctx, b, name); err != nil {
		c.log.With().Str("bucket", b).Str("key", name).Err(err).Logger().Error("delete failed")
		return err
	}
	return nil
}

// PresignGetURL returns a time-limited URL for downloading the object stored
// under name in bucket without credentials.
func (c *Client) PresignGetURL(ctx context.Context, name, bucket string, ttl time.Duration) (string, error) {
	return c.store.PresignGetURL(ctx, strings.ToLower(bucket), name, ttl)
}

// ListPinnedObjects lists the pins recorded for bucket. The bearer token is
// derived from the credential pair and the bucket string as supplied.
func (c *Client) ListPinnedObjects(ctx context.Context, bucket string) (*pinning.PinResults, error) {
	return c.ListPinnedObjectsWith(ctx, bucket, pinning.ListOptions{})
}

// ListPinnedObjectsWith is ListPinnedObjects with listing filters.
func (c *Client) ListPinnedObjectsWith(ctx context.Context, bucket string, opts pinning.ListOptions) (*pinning.PinResults, error) {
	c.log.With().Str("bucket", bucket).Logger().Debug("listing pinned objects")

	res, err := c.pins.ListPins(ctx, bearerToken(c.cfg.APIKey, c.cfg.SecretKey, bucket), opts)
	if err != nil {
		c.log.With().Str("bucket", bucket).Err(err).Logger().Error("pin listing failed")
		return nil, err
	}
	return res, nil
}
