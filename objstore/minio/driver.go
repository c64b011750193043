// Package minio provides a MinIO SDK implementation of objstore.Store.
//
// Usage:
//
//	cfg := objstore.DefaultConfig("KEY", "SECRET")
//	store, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer store.Close()
//
//	info, err := store.PutObject(ctx, "bucket", "key", r, size, objstore.PutOptions{})
package minio

import (
	"context"
	"io"
	"time"

	"github.com/Nadro-J/filebase-go/errs"
	"github.com/Nadro-J/filebase-go/objstore"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Driver is a MinIO SDK implementation of objstore.Store.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	client             *miniogo.Client
	region             string
	legacyStatusReason bool
}

// New builds a Driver from the provided Config. Construction performs no
// network I/O; invalid credentials surface on the first call. Use Ping to
// validate the connection eagerly.
func New(ctx context.Context, cfg *objstore.Config) (*Driver, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to create minio client", err)
	}

	return &Driver{
		client:             client,
		region:             cfg.Region,
		legacyStatusReason: cfg.LegacyStatusReason,
	}, nil
}

// --- objstore.Store implementation ---

// Ping verifies the backend is reachable by listing buckets.
func (d *Driver) Ping(ctx context.Context) error {
	_, err := d.client.ListBuckets(ctx)
	if err != nil {
		return d.mapError(err, "ping failed")
	}
	return nil
}

// Close is a no-op — the SDK client holds no persistent connections.
func (d *Driver) Close() error {
	return nil
}

// CreateBucket creates a bucket with the given name.
func (d *Driver) CreateBucket(ctx context.Context, name string) error {
	err := d.client.MakeBucket(ctx, name, miniogo.MakeBucketOptions{Region: d.region})
	if err != nil {
		return d.mapError(err, "failed to create bucket")
	}
	return nil
}

// ListBuckets returns all buckets accessible with the configured credentials.
func (d *Driver) ListBuckets(ctx context.Context) ([]objstore.BucketInfo, error) {
	raw, err := d.client.ListBuckets(ctx)
	if err != nil {
		return nil, d.mapError(err, "failed to list buckets")
	}

	buckets := make([]objstore.BucketInfo, len(raw))
	for i, b := range raw {
		buckets[i] = objstore.BucketInfo{
			Name:      b.Name,
			CreatedAt: b.CreationDate,
		}
	}
	return buckets, nil
}

// ListObjects returns objects in bucket that match opts.
func (d *Driver) ListObjects(ctx context.Context, bucket string, opts objstore.ListOptions) ([]objstore.ObjectInfo, error) {
	listOpts := miniogo.ListObjectsOptions{
		Prefix:    opts.Prefix,
		Recursive: opts.Recursive,
	}

	var results []objstore.ObjectInfo
	count := 0

	for obj := range d.client.ListObjects(ctx, bucket, listOpts) {
		if obj.Err != nil {
			return nil, d.mapError(obj.Err, "failed to list objects")
		}

		results = append(results, objstore.ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
			IsDir:        len(obj.Key) > 0 && obj.Key[len(obj.Key)-1] == '/',
		})

		count++
		if opts.Limit > 0 && count >= opts.Limit {
			break
		}
	}

	return results, nil
}

// PutObject uploads the payload, then stats the written object to pick up
// the content identifier. The SDK does not surface response headers from
// the upload itself, so the CID is only available via the follow-up stat.
func (d *Driver) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts objstore.PutOptions) (*objstore.UploadInfo, error) {
	up, err := d.client.PutObject(ctx, bucket, key, r, size, miniogo.PutObjectOptions{
		ContentType: opts.ContentType,
	})
	if err != nil {
		return nil, d.mapError(err, "failed to put object")
	}

	stat, err := d.client.StatObject(ctx, bucket, key, miniogo.StatObjectOptions{})
	if err != nil {
		return nil, d.mapError(err, "failed to stat object after put")
	}

	return &objstore.UploadInfo{
		Bucket: bucket,
		Key:    key,
		ETag:   up.ETag,
		CID:    cidFromMetadata(stat.UserMetadata),
		Size:   up.Size,
	}, nil
}

// GetObject opens a streaming handle to the object at key inside bucket.
// The caller MUST call Object.Close() after reading.
func (d *Driver) GetObject(ctx context.Context, bucket, key string) (objstore.Object, error) {
	obj, err := d.client.GetObject(ctx, bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, d.mapError(err, "failed to get object")
	}

	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, d.mapError(err, "failed to stat object after get")
	}

	return &object{
		ReadCloser: obj,
		info: &objstore.ObjectInfo{
			Key:          key,
			Size:         stat.Size,
			ContentType:  stat.ContentType,
			ETag:         stat.ETag,
			CID:          cidFromMetadata(stat.UserMetadata),
			LastModified: stat.LastModified,
		},
	}, nil
}

// StatObject returns metadata for the object at key inside bucket
// without downloading its content.
func (d *Driver) StatObject(ctx context.Context, bucket, key string) (*objstore.ObjectInfo, error) {
	stat, err := d.client.StatObject(ctx, bucket, key, miniogo.StatObjectOptions{})
	if err != nil {
		return nil, d.mapError(err, "failed to stat object")
	}

	return &objstore.ObjectInfo{
		Key:          stat.Key,
		Size:         stat.Size,
		ContentType:  stat.ContentType,
		ETag:         stat.ETag,
		CID:          cidFromMetadata(stat.UserMetadata),
		LastModified: stat.LastModified,
	}, nil
}

// DeleteObject removes the object at key inside bucket.
func (d *Driver) DeleteObject(ctx context.Context, bucket, key string) error {
	err := d.client.RemoveObject(ctx, bucket, key, miniogo.RemoveObjectOptions{})
	if err != nil {
		return d.mapError(err, "failed to delete object")
	}
	return nil
}

// PresignGetURL returns a time-limited public download URL for the object.
func (d *Driver) PresignGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	u, err := d.client.PresignedGetObject(ctx, bucket, key, ttl, nil)
	if err != nil {
		return "", d.mapError(err, "failed to generate presigned URL")
	}
	return u.String(), nil
}

// --- internal types ---

// cidFromMetadata extracts the content identifier from the user metadata
// the backend attaches to stored objects (the x-amz-meta-cid header).
// The SDK strips the x-amz-meta- prefix and canonicalises the remainder.
func cidFromMetadata(meta map[string]string) string {
	for _, k := range []string{"Cid", "CID", "cid"} {
		if v, ok := meta[k]; ok {
			return v
		}
	}
	return ""
}

// object wraps a MinIO GetObject response and exposes objstore.Object.
type object struct {
	io.ReadCloser
	info *objstore.ObjectInfo
}

func (o *object) Info() *objstore.ObjectInfo {
	return o.info
}
