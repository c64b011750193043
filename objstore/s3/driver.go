// Package s3 provides an AWS SDK v2 implementation of objstore.Store.
//
// The SDK is pointed at the configured endpoint with path-style addressing,
// which is what S3-compatible services expect.
package s3

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/Nadro-J/filebase-go/errs"
	"github.com/Nadro-J/filebase-go/objstore"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// api is the slice of the SDK client this driver uses.
// Narrowing it to an interface lets tests substitute a mock.
type api interface {
	CreateBucket(ctx context.Context, params *awss3.CreateBucketInput, optFns ...func(*awss3.Options)) (*awss3.CreateBucketOutput, error)
	ListBuckets(ctx context.Context, params *awss3.ListBucketsInput, optFns ...func(*awss3.Options)) (*awss3.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *awss3.HeadObjectInput, optFns ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
}

// presigner is the presign slice, split out because the SDK implements it on
// a separate client type.
type presigner interface {
	PresignGetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Driver is an AWS SDK v2 implementation of objstore.Store.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	client             api
	presign            presigner
	legacyStatusReason bool
}

// New builds a Driver from the provided Config. Construction performs no
// network I/O; invalid credentials surface on the first call.
func New(ctx context.Context, cfg *objstore.Config) (*Driver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "failed to load aws config", err)
	}

	scheme := "https"
	if !cfg.UseSSL {
		scheme = "http"
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(scheme + "://" + cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Driver{
		client:             client,
		presign:            awss3.NewPresignClient(client),
		legacyStatusReason: cfg.LegacyStatusReason,
	}, nil
}

// --- objstore.Store implementation ---

// Ping verifies the backend is reachable by listing buckets.
func (d *Driver) Ping(ctx context.Context) error {
	_, err := d.client.ListBuckets(ctx, &awss3.ListBucketsInput{})
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
	_, err := d.client.CreateBucket(ctx, &awss3.CreateBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		return d.mapError(err, "failed to create bucket")
	}
	return nil
}

// ListBuckets returns all buckets accessible with the configured credentials.
func (d *Driver) ListBuckets(ctx context.Context) ([]objstore.BucketInfo, error) {
	out, err := d.client.ListBuckets(ctx, &awss3.ListBucketsInput{})
	if err != nil {
		return nil, d.mapError(err, "failed to list buckets")
	}

	buckets := make([]objstore.BucketInfo, len(out.Buckets))
	for i, b := range out.Buckets {
		buckets[i] = objstore.BucketInfo{
			Name:      aws.ToString(b.Name),
			CreatedAt: aws.ToTime(b.CreationDate),
		}
	}
	return buckets, nil
}

// ListObjects returns objects in bucket that match opts. A single page is
// fetched; opts.Limit above the backend page size is not chased across
// continuation tokens.
func (d *Driver) ListObjects(ctx context.Context, bucket string, opts objstore.ListOptions) ([]objstore.ObjectInfo, error) {
	in := &awss3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(opts.Prefix),
	}
	if !opts.Recursive {
		in.Delimiter = aws.String("/")
	}
	if opts.Limit > 0 {
		in.MaxKeys = aws.Int32(int32(opts.Limit))
	}

	out, err := d.client.ListObjectsV2(ctx, in)
	if err != nil {
		return nil, d.mapError(err, "failed to list objects")
	}

	results := make([]objstore.ObjectInfo, 0, len(out.Contents)+len(out.CommonPrefixes))
	for _, obj := range out.Contents {
		results = append(results, objstore.ObjectInfo{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			ETag:         trimETag(aws.ToString(obj.ETag)),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}
	for _, p := range out.CommonPrefixes {
		results = append(results, objstore.ObjectInfo{
			Key:   aws.ToString(p.Prefix),
			Size:  -1,
			IsDir: true,
		})
	}
	return results, nil
}

// PutObject uploads the payload, then heads the written object to pick up
// the content identifier. The SDK does not surface response headers from
// the upload itself, so the CID is only available via the follow-up head.
func (d *Driver) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts objstore.PutOptions) (*objstore.UploadInfo, error) {
	in := &awss3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
	}
	if opts.ContentType != "" {
		in.ContentType = aws.String(opts.ContentType)
	}

	out, err := d.client.PutObject(ctx, in)
	if err != nil {
		return nil, d.mapError(err, "failed to put object")
	}

	head, err := d.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, d.mapError(err, "failed to stat object after put")
	}

	return &objstore.UploadInfo{
		Bucket: bucket,
		Key:    key,
		ETag:   trimETag(aws.ToString(out.ETag)),
		CID:    head.Metadata["cid"],
		Size:   size,
	}, nil
}

// GetObject opens a streaming handle to the object at key inside bucket.
// The caller MUST call Object.Close() after reading.
func (d *Driver) GetObject(ctx context.Context, bucket, key string) (objstore.Object, error) {
	out, err := d.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, d.mapError(err, "failed to get object")
	}

	return &object{
		ReadCloser: out.Body,
		info: &objstore.ObjectInfo{
			Key:          key,
			Size:         aws.ToInt64(out.ContentLength),
			ContentType:  aws.ToString(out.ContentType),
			ETag:         trimETag(aws.ToString(out.ETag)),
			CID:          out.Metadata["cid"],
			LastModified: aws.ToTime(out.LastModified),
		},
	}, nil
}

// StatObject returns metadata for the object at key inside bucket
// without downloading its content.
func (d *Driver) StatObject(ctx context.Context, bucket, key string) (*objstore.ObjectInfo, error) {
	out, err := d.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, d.mapError(err, "failed to stat object")
	}

	return &objstore.ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		ETag:         trimETag(aws.ToString(out.ETag)),
		CID:          out.Metadata["cid"],
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// DeleteObject removes the object at key inside bucket.
func (d *Driver) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := d.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return d.mapError(err, "failed to delete object")
	}
	return nil
}

// PresignGetURL returns a time-limited public download URL for the object.
func (d *Driver) PresignGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := d.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(ttl))
	if err != nil {
		return "", d.mapError(err, "failed to generate presigned URL")
	}
	return req.URL, nil
}

// --- internal types ---

// trimETag strips the surrounding quotes the wire format carries.
func trimETag(etag string) string {
	return strings.Trim(etag, `"`)
}

// object wraps a GetObject response body and exposes objstore.Object.
type object struct {
	io.ReadCloser
	info *objstore.ObjectInfo
}

func (o *object) Info() *objstore.ObjectInfo {
	return o.info
}
