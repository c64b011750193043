package objstore

// Provider identifies the SDK used to talk to the object storage backend.
type Provider string

const (
	// ProviderMinIO uses the MinIO Go SDK. This is the default.
	ProviderMinIO Provider = "minio"

	// ProviderS3 uses the AWS SDK for Go v2.
	ProviderS3 Provider = "s3"
)

// Config holds all settings needed to connect to an object storage backend.
type Config struct {
	// Provider is the SDK backing the Store (e.g. ProviderMinIO).
	Provider Provider

	// Endpoint is the host:port of the storage server.
	// Example: "s3.filebase.com".
	Endpoint string

	// AccessKey is the access key ID.
	AccessKey string

	// SecretKey is the secret access key.
	SecretKey string

	// UseSSL controls whether TLS is used for the connection.
	UseSSL bool

	// Region is used by region-aware backends. Filebase accepts any value;
	// "us-east-1" is the conventional choice.
	Region string

	// LegacyStatusReason, when true, reports the numeric HTTP status code as
	// the error reason for backend errors instead of the S3 error code,
	// matching the behavior of older releases.
	LegacyStatusReason bool
}

// DefaultConfig returns a config pointed at the Filebase S3 endpoint.
func DefaultConfig(accessKey, secretKey string) *Config {
	return &Config{
		Provider:  ProviderMinIO,
		Endpoint:  "s3.filebase.com",
		AccessKey: accessKey,
		SecretKey: secretKey,
		UseSSL:    true,
		Region:    "us-east-1",
	}
}
