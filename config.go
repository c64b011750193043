package filebase

import (
	"os"

	"github.com/Nadro-J/filebase-go/errs"
	"github.com/Nadro-J/filebase-go/objstore"
	"go.yaml.in/yaml/v3"
)

// Config holds everything needed to talk to both backends.
type Config struct {
	// APIKey / SecretKey are the Filebase credential pair. They double as
	// the object-store access keys and as input to the pin-API bearer token.
	// No format validation is performed; bad credentials surface as a
	// permission error on the first call.
	APIKey    string `yaml:"api_key"`
	SecretKey string `yaml:"secret_key"`

	// Endpoint is the object-store host. Default "s3.filebase.com".
	Endpoint string `yaml:"endpoint"`

	// APIEndpoint is the pin-status API root. Default
	// "https://api.filebase.io/v1/".
	APIEndpoint string `yaml:"api_endpoint"`

	// Provider selects the object-store SDK. Default objstore.ProviderMinIO.
	Provider objstore.Provider `yaml:"provider"`

	// Region for region-aware SDK codepaths. Default "us-east-1".
	Region string `yaml:"region"`

	// UseSSL controls TLS towards the object store. DefaultConfig enables it.
	UseSSL bool `yaml:"use_ssl"`

	// LegacyStatusReason reproduces the historical behavior of reporting
	// the numeric status code as the reason for object-store errors.
	LegacyStatusReason bool `yaml:"legacy_status_reason"`

	// LogLevel / LogFormat configure diagnostic logging. An empty LogLevel
	// keeps the client silent.
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns a config pointed at the production Filebase
// endpoints.
func DefaultConfig(apiKey, secretKey string) *Config {
	return &Config{
		APIKey:      apiKey,
		SecretKey:   secretKey,
		Endpoint:    "s3.filebase.com",
		APIEndpoint: "https://api.filebase.io/v1/",
		Provider:    objstore.ProviderMinIO,
		Region:      "us-east-1",
		UseSSL:      true,
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "cannot read config file", err)
	}

	cfg := DefaultConfig("", "")
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "cannot parse config file", err)
	}
	return cfg, nil
}

// storeConfig maps the client config onto the driver config.
func (c *Config) storeConfig() *objstore.Config {
	return &objstore.Config{
		Provider:           c.Provider,
		Endpoint:           c.Endpoint,
		AccessKey:          c.APIKey,
		SecretKey:          c.SecretKey,
		UseSSL:             c.UseSSL,
		Region:             c.Region,
		LegacyStatusReason: c.LegacyStatusReason,
	}
}
