package filebase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nadro-J/filebase-go/errs"
	"github.com/Nadro-J/filebase-go/objstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("key", "secret")

	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "secret", cfg.SecretKey)
	assert.Equal(t, "s3.filebase.com", cfg.Endpoint)
	assert.Equal(t, "https://api.filebase.io/v1/", cfg.APIEndpoint)
	assert.Equal(t, objstore.ProviderMinIO, cfg.Provider)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.True(t, cfg.UseSSL)
	assert.False(t, cfg.LegacyStatusReason)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filebase.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_key: key-from-file
secret_key: secret-from-file
provider: s3
legacy_status_reason: true
log_level: debug
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "key-from-file", cfg.APIKey)
	assert.Equal(t, "secret-from-file", cfg.SecretKey)
	assert.Equal(t, objstore.ProviderS3, cfg.Provider)
	assert.True(t, cfg.LegacyStatusReason)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, "s3.filebase.com", cfg.Endpoint)
	assert.Equal(t, "https://api.filebase.io/v1/", cfg.APIEndpoint)
	assert.True(t, cfg.UseSSL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: [unterminated"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestStoreConfig_MapsFields(t *testing.T) {
	cfg := DefaultConfig("key", "secret")
	cfg.LegacyStatusReason = true

	sc := cfg.storeConfig()
	assert.Equal(t, "key", sc.AccessKey)
	assert.Equal(t, "secret", sc.SecretKey)
	assert.Equal(t, "s3.filebase.com", sc.Endpoint)
	assert.True(t, sc.UseSSL)
	assert.True(t, sc.LegacyStatusReason)
}
