package inference

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("INFERENCE_ENDPOINT", "")
	t.Setenv("INFERENCE_API_TOKEN", "")
	t.Setenv("INFERENCE_HTTP_TIMEOUT_SECONDS", "")

	cfg := NewConfig()

	assert.Equal(t, DefaultBaseURL, cfg.Endpoint)
	assert.Empty(t, cfg.Token)
	assert.Zero(t, cfg.HTTPTimeoutS)
	assert.Error(t, cfg.Validate())
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("INFERENCE_ENDPOINT", "https://inference.internal")
	t.Setenv("INFERENCE_API_TOKEN", "secret")
	t.Setenv("INFERENCE_HTTP_TIMEOUT_SECONDS", "30")

	cfg := NewConfig()

	assert.Equal(t, "https://inference.internal", cfg.Endpoint)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 30, cfg.HTTPTimeoutS)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("INFERENCE_HTTP_TIMEOUT_SECONDS", "soon")
	assert.Zero(t, NewConfig().HTTPTimeoutS)

	t.Setenv("INFERENCE_HTTP_TIMEOUT_SECONDS", "-5")
	assert.Zero(t, NewConfig().HTTPTimeoutS)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("INFERENCE_ENDPOINT", "")
	t.Setenv("INFERENCE_API_TOKEN", "from-env")
	t.Setenv("INFERENCE_HTTP_TIMEOUT_SECONDS", "")

	path := filepath.Join(t.TempDir(), "inference.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: https://inference.internal/api
token: from-file
http_timeout_seconds: 12
`), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://inference.internal/api", cfg.Endpoint)
	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, 12, cfg.HTTPTimeoutS)
}

func TestLoadConfigFileDefaultsEndpoint(t *testing.T) {
	t.Setenv("INFERENCE_ENDPOINT", "")
	t.Setenv("INFERENCE_API_TOKEN", "")

	path := filepath.Join(t.TempDir(), "inference.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: abc\n"), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.Endpoint)
	assert.Equal(t, "abc", cfg.Token)
}

func TestLoadConfigFileErrors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: [unterminated"), 0o600))
	_, err = LoadConfigFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{Token: "t"}).Validate())
	assert.Error(t, (&Config{Endpoint: DefaultBaseURL}).Validate())
	assert.Error(t, (&Config{Endpoint: DefaultBaseURL, Token: "t", HTTPTimeoutS: -1}).Validate())
	assert.NoError(t, (&Config{Endpoint: DefaultBaseURL, Token: "t"}).Validate())
}

func TestNewClientFromConfig(t *testing.T) {
	client, err := NewClientFromConfig(&Config{Endpoint: "https://inference.internal/", Token: "t", HTTPTimeoutS: 5})
	require.NoError(t, err)

	assert.Equal(t, "https://inference.internal", client.BaseURL())
	httpClient, ok := client.sender.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, httpClient.Timeout)

	_, err = NewClientFromConfig(&Config{Endpoint: "https://inference.internal"})
	assert.Error(t, err)

	_, err = NewClientFromConfig(&Config{Endpoint: "relative", Token: "t"})
	assert.ErrorIs(t, err, ErrInvalidBaseURL)
}
