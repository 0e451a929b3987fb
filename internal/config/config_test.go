package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterfund/betterfund-api/internal/config"
)

const configYAML = `api:
  environment: test
  base_url: localhost:8080
  port: "8080"
  jwt_signing_key: test-signing-key
gin:
  mode: test
postgres:
  host: localhost
  port: "5432"
redis:
  addr: ""
stripe:
  secret_key: ""
`

func TestLoadAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	conf, err := config.Load(path)
	require.NoError(t, err)

	require.NotNil(t, conf.API)
	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, "test-signing-key", conf.API.JWTSigningKey)
	assert.Same(t, conf, config.Current())

	// A file change is published through Current as a fresh struct;
	// the snapshot handed out by Load stays untouched.
	updated := strings.Replace(configYAML, `secret_key: ""`, "secret_key: sk_test_reloaded", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	assert.Eventually(t, func() bool {
		c := config.Current()
		return c != nil && c.Stripe != nil && c.Stripe.SecretKey == "sk_test_reloaded"
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, "", conf.Stripe.SecretKey)
	assert.Equal(t, "8080", config.Current().API.Port)
}
