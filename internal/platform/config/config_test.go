package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.HTTP.Port)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "cft_jobs_", cfg.Storage.Namespace)
	assert.Equal(t, 3, cfg.Storage.MaxRetries)
	assert.Equal(t, "29.99", cfg.RegistrationFee().String())
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, time.Minute, cfg.RevalidateInterval())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
app:
  http:
    port: 9090
storage:
  backend: sql
db:
  driver: postgres
  dsn: "host=db user=app"
redis:
  addr: "cache:6379"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_STORAGE_BACKEND", "redis")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.HTTP.Port)
	assert.Equal(t, "redis", cfg.Storage.Backend, "env must win over file")
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "etcd" }, wantErr: true},
		{name: "bad fee", mutate: func(c *Config) { c.Payment.RegistrationFee = "free" }, wantErr: true},
		{name: "prod without secret", mutate: func(c *Config) { c.App.Env = "prod" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Storage: Storage{Backend: "memory"},
				Payment: Payment{RegistrationFee: "29.99", Currency: "USD"},
			}
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
