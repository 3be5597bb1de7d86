package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOREFRONT_BACKEND_BASIC_AUTH_USERNAME", "shop")
	t.Setenv("STOREFRONT_BACKEND_BASIC_AUTH_PASSWORD", "from-env")
	t.Setenv("STOREFRONT_STOREFRONT_LOGOUT_ADMIN_ON_SHOP", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, 12, cfg.Storefront.CatalogPageSize)
	assert.Equal(t, 10, cfg.Storefront.AdminPageSize)
	assert.Equal(t, 30*time.Minute, cfg.Storefront.WorkspaceTTL)
	assert.Equal(t, "shop", cfg.Backend.BasicAuth.Username)
	assert.Equal(t, "from-env", cfg.Backend.BasicAuth.Password)
	assert.True(t, cfg.Storefront.LogoutAdminOnShop)
}

func TestLoad_FileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(`
server:
  port: 9090
storage:
  driver: memory
checkout:
  require_address: true
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("STOREFRONT_BACKEND_BASE_URL=http://backend:8000\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STOREFRONT_BACKEND_BASE_URL") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.True(t, cfg.Checkout.RequireAddress)
	assert.Equal(t, "http://backend:8000", cfg.Backend.BaseURL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080, Mode: "debug"},
			Backend:   BackendConfig{BaseURL: "http://localhost:8000"},
			Storage:   StorageConfig{Driver: "memory"},
			Visitor:   VisitorConfig{JWTSecret: "secret"},
			RateLimit: RateLimitConfig{Enabled: true, RPS: 5, Burst: 10},
		}
	}
	require.NoError(t, validate(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad backend url", func(c *Config) { c.Backend.BaseURL = "not a url" }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "etcd" }},
		{"empty secret", func(c *Config) { c.Visitor.JWTSecret = "" }},
		{"default secret in release", func(c *Config) {
			c.Server.Mode = "release"
			c.Visitor.JWTSecret = "change-me-visitor-secret"
		}},
		{"bad rate limit", func(c *Config) { c.RateLimit.Burst = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, validate(cfg))
		})
	}
}

func TestMySQLConfig_DSN(t *testing.T) {
	c := MySQLConfig{
		Host: "db", Port: 3306, User: "u", Password: "p", DBName: "shop",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "u:p@tcp(db:3306)/shop?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", c.DSN())
}
