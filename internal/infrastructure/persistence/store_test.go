package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/config"
)

func TestNewStore_Drivers(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, cleanup, err := NewStore(ctx, &config.Config{Storage: config.StorageConfig{Driver: "memory"}}, zap.NewNop())
		require.NoError(t, err)
		defer cleanup()
		require.NoError(t, s.Set(ctx, kv.KeyCart, "[]"))
	})

	t.Run("bolt", func(t *testing.T) {
		cfg := &config.Config{Storage: config.StorageConfig{
			Driver: "bolt",
			Bolt: config.BoltConfig{
				Path:    filepath.Join(t.TempDir(), "kv.db"),
				Bucket:  "storefront",
				Timeout: time.Second,
			},
		}}
		s, cleanup, err := NewStore(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer cleanup()

		require.NoError(t, s.Set(ctx, kv.KeyCart, "[]"))
		v, err := s.Get(ctx, kv.KeyCart)
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := NewStore(ctx, &config.Config{Storage: config.StorageConfig{Driver: "etcd"}}, zap.NewNop())
		assert.Error(t, err)
	})
}
