package mysql

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	"github.com/xiebiao/bookstore-storefront/internal/infrastructure/config"
)

// startMySQL 用dockertest启动临时MySQL,返回迁移好的连接
// 没有可用的Docker时跳过测试
func startMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("short模式跳过MySQL容器测试")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Docker不可用: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("无法连接Docker: %v", err)
	}
	pool.MaxWait = 2 * time.Minute

	resource, err := pool.Run("mysql", "8.0", []string{
		"MYSQL_ROOT_PASSWORD=secret",
		"MYSQL_DATABASE=storefront",
	})
	if err != nil {
		t.Skipf("启动MySQL容器失败: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("清理容器失败: %v", err)
		}
	})

	port, err := strconv.Atoi(resource.GetPort("3306/tcp"))
	require.NoError(t, err)
	cfg := config.MySQLConfig{
		Host:         "localhost",
		Port:         port,
		User:         "root",
		Password:     "secret",
		DBName:       "storefront",
		Charset:      "utf8mb4",
		ParseTime:    true,
		Loc:          "Local",
		MaxOpenConns: 5,
		MaxIdleConns: 1,
	}

	var db *gorm.DB
	err = pool.Retry(func() error {
		var e error
		db, e = NewDB(cfg, false, zap.NewNop())
		return e
	})
	require.NoError(t, err, "等待MySQL就绪超时")
	return db
}

func TestMySQLStore(t *testing.T) {
	s := NewStore(startMySQL(t))
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	_, err := s.Get(ctx, "visitor:v1:"+kv.KeyCart)
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "visitor:v1:"+kv.KeyCart, "[]"))
	require.NoError(t, s.Set(ctx, "visitor:v1:"+kv.KeyCart, `[{"quantity":2}]`))
	v, err := s.Get(ctx, "visitor:v1:"+kv.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"quantity":2}]`, v)

	require.NoError(t, s.Set(ctx, "visitor:v1:"+kv.KeySessionToken, "tok"))
	require.NoError(t, s.Delete(ctx, "visitor:v1:"+kv.KeyCart, "visitor:v1:"+kv.KeySessionToken))
	_, err = s.Get(ctx, "visitor:v1:"+kv.KeySessionToken)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
