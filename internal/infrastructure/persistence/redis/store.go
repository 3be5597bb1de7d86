package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// Store 基于Redis字符串的kv.Store实现
// 设计说明：
// 1. Key设计：{prefix}visitor:{visitor_id}:{key},前缀隔离同一Redis里的其他应用
// 2. 每次写入刷新过期时间,长期不访问的访客数据自动清理
// 3. redis.Nil转换为kv.ErrNotFound
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStore 创建Redis存储,ttl为0时键不过期
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", apperrors.WithCode(apperrors.ErrCodeStorageError, "读取存储失败", err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return apperrors.WithCode(apperrors.ErrCodeStorageError, "写入存储失败", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return apperrors.WithCode(apperrors.ErrCodeStorageError, "删除存储失败", err)
	}
	return nil
}

// Close 关闭连接
func (s *Store) Close() error {
	return s.client.Close()
}
