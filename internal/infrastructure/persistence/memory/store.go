// Package memory 进程内键值存储,用于开发环境和单元测试
package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
)

// Store 基于map的kv.Store实现,并发安全
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// Len 当前键数量
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
