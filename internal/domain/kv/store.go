package kv

import (
	"context"
	"errors"
)

// 持久化键名
// 每个访客工作区在自己的命名空间下使用这几个固定键,
// 值都是字符串:购物车为JSON数组,会话标记为"true"/"false"
const (
	KeyCart                   = "cart"
	KeySessionToken           = "adminSessionToken"
	KeyRequiresPasswordChange = "adminRequiresPasswordChange"
)

// ErrNotFound 键不存在
var ErrNotFound = errors.New("kv: key not found")

// Store 键值存储接口
// 设计说明:
// 1. 只有Get/Set/Delete三个同步操作,没有事务,后写覆盖先写
// 2. 领域层只依赖这个接口,具体实现(bolt/redis/mysql/内存)由基础设施层提供
// 3. Get在键不存在时返回ErrNotFound,调用方用errors.Is判断
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Namespace 给所有键加前缀,用于按访客隔离数据
//
//	visitorStore := kv.Namespace(store, "visitor:"+visitorID+":")
func Namespace(store Store, prefix string) Store {
	return &namespaced{store: store, prefix: prefix}
}

type namespaced struct {
	store  Store
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = n.prefix + k
	}
	return n.store.Delete(ctx, prefixed...)
}
