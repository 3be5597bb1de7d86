package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/domain/kv"
	"github.com/xiebiao/bookstore-storefront/pkg/metrics"
)

// MaxQuantity 单本书在购物车中的数量上限
const MaxQuantity = 999

// Item 购物车条目:图书快照 + 数量(>0)
type Item struct {
	Book     catalog.Book `json:"book"`
	Quantity int          `json:"quantity"`
}

// Gate 管理员会话闸门
// 管理员登录期间购物车只读,所有修改操作都是空操作
type Gate interface {
	IsAuthenticated() bool
}

// Store 持久化购物车
// 教学要点:
// 1. 条目按加入顺序保存,同一本书只出现一次
// 2. 每次修改后整体序列化为JSON写入kv的cart键
// 3. 写入失败只记日志,不回滚内存状态(存储是尽力而为的)
type Store struct {
	mu     sync.Mutex
	items  []Item
	gate   Gate
	store  kv.Store
	logger *zap.Logger
}

// NewStore 创建购物车,需要调用Restore恢复持久化数据
func NewStore(store kv.Store, gate Gate, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		store:  store,
		gate:   gate,
		logger: logger,
	}
}

// Restore 从kv恢复购物车
// 数据损坏或读取失败时静默恢复为空购物车
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	raw, err := s.store.Get(ctx, kv.KeyCart)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("读取购物车失败", zap.Error(err))
		}
		return
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("购物车数据损坏,已重置", zap.Error(err))
		return
	}

	// 过滤掉不合法的条目,保证"每本书最多一条、数量>0"
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if it.Quantity <= 0 || seen[it.Book.ID] {
			continue
		}
		seen[it.Book.ID] = true
		it.Quantity = min(it.Quantity, MaxQuantity)
		s.items = append(s.items, it)
	}
}

// Add 加入购物车,已存在则累加数量
// quantity<1 按1处理,累加结果不超过MaxQuantity;返回是否实际修改
func (s *Store) Add(ctx context.Context, book catalog.Book, quantity int) bool {
	quantity = max(1, min(quantity, MaxQuantity))
	return s.mutate(ctx, "add", func(items []Item) ([]Item, bool) {
		for i := range items {
			if items[i].Book.ID == book.ID {
				// 两个值都不超过MaxQuantity,相加不会溢出
				next := min(items[i].Quantity+quantity, MaxQuantity)
				if next == items[i].Quantity {
					return items, false
				}
				items[i].Quantity = next
				return items, true
			}
		}
		return append(items, Item{Book: book, Quantity: quantity}), true
	})
}

// Remove 移除某本书
func (s *Store) Remove(ctx context.Context, bookID int64) bool {
	return s.mutate(ctx, "remove", func(items []Item) ([]Item, bool) {
		return removeBook(items, bookID)
	})
}

// SetQuantity 直接设置数量,<=0等同于Remove,超过MaxQuantity按上限处理
func (s *Store) SetQuantity(ctx context.Context, bookID int64, quantity int) bool {
	quantity = min(quantity, MaxQuantity)
	if quantity <= 0 {
		return s.mutate(ctx, "remove", func(items []Item) ([]Item, bool) {
			return removeBook(items, bookID)
		})
	}
	return s.mutate(ctx, "set_quantity", func(items []Item) ([]Item, bool) {
		for i := range items {
			if items[i].Book.ID == bookID {
				items[i].Quantity = quantity
				return items, true
			}
		}
		return items, false
	})
}

// Clear 清空购物车
func (s *Store) Clear(ctx context.Context) bool {
	return s.mutate(ctx, "clear", func(items []Item) ([]Item, bool) {
		return nil, true
	})
}

// Items 当前条目快照
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total 总价 = Σ price*quantity
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Subtotal(s.items)
}

// ItemCount 总册数
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// ReadOnly 当前是否处于管理员只读状态
func (s *Store) ReadOnly() bool {
	return s.gate != nil && s.gate.IsAuthenticated()
}

// Subtotal 条目小计之和
func Subtotal(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Book.Price * float64(it.Quantity))
	}
	return sum
}

// mutate 所有修改操作的统一入口
// 1. 管理员会话期间直接返回
// 2. 在副本上修改,成功后替换并持久化
func (s *Store) mutate(ctx context.Context, op string, fn func([]Item) ([]Item, bool)) bool {
	if s.ReadOnly() {
		metrics.IncCounterVec(metrics.CartMutationsTotal, prometheus.Labels{"op": op, "result": "blocked"})
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Item, len(s.items))
	copy(next, s.items)

	next, changed := fn(next)
	if !changed {
		metrics.IncCounterVec(metrics.CartMutationsTotal, prometheus.Labels{"op": op, "result": "noop"})
		return false
	}
	s.items = next
	s.persist(ctx)

	metrics.IncCounterVec(metrics.CartMutationsTotal, prometheus.Labels{"op": op, "result": "applied"})
	return true
}

func (s *Store) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("序列化购物车失败", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, kv.KeyCart, string(data)); err != nil {
		s.logger.Warn("保存购物车失败", zap.Error(err))
	}
}

func removeBook(items []Item, bookID int64) ([]Item, bool) {
	for i := range items {
		if items[i].Book.ID == bookID {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
