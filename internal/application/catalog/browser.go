package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// ErrSuperseded 查询结果到达前已有更新的查询
var ErrSuperseded = apperrors.New(apperrors.ErrCodeSuperseded, "查询已被新的请求取代")

// Browser 店面目录浏览
// 设计说明:
// 1. 只保存"当前查询 + 当前这一页结果",筛选和排序都由后端完成
// 2. 任何筛选条件变化都把页码重置为1
// 3. 新的Load会取消上一次未完成的Load,过期结果直接丢弃
type Browser struct {
	mu       sync.Mutex
	query    catalog.Query
	result   *catalog.BookPage
	selected *catalog.Book

	seq    uint64
	cancel context.CancelFunc

	books  catalog.BookReader
	logger *zap.Logger
}

// NewBrowser 创建目录浏览器,pageSize<=0时使用默认每页12本
func NewBrowser(books catalog.BookReader, pageSize int, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{
		query:  catalog.NewQuery(pageSize),
		books:  books,
		logger: logger,
	}
}

// Query 当前查询
func (b *Browser) Query() catalog.Query {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// Result 当前结果页,尚未加载时为nil
func (b *Browser) Result() *catalog.BookPage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result
}

// SetFilter 替换筛选条件;条件有变化时页码回到1,返回是否变化
func (b *Browser) SetFilter(f catalog.Filter) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.query.Filter.Equal(f) {
		return false
	}
	b.query.Filter = f
	b.query.Page = 1
	return true
}

// SetPage 只修改页码
func (b *Browser) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	b.mu.Lock()
	b.query.Page = page
	b.mu.Unlock()
}

// Load 按当前查询拉取一页图书
func (b *Browser) Load(ctx context.Context) (*catalog.BookPage, error) {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.seq++
	seq := b.seq
	loadCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	q := b.query
	b.mu.Unlock()

	page, err := b.books.ListBooks(loadCtx, q)
	cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq != seq {
		b.logger.Debug("丢弃过期的目录查询结果", zap.Uint64("seq", seq))
		return nil, ErrSuperseded
	}
	b.cancel = nil
	if err != nil {
		return nil, err
	}
	b.result = page
	return page, nil
}

// Book 打开图书详情
func (b *Browser) Book(ctx context.Context, id int64) (*catalog.Book, error) {
	book, err := b.books.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.selected = book
	b.mu.Unlock()
	return book, nil
}

// Selected 当前打开的图书详情
func (b *Browser) Selected() *catalog.Book {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// CloseDetail 关闭详情
func (b *Browser) CloseDetail() {
	b.mu.Lock()
	b.selected = nil
	b.mu.Unlock()
}

// Close 取消正在进行的查询
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.seq++
}
