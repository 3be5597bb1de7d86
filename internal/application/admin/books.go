package admin

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
)

// DefaultMetadataLimit 图书页一次拉取的图书数
const DefaultMetadataLimit = 100

// BookForm 图书表单
// Price/PublisherID用指针区分"未填写"和0
type BookForm struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	Stock         int      `json:"stock"`
	ISBN          string   `json:"isbn"`
	PublishedYear *int     `json:"published_year"`
	PublisherID   *int64   `json:"publisher_id"`
	AuthorIDs     []int64  `json:"author_ids"`
	GenreIDs      []int64  `json:"genre_ids"`
}

// Complete 标题、价格、出版社为必填
func (f BookForm) Complete() bool {
	return strings.TrimSpace(f.Title) != "" && f.Price != nil && f.PublisherID != nil && *f.PublisherID != 0
}

// Input 转换为后端请求体,调用前需确认Complete
func (f BookForm) Input() catalog.BookInput {
	in := catalog.BookInput{
		Title:         f.Title,
		Description:   f.Description,
		Stock:         f.Stock,
		ISBN:          f.ISBN,
		PublishedYear: f.PublishedYear,
		AuthorIDs:     f.AuthorIDs,
		GenreIDs:      f.GenreIDs,
	}
	if f.Price != nil {
		in.Price = *f.Price
	}
	if f.PublisherID != nil {
		in.PublisherID = *f.PublisherID
	}
	if in.AuthorIDs == nil {
		in.AuthorIDs = []int64{}
	}
	if in.GenreIDs == nil {
		in.GenreIDs = []int64{}
	}
	return in
}

// bookFormOf 用已有图书预填表单
func bookFormOf(b catalog.Book) BookForm {
	price := b.Price
	publisherID := b.PublisherRef()
	f := BookForm{
		Title:         b.Title,
		Description:   b.Description,
		Price:         &price,
		Stock:         b.Stock,
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		PublisherID:   &publisherID,
		AuthorIDs:     make([]int64, 0, len(b.Authors)),
		GenreIDs:      make([]int64, 0, len(b.Genres)),
	}
	for _, a := range b.Authors {
		f.AuthorIDs = append(f.AuthorIDs, a.ID)
	}
	for _, g := range b.Genres {
		f.GenreIDs = append(f.GenreIDs, g.ID)
	}
	return f
}

// Lookups 图书表单下拉框数据
type Lookups struct {
	Publishers []catalog.Publisher `json:"publishers"`
	Authors    []catalog.Author    `json:"authors"`
	Genres     []catalog.Genre     `json:"genres"`
}

// BooksScreen 图书管理页
// 列表和下拉框数据来自同一个metadata请求
type BooksScreen struct {
	*Screen[catalog.Book, BookForm]

	mu      sync.RWMutex
	lookups Lookups
}

// NewBooksScreen 创建图书管理页
func NewBooksScreen(repo catalog.BookRepository, pageSize, metadataLimit int, logger *zap.Logger) *BooksScreen {
	if metadataLimit <= 0 {
		metadataLimit = DefaultMetadataLimit
	}
	bs := &BooksScreen{}

	msgs := MessagesFor("book", "books")
	msgs.FetchRejected = "Failed to fetch books data"

	bs.Screen = NewScreen(
		func(b catalog.Book) int64 { return b.ID },
		pageSize,
		Backend[catalog.Book, BookForm]{
			List: func(ctx context.Context) ([]catalog.Book, error) {
				meta, err := repo.Metadata(ctx, metadataLimit)
				if err != nil {
					return nil, err
				}
				bs.mu.Lock()
				bs.lookups = Lookups{
					Publishers: meta.Publishers,
					Authors:    meta.Authors,
					Genres:     meta.Genres,
				}
				bs.mu.Unlock()
				return meta.Books.Items, nil
			},
			Delete: repo.BulkDelete,
			Create: func(ctx context.Context, f BookForm) error {
				_, err := repo.Create(ctx, f.Input())
				return err
			},
			Update: func(ctx context.Context, id int64, f BookForm) error {
				_, err := repo.Update(ctx, id, f.Input())
				return err
			},
			FormOf:   bookFormOf,
			Complete: BookForm.Complete,
		},
		msgs,
		logger,
	)
	return bs
}

// Lookups 出版社/作者/类别列表
func (b *BooksScreen) Lookups() Lookups {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lookups
}

// Reset 清空页面和下拉框数据
func (b *BooksScreen) Reset() {
	b.Screen.Reset()
	b.mu.Lock()
	b.lookups = Lookups{}
	b.mu.Unlock()
}
