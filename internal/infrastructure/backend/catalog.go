package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
)

const apiPrefix = "/api/v1"

// BookRepository 图书仓储的REST实现
type BookRepository struct {
	client *Client
}

// NewBookRepository 创建图书仓储
func NewBookRepository(client *Client) *BookRepository {
	return &BookRepository{client: client}
}

// ListBooks 分页查询图书
func (r *BookRepository) ListBooks(ctx context.Context, q catalog.Query) (*catalog.BookPage, error) {
	var page catalog.BookPage
	err := r.client.do(ctx, call{
		endpoint: "books.list",
		method:   http.MethodGet,
		path:     apiPrefix + "/books/",
		query:    q.Values(),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetBook 图书详情
func (r *BookRepository) GetBook(ctx context.Context, id int64) (*catalog.Book, error) {
	var book catalog.Book
	err := r.client.do(ctx, call{
		endpoint: "books.get",
		method:   http.MethodGet,
		path:     idPath(apiPrefix+"/books", id),
	}, &book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Metadata 图书管理页的引导数据
func (r *BookRepository) Metadata(ctx context.Context, limit int) (*catalog.Metadata, error) {
	var meta catalog.Metadata
	err := r.client.do(ctx, call{
		endpoint: "books.metadata",
		method:   http.MethodGet,
		path:     apiPrefix + "/books/metadata",
		query:    url.Values{"limit": {strconv.Itoa(limit)}},
	}, &meta)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// Create 新增图书
func (r *BookRepository) Create(ctx context.Context, in catalog.BookInput) (*catalog.Book, error) {
	var book catalog.Book
	err := r.client.do(ctx, call{
		endpoint: "books.create",
		method:   http.MethodPost,
		path:     apiPrefix + "/books/",
		body:     in,
	}, &book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update 修改图书
func (r *BookRepository) Update(ctx context.Context, id int64, in catalog.BookInput) (*catalog.Book, error) {
	var book catalog.Book
	err := r.client.do(ctx, call{
		endpoint: "books.update",
		method:   http.MethodPut,
		path:     idPath(apiPrefix+"/books", id),
		body:     in,
	}, &book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// BulkDelete 批量删除图书
func (r *BookRepository) BulkDelete(ctx context.Context, ids []int64) error {
	return r.client.do(ctx, call{
		endpoint: "books.bulk_delete",
		method:   http.MethodDelete,
		path:     apiPrefix + "/books/bulk-delete",
		body:     map[string][]int64{"book_ids": ids},
	}, nil)
}

// taxonomy 类别和出版社共用的CRUD实现
// T为实体类型,I为请求体类型
type taxonomy[T any, I any] struct {
	client   *Client
	resource string // genres / publishers
}

func (r taxonomy[T, I]) list(ctx context.Context) ([]T, error) {
	var items []T
	err := r.client.do(ctx, call{
		endpoint: r.resource + ".list",
		method:   http.MethodGet,
		path:     apiPrefix + "/" + r.resource + "/",
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r taxonomy[T, I]) create(ctx context.Context, in I) (*T, error) {
	var item T
	err := r.client.do(ctx, call{
		endpoint: r.resource + ".create",
		method:   http.MethodPost,
		path:     apiPrefix + "/" + r.resource + "/",
		body:     in,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r taxonomy[T, I]) update(ctx context.Context, id int64, in I) (*T, error) {
	var item T
	err := r.client.do(ctx, call{
		endpoint: r.resource + ".update",
		method:   http.MethodPut,
		path:     idPath(apiPrefix+"/"+r.resource, id),
		body:     in,
	}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r taxonomy[T, I]) delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, call{
		endpoint: r.resource + ".delete",
		method:   http.MethodDelete,
		path:     idPath(apiPrefix+"/"+r.resource, id),
	}, nil)
}

// GenreRepository 类别仓储的REST实现
type GenreRepository struct {
	rest taxonomy[catalog.Genre, catalog.GenreInput]
}

// NewGenreRepository 创建类别仓储
func NewGenreRepository(client *Client) *GenreRepository {
	return &GenreRepository{rest: taxonomy[catalog.Genre, catalog.GenreInput]{client: client, resource: "genres"}}
}

func (r *GenreRepository) List(ctx context.Context) ([]catalog.Genre, error) {
	return r.rest.list(ctx)
}

func (r *GenreRepository) Create(ctx context.Context, in catalog.GenreInput) (*catalog.Genre, error) {
	return r.rest.create(ctx, in)
}

func (r *GenreRepository) Update(ctx context.Context, id int64, in catalog.GenreInput) (*catalog.Genre, error) {
	return r.rest.update(ctx, id, in)
}

func (r *GenreRepository) Delete(ctx context.Context, id int64) error {
	return r.rest.delete(ctx, id)
}

// PublisherRepository 出版社仓储的REST实现
type PublisherRepository struct {
	rest taxonomy[catalog.Publisher, catalog.PublisherInput]
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(client *Client) *PublisherRepository {
	return &PublisherRepository{rest: taxonomy[catalog.Publisher, catalog.PublisherInput]{client: client, resource: "publishers"}}
}

func (r *PublisherRepository) List(ctx context.Context) ([]catalog.Publisher, error) {
	return r.rest.list(ctx)
}

func (r *PublisherRepository) Create(ctx context.Context, in catalog.PublisherInput) (*catalog.Publisher, error) {
	return r.rest.create(ctx, in)
}

func (r *PublisherRepository) Update(ctx context.Context, id int64, in catalog.PublisherInput) (*catalog.Publisher, error) {
	return r.rest.update(ctx, id, in)
}

func (r *PublisherRepository) Delete(ctx context.Context, id int64) error {
	return r.rest.delete(ctx, id)
}

// StatsReader 仪表盘统计
type StatsReader struct {
	client *Client
}

// NewStatsReader 创建统计读取器
func NewStatsReader(client *Client) *StatsReader {
	return &StatsReader{client: client}
}

func (r *StatsReader) Stats(ctx context.Context) (*catalog.Stats, error) {
	var stats catalog.Stats
	err := r.client.do(ctx, call{
		endpoint: "stats.get",
		method:   http.MethodGet,
		path:     apiPrefix + "/stats/",
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
