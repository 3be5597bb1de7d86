package router

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
	"github.com/xiebiao/bookstore-storefront/internal/domain/session"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

// fakeBooks 内存版图书后端
type fakeBooks struct {
	mu      sync.Mutex
	books   map[int64]catalog.Book
	nextID  int64
	queries []catalog.Query
	gets    int
}

func newFakeBooks(books ...catalog.Book) *fakeBooks {
	f := &fakeBooks{books: make(map[int64]catalog.Book), nextID: 100}
	for _, b := range books {
		f.books[b.ID] = b
	}
	return f
}

func (f *fakeBooks) all() []catalog.Book {
	out := make([]catalog.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeBooks) ListBooks(_ context.Context, q catalog.Query) (*catalog.BookPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	items := f.all()
	return &catalog.BookPage{Items: items, Total: len(items), Page: q.Page, Limit: q.Limit, Pages: 1}, nil
}

func (f *fakeBooks) GetBook(_ context.Context, id int64) (*catalog.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	b, ok := f.books[id]
	if !ok {
		return nil, apperrors.Upstream(404, "Book not found")
	}
	return &b, nil
}

func (f *fakeBooks) Metadata(_ context.Context, _ int) (*catalog.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	meta := &catalog.Metadata{
		Publishers: []catalog.Publisher{{ID: 1, Name: "Penguin"}},
		Authors:    []catalog.Author{{ID: 1, Name: "Orwell"}},
		Genres:     []catalog.Genre{{ID: 1, Name: "Fiction"}},
	}
	meta.Books.Items = f.all()
	return meta, nil
}

func (f *fakeBooks) Create(_ context.Context, in catalog.BookInput) (*catalog.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b := catalog.Book{ID: f.nextID, Title: in.Title, Price: in.Price, PublisherID: in.PublisherID}
	f.books[b.ID] = b
	return &b, nil
}

func (f *fakeBooks) Update(_ context.Context, id int64, in catalog.BookInput) (*catalog.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok {
		return nil, apperrors.Upstream(404, "Book not found")
	}
	b.Title, b.Price = in.Title, in.Price
	f.books[id] = b
	return &b, nil
}

func (f *fakeBooks) BulkDelete(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.books, id)
	}
	return nil
}

// fakeOrders 下单结果由createFn决定
type fakeOrders struct {
	mu       sync.Mutex
	orders   []order.Order
	drafts   []order.Draft
	createFn func(order.Draft) (*order.Receipt, error)
	statuses []order.Status
}

func (f *fakeOrders) Create(_ context.Context, d order.Draft) (*order.Receipt, error) {
	f.mu.Lock()
	f.drafts = append(f.drafts, d)
	fn := f.createFn
	f.mu.Unlock()
	if fn != nil {
		return fn(d)
	}
	return &order.Receipt{ID: 1}, nil
}

func (f *fakeOrders) List(context.Context) ([]order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.orders), nil
}

func (f *fakeOrders) BulkUpdateStatus(_ context.Context, ids []int64, status order.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
	for i := range f.orders {
		if slices.Contains(ids, f.orders[i].ID) {
			f.orders[i].Status = status
		}
	}
	return nil
}

func (f *fakeOrders) BulkDelete(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = slices.DeleteFunc(f.orders, func(o order.Order) bool { return slices.Contains(ids, o.ID) })
	return nil
}

// fakeGenres 类别后端;deleteFail里的id删除时返回后端拒绝
type fakeGenres struct {
	mu         sync.Mutex
	genres     []catalog.Genre
	deleteFail map[int64]string
	creates    int
}

func (f *fakeGenres) List(context.Context) ([]catalog.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.genres), nil
}

func (f *fakeGenres) Create(_ context.Context, in catalog.GenreInput) (*catalog.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	g := catalog.Genre{ID: int64(len(f.genres) + 50), Name: in.Name, Description: in.Description}
	f.genres = append(f.genres, g)
	return &g, nil
}

func (f *fakeGenres) Update(_ context.Context, id int64, in catalog.GenreInput) (*catalog.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.genres {
		if f.genres[i].ID == id {
			f.genres[i].Name, f.genres[i].Description = in.Name, in.Description
			g := f.genres[i]
			return &g, nil
		}
	}
	return nil, apperrors.Upstream(404, "Genre not found")
}

func (f *fakeGenres) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if detail, ok := f.deleteFail[id]; ok {
		return apperrors.Upstream(400, detail)
	}
	f.genres = slices.DeleteFunc(f.genres, func(g catalog.Genre) bool { return g.ID == id })
	return nil
}

type fakePublishers struct{}

func (fakePublishers) List(context.Context) ([]catalog.Publisher, error) {
	return []catalog.Publisher{{ID: 1, Name: "Penguin"}}, nil
}
func (fakePublishers) Create(_ context.Context, in catalog.PublisherInput) (*catalog.Publisher, error) {
	return &catalog.Publisher{ID: 2, Name: in.Name}, nil
}
func (fakePublishers) Update(_ context.Context, id int64, in catalog.PublisherInput) (*catalog.Publisher, error) {
	return &catalog.Publisher{ID: id, Name: in.Name}, nil
}
func (fakePublishers) Delete(context.Context, int64) error { return nil }

type fakeStats struct{}

func (fakeStats) Stats(context.Context) (*catalog.Stats, error) {
	return &catalog.Stats{TotalBooks: 3, TotalOrders: 2, TotalRevenue: 83.69}, nil
}

// fakeAuth 账号admin/secret;注销过的token校验失败
type fakeAuth struct {
	mu      sync.Mutex
	active  map[string]bool
	seq     int
	logouts int
}

func (a *fakeAuth) Login(_ context.Context, username, password string) (*session.Grant, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if username != "admin" || password != "secret" {
		return nil, apperrors.Upstream(401, "Invalid credentials")
	}
	if a.active == nil {
		a.active = make(map[string]bool)
	}
	a.seq++
	token := "session-" + strconv.Itoa(a.seq)
	a.active[token] = true
	return &session.Grant{SessionToken: token, RequiresPasswordChange: true}, nil
}

func (a *fakeAuth) ChangePassword(_ context.Context, token, oldPassword, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active[token] {
		return apperrors.Upstream(401, "Invalid session")
	}
	if oldPassword != "secret" {
		return apperrors.Upstream(400, "Old password is incorrect")
	}
	return nil
}

func (a *fakeAuth) Logout(_ context.Context, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logouts++
	delete(a.active, token)
	return nil
}

func (a *fakeAuth) Verify(_ context.Context, token string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active[token], nil
}
