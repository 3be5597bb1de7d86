package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-storefront/internal/domain/catalog"
	"github.com/xiebiao/bookstore-storefront/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:   srv.URL,
		Timeout:   2 * time.Second,
		BasicAuth: BasicAuth{Enabled: true, Username: "shop", Password: "s3cret"},
		Breaker:   BreakerConfig{ConsecutiveFailures: 3, OpenTimeout: time.Minute},
	}, nil), srv
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListBooks_QueryAndAuth(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "shop", user)
		assert.Equal(t, "s3cret", pass)

		assert.Equal(t, "/api/v1/books/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, []string{"1", "4"}, q["genre_ids"])
		assert.Equal(t, "go", q.Get("search"))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"items": []map[string]interface{}{{"id": 9, "title": "Go", "price": 12.5, "stock": 3}},
			"total": 13, "page": 2, "limit": 12, "pages": 2,
		})
	})

	q := catalog.NewQuery(12)
	q.Page = 2
	q.Search = "go"
	q.GenreIDs = []int64{1, 4}

	page, err := NewBookRepository(client).ListBooks(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 13, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Go", page.Items[0].Title)
}

func TestClient_BasicAuthDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]int{"total_books": 4})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, nil)
	stats, err := NewStatsReader(client).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalBooks)
}

func TestClient_UpstreamDetail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   interface{}
		want   string
	}{
		{"string detail", http.StatusBadRequest, map[string]string{"detail": "Out of stock"}, "Out of stock"},
		{"validation list", http.StatusUnprocessableEntity,
			map[string]interface{}{"detail": []map[string]string{{"msg": "field required"}, {"msg": "bad email"}}},
			"field required; bad email"},
		{"no detail", http.StatusNotFound, map[string]string{"error": "x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := NewOrderRepository(client).Create(context.Background(), order.Draft{})
			require.Error(t, err)
			assert.True(t, apperrors.IsUpstreamRejected(err))
			assert.Equal(t, tt.want, apperrors.GetAppError(err).Message)
		})
	}
}

func TestClient_RequestBodies(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/api/v1/orders/bulk-status":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.JSONEq(t, `{"order_ids":[1,2],"status":"done"}`, string(raw))
		case "/api/v1/books/bulk-delete":
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.JSONEq(t, `{"book_ids":[7]}`, string(raw))
		case "/api/v1/genres/5":
			assert.Equal(t, http.MethodDelete, r.Method)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	require.NoError(t, NewOrderRepository(client).BulkUpdateStatus(ctx, []int64{1, 2}, order.StatusDone))
	require.NoError(t, NewBookRepository(client).BulkDelete(ctx, []int64{7}))
	require.NoError(t, NewGenreRepository(client).Delete(ctx, 5))
}

func TestClient_CreateOrderReturnsReceipt(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var draft order.Draft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "Ann", draft.CustomerName)
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": 42, "status": "pending"})
	})

	receipt, err := NewOrderRepository(client).Create(context.Background(), order.Draft{CustomerName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), receipt.ID)
}

func TestClient_BreakerOpensOnServerErrorsOnly(t *testing.T) {
	var hits atomic.Int32
	status := atomic.Int32{}
	status.Store(http.StatusBadRequest)

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, int(status.Load()), map[string]string{"detail": "nope"})
	})
	ctx := context.Background()
	genres := NewGenreRepository(client)

	// 4xx是正常业务响应,不触发熔断
	for i := 0; i < 5; i++ {
		_, err := genres.List(ctx)
		assert.True(t, apperrors.IsUpstreamRejected(err))
	}
	assert.Equal(t, int32(5), hits.Load())

	status.Store(http.StatusInternalServerError)
	for i := 0; i < 3; i++ {
		_, err := genres.List(ctx)
		assert.True(t, apperrors.IsUpstreamRejected(err))
	}
	assert.Equal(t, int32(8), hits.Load())

	// 连续3次5xx后熔断,请求不再发出
	_, err := genres.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.Unavailable(nil)))
	assert.Equal(t, int32(8), hits.Load())
}

func TestBreakerSuccess(t *testing.T) {
	assert.True(t, breakerSuccess(nil))
	assert.True(t, breakerSuccess(&statusError{status: http.StatusNotFound}))
	assert.False(t, breakerSuccess(&statusError{status: http.StatusBadGateway}))
	assert.False(t, breakerSuccess(errors.New("connection refused")))
}

func TestClient_TransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url, Timeout: time.Second}, nil)
	_, err := NewBookRepository(client).GetBook(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstreamUnavailable, apperrors.GetAppError(err).Code)
}

func TestAuthenticator_Verify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"valid", http.StatusOK, `{"valid": true, "admin_id": 1}`, true},
		{"invalid", http.StatusOK, `{"valid": false}`, false},
		{"valid despite status", http.StatusUnauthorized, `{"valid": true}`, true},
		{"truthy string", http.StatusOK, `{"valid": "true"}`, false},
		{"not json", http.StatusOK, `<html>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/admin/verify", r.URL.Path)
				assert.Equal(t, "tok", r.URL.Query().Get("token"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			valid, err := NewAuthenticator(client).Verify(context.Background(), "tok")
			require.NoError(t, err)
			assert.Equal(t, tt.want, valid)
		})
	}
}

func TestAuthenticator_LoginAndChangePassword(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/admin/login":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"session_token": "abc", "requires_password_change": true,
			})
		case "/api/v1/admin/change-password":
			assert.Equal(t, "abc", r.URL.Query().Get("token"))
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Old password is incorrect"})
		}
	})
	auth := NewAuthenticator(client)
	ctx := context.Background()

	grant, err := auth.Login(ctx, "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc", grant.SessionToken)
	assert.True(t, grant.RequiresPasswordChange)

	err = auth.ChangePassword(ctx, "abc", "old", "new")
	assert.Equal(t, "Old password is incorrect", apperrors.DetailOr(err, "Password change failed"))
}
