// Package integration 对运行中的店面服务做黑盒测试
//
// 需要先启动店面服务及其后端,再设置:
//
//	STOREFRONT_IT_URL=http://localhost:8080 go test ./test/integration/...
//
// 未设置时全部跳过。管理后台用例还需要 STOREFRONT_IT_ADMIN_USER / STOREFRONT_IT_ADMIN_PASSWORD。
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

const visitorHeader = "X-Visitor-Token"

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Visitor 一个浏览器访客
// 第一次请求由服务端签发访客Token,之后每次请求都带上,等同于同一个浏览器标签页
type Visitor struct {
	t       *testing.T
	baseURL string
	token   string
	client  *http.Client
}

// NewVisitor 未配置服务地址时跳过测试
func NewVisitor(t *testing.T) *Visitor {
	t.Helper()
	base := os.Getenv("STOREFRONT_IT_URL")
	if base == "" {
		t.Skip("未设置STOREFRONT_IT_URL,跳过集成测试")
	}
	return &Visitor{
		t:       t,
		baseURL: strings.TrimRight(base, "/") + "/api/v1",
		client:  &http.Client{Timeout: Timeout},
	}
}

// Do 发送请求并解析统一响应
func (v *Visitor) Do(method, path string, data interface{}) *Response {
	v.t.Helper()

	var reader io.Reader
	if data != nil {
		b, err := json.Marshal(data)
		require.NoError(v.t, err, "JSON序列化失败")
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, v.baseURL+path, reader)
	require.NoError(v.t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")
	if v.token != "" {
		req.Header.Set(visitorHeader, v.token)
	}

	resp, err := v.client.Do(req)
	require.NoError(v.t, err, "发送HTTP请求失败")
	defer resp.Body.Close()
	require.Equal(v.t, http.StatusOK, resp.StatusCode)

	if tok := resp.Header.Get(visitorHeader); tok != "" {
		v.token = tok
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(v.t, err, "读取响应体失败")

	var result Response
	require.NoError(v.t, json.Unmarshal(body, &result), "解析JSON响应失败: %s", string(body))
	return &result
}

// Get 发送GET请求
func (v *Visitor) Get(path string) *Response {
	v.t.Helper()
	return v.Do(http.MethodGet, path, nil)
}

// Post 发送POST请求
func (v *Visitor) Post(path string, data interface{}) *Response {
	v.t.Helper()
	return v.Do(http.MethodPost, path, data)
}

// MustOK 断言code=0并把data解析到out
func MustOK(t *testing.T, resp *Response, out interface{}) {
	t.Helper()
	require.Equal(t, 0, resp.Code, "接口失败: %s", resp.Message)
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Data, out), "解析响应数据失败")
	}
}

// BookPage 目录页
type BookPage struct {
	Items []struct {
		ID    int64   `json:"id"`
		Title string  `json:"title"`
		Price float64 `json:"price"`
		Stock int     `json:"stock"`
	} `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// Cart 购物车
type Cart struct {
	Items     []json.RawMessage `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
	ReadOnly  bool              `json:"read_only"`
	Applied   *bool             `json:"applied"`
}

// Checkout 结账状态
type Checkout struct {
	Step    string `json:"step"`
	Open    bool   `json:"open"`
	Pricing struct {
		Total float64 `json:"total"`
	} `json:"pricing"`
	OrderID      string `json:"order_id"`
	ErrorMessage string `json:"error_message"`
}

// Session 管理员会话
type Session struct {
	Authenticated          bool `json:"authenticated"`
	RequiresPasswordChange bool `json:"requires_password_change"`
}
