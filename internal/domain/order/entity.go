package order

// Status 订单状态
// 后端只有两种状态,管理员可以在两者之间来回切换
type Status string

const (
	StatusPending Status = "pending" // 待处理
	StatusDone    Status = "done"    // 已完成
)

// Valid 是否为合法状态
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusDone
}

// String 实现Stringer接口(方便日志输出)
func (s Status) String() string {
	return string(s)
}

// Order 后端返回的订单视图
// 教学要点:
// 1. 订单由后端创建和持久化,店面只负责提交草稿和在后台展示
// 2. Item.PriceAtPurchase 是下单时的单价快照,图书改价后历史订单金额不变
type Order struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Status       Status    `json:"status"`
	TotalPrice   float64   `json:"total_price"`
	Items        []Item    `json:"items"`
	CreatedAt    string    `json:"created_at,omitempty"` // 后端原样返回,可能不带时区
}

// Item 订单明细
type Item struct {
	ID              int64    `json:"id"`
	OrderID         int64    `json:"order_id"`
	BookID          int64    `json:"book_id"`
	Quantity        int      `json:"quantity"`
	PriceAtPurchase float64  `json:"price_at_purchase"`
	Book            *BookRef `json:"book,omitempty"`
}

// BookRef 明细里附带的图书摘要
type BookRef struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// LineTotal 明细小计
func (i Item) LineTotal() float64 {
	return i.PriceAtPurchase * float64(i.Quantity)
}

// ItemCount 订单内图书总册数
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// Line 下单明细:只传图书ID和数量,价格以后端为准
type Line struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}

// Draft 提交给后端的订单草稿
type Draft struct {
	CustomerName string  `json:"customer_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address,omitempty"`
	PostalCode   string  `json:"postal_code,omitempty"`
	TotalPrice   float64 `json:"total_price"`
	Items        []Line  `json:"items"`
}

// Receipt 创建订单成功后后端返回的回执
type Receipt struct {
	ID int64 `json:"id"`
}
