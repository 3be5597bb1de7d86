package catalog

// 目录实体
// 教学要点:
// 1. 这些实体由后端维护,店面侧只读,只能通过管理后台的增删改接口修改
// 2. JSON标签与后端REST字段一一对应,实体直接作为后端响应的解码目标
// 3. 价格使用float64,与后端保持一致;金额计算规则见checkout包

// Author 作者
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Genre 类别
type Genre struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Publisher 出版社
type Publisher struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// Book 图书
// 一本书恰好属于一个出版社,可以有零到多个作者和类别
type Book struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	Stock         int       `json:"stock"`
	ISBN          string    `json:"isbn,omitempty"`
	PublishedYear *int      `json:"published_year,omitempty"`
	Authors       []Author  `json:"authors"`
	Genres        []Genre   `json:"genres"`
	PublisherID   int64     `json:"publisher_id,omitempty"`
	Publisher     Publisher `json:"publisher"`
}

// PublisherRef 出版社ID,后端只返回嵌套对象时取对象里的ID
func (b *Book) PublisherRef() int64 {
	if b.PublisherID != 0 {
		return b.PublisherID
	}
	return b.Publisher.ID
}

// InStock 是否有库存
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// BookPage 后端分页结果 {items,total,page,limit,pages}
type BookPage struct {
	Items []Book `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Pages int    `json:"pages"`
}

// Metadata 管理后台图书页的引导数据
// 一次请求拿到图书列表和表单下拉框需要的出版社、作者、类别
type Metadata struct {
	Books struct {
		Items []Book `json:"items"`
	} `json:"books"`
	Publishers []Publisher `json:"publishers"`
	Authors    []Author    `json:"authors"`
	Genres     []Genre     `json:"genres"`
}

// Stats 仪表盘统计
type Stats struct {
	TotalBooks      int     `json:"total_books"`
	TotalOrders     int     `json:"total_orders"`
	TotalAuthors    int     `json:"total_authors"`
	TotalGenres     int     `json:"total_genres"`
	TotalPublishers int     `json:"total_publishers"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// BookInput 新增/编辑图书的请求体
type BookInput struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	ISBN          string  `json:"isbn"`
	PublishedYear *int    `json:"published_year"`
	PublisherID   int64   `json:"publisher_id"`
	AuthorIDs     []int64 `json:"author_ids"`
	GenreIDs      []int64 `json:"genre_ids"`
}

// GenreInput 新增/编辑类别的请求体
type GenreInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PublisherInput 新增/编辑出版社的请求体
type PublisherInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}
