package checkout

import (
	"math"

	"github.com/xiebiao/bookstore-storefront/internal/domain/cart"
)

// 计价参数
const (
	TaxRate  = 0.23 // 增值税率
	Shipping = 4.99 // 固定运费
)

// Pricing 订单金额明细
type Pricing struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Compute 计算订单金额
// total = floor((subtotal + tax + shipping) * 100) / 100,截断而不是四舍五入。
// 汇总页和支付页都调用这里,两处金额必须一致。
func Compute(items []cart.Item) Pricing {
	subtotal := cart.Subtotal(items)
	// 显式转换阻止编译器把乘加融合成FMA,保证和逐步计算的结果一致
	tax := float64(subtotal * TaxRate)
	sum := float64(subtotal + tax + Shipping)
	total := math.Floor(float64(sum*100)) / 100

	return Pricing{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: Shipping,
		Total:    total,
	}
}
