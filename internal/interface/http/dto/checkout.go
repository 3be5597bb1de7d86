package dto

import "github.com/xiebiao/bookstore-storefront/internal/domain/checkout"

// CustomerRequest 收货人信息
// 不使用binding校验:字段级错误由结账流程给出,文案与页面一致
type CustomerRequest struct {
	CustomerName string `json:"customer_name" example:"Ann Lee"`
	Email        string `json:"email" example:"ann@example.com"`
	Phone        string `json:"phone" example:"+1 555 0100"`
	Address      string `json:"address" example:"1 Main St"`
	PostalCode   string `json:"postal_code" example:"10001"`
}

// Data 转换为领域对象
func (r CustomerRequest) Data() checkout.CustomerData {
	return checkout.CustomerData{
		CustomerName: r.CustomerName,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		PostalCode:   r.PostalCode,
	}
}

// CustomerInvalidData 收货人信息校验失败时的响应数据
type CustomerInvalidData struct {
	Fields   checkout.FieldErrors `json:"fields"`
	Checkout checkout.View        `json:"checkout"`
}
