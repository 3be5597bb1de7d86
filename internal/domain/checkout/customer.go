package checkout

import (
	"strings"

	"github.com/xiebiao/bookstore-storefront/pkg/validator"
)

// CustomerData 收货人信息
type CustomerData struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	PostalCode   string `json:"postal_code"`
}

// FieldErrors 字段名 -> 错误提示
type FieldErrors map[string]string

// Validate 校验收货人信息,合法时返回nil
// 注意邮箱格式校验用的是原始输入(未trim),首尾空格会被判为格式错误
func (d CustomerData) Validate(requireAddress bool) FieldErrors {
	v := validator.New()

	v.Check(validator.NotBlank(d.CustomerName), "customer_name", "Name is required")

	if !validator.NotBlank(d.Email) {
		v.AddError("email", "Email is required")
	} else {
		v.Check(validator.Matches(d.Email, validator.EmailRX), "email", "Invalid email format")
	}

	v.Check(validator.NotBlank(d.Phone), "phone", "Phone is required")

	if requireAddress {
		v.Check(validator.NotBlank(d.Address), "address", "Address is required")
		v.Check(validator.NotBlank(d.PostalCode), "postal_code", "Postal code is required")
	}

	if v.Valid() {
		return nil
	}
	return FieldErrors(v.Errors)
}

// Empty 是否尚未填写
func (d CustomerData) Empty() bool {
	return strings.TrimSpace(d.CustomerName) == "" &&
		strings.TrimSpace(d.Email) == "" &&
		strings.TrimSpace(d.Phone) == ""
}
