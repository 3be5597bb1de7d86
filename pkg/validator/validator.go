// Package validator 收集字段级校验错误,以 map 形式返回给调用方
package validator

import (
	"regexp"
	"strings"
)

// EmailRX 结账表单使用的宽松邮箱格式: local@domain.tld
var EmailRX = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator 字段名 -> 错误信息
// Errors 为空即校验通过
type Validator struct {
	Errors map[string]string
}

// New 创建空的校验器
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid 没有任何字段错误
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError 记录字段错误,同一字段只保留第一条
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check ok为false时记录错误
//
//	v.Check(validator.NotBlank(name), "customer_name", "Name is required")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// NotBlank 去除首尾空白后非空
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Matches value 是否匹配正则
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// In value 是否在候选列表中
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
