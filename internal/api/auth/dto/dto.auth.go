// Package authdto chứa các DTO đầu vào của domain auth.
package authdto

import (
	"encoding/json"
)

// UserRegisterInput đầu vào đăng ký user mới
type UserRegisterInput struct {
	Login    string `json:"login" validate:"required,min=3,max=64,no_xss"`
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name" validate:"omitempty,max=128,no_xss"`
	Password string `json:"password" validate:"required,strong_password"`
}

// UserLoginInput đầu vào đăng nhập. Days > 0 rút ngắn thời hạn token.
type UserLoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
	Days     int    `json:"days" validate:"omitempty,min=0"`
}

// GroupCreateInput đầu vào tạo group
type GroupCreateInput struct {
	Name        string `json:"name" validate:"required,min=1,max=128,no_xss"`
	Description string `json:"description" validate:"omitempty,max=512,no_xss"`
}

// GroupMemberInput đầu vào thêm/gỡ thành viên group
type GroupMemberInput struct {
	UserID string `json:"userId" validate:"required"`
}

// ApiKeyCreateInput đầu vào tạo API key. Scope nil = toàn bộ quyền mặc định.
type ApiKeyCreateInput struct {
	Name          string   `json:"name" validate:"required,min=1,max=128,no_xss"`
	Scope         []string `json:"scope"`
	TokenDuration int      `json:"tokenDuration" validate:"omitempty,min=0"`
}

// ApiKeyUpdateInput đầu vào sửa API key. Field nil nghĩa là không đổi.
// ScopeSet phân biệt "không gửi scope" (không đổi) với "scope: null"
// (đặt về sentinel full default).
type ApiKeyUpdateInput struct {
	Name          *string  `json:"name"`
	Active        *bool    `json:"active"`
	TokenDuration *int     `json:"tokenDuration"`
	Scope         []string `json:"scope"`
	ScopeSet      bool     `json:"-"`
}

// UnmarshalJSON ghi nhận scope có xuất hiện trong body hay không
func (i *ApiKeyUpdateInput) UnmarshalJSON(data []byte) error {
	type alias ApiKeyUpdateInput
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	_, scopeSet := raw["scope"]

	*i = ApiKeyUpdateInput(a)
	i.ScopeSet = scopeSet
	return nil
}

// ApiKeyExchangeInput đầu vào đổi key lấy token. Duration > 0 rút ngắn thời hạn.
type ApiKeyExchangeInput struct {
	Key      string `json:"key" validate:"required"`
	Duration int    `json:"duration" validate:"omitempty,min=0"`
}
