// Package authsvc chứa các service của domain auth: user, group, token,
// api key và scope registry.
package authsvc

import (
	"sort"

	"github.com/manthey/girder/internal/common"
)

// Các scope chuẩn của hệ thống
const (
	// ScopeUserAuth - danh tính đầy đủ của user đã xác thực; scope của token đăng nhập
	ScopeUserAuth = "core.user_auth"

	// ScopeDataRead - đọc dữ liệu user có quyền xem
	ScopeDataRead = "core.data.read"

	// ScopeDataWrite - ghi dữ liệu user có quyền sửa
	ScopeDataWrite = "core.data.write"

	// ScopeUserInfoRead - đọc thông tin public của user
	ScopeUserInfoRead = "core.user_info.read"

	// ScopeSettingsRead - đọc cấu hình hệ thống, chỉ admin cấp được
	ScopeSettingsRead = "core.setting.read"
)

// ScopeInfo mô tả một scope trong catalog
type ScopeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AdminOnly   bool   `json:"-"`
}

// ScopeCatalog là catalog scope trả về cho client, tách theo quyền cấp
type ScopeCatalog struct {
	Custom      []ScopeInfo `json:"custom"`
	AdminCustom []ScopeInfo `json:"adminCustom"`
}

// ScopeRegistry liệt kê các scope hợp lệ và cờ admin-only của chúng.
// Build một lần lúc khởi động rồi chỉ đọc; truyền by reference vào các
// service cần validate scope.
type ScopeRegistry struct {
	scopes map[string]ScopeInfo
	order  []string
}

// NewScopeRegistry tạo registry rỗng
func NewScopeRegistry() *ScopeRegistry {
	return &ScopeRegistry{scopes: make(map[string]ScopeInfo)}
}

// Register đăng ký một scope; đăng ký lại cùng ID sẽ ghi đè mô tả
func (r *ScopeRegistry) Register(info ScopeInfo) {
	if _, exists := r.scopes[info.ID]; !exists {
		r.order = append(r.order, info.ID)
	}
	r.scopes[info.ID] = info
}

// NewDefaultScopeRegistry tạo registry với catalog scope chuẩn của hệ thống
func NewDefaultScopeRegistry() *ScopeRegistry {
	r := NewScopeRegistry()
	r.Register(ScopeInfo{ID: ScopeUserAuth, Name: "Full authentication", Description: "Toàn quyền thao tác với danh tính user"})
	r.Register(ScopeInfo{ID: ScopeDataRead, Name: "Read data", Description: "Đọc dữ liệu user có quyền xem"})
	r.Register(ScopeInfo{ID: ScopeDataWrite, Name: "Write data", Description: "Ghi dữ liệu user có quyền sửa"})
	r.Register(ScopeInfo{ID: ScopeUserInfoRead, Name: "Read user info", Description: "Đọc thông tin public của user"})
	r.Register(ScopeInfo{ID: ScopeSettingsRead, Name: "Read settings", Description: "Đọc cấu hình hệ thống", AdminOnly: true})
	return r
}

// ValidateScopes kiểm tra danh sách scope theo quyền của người cấp.
// Scope không tồn tại, hoặc scope admin-only do non-admin yêu cầu, đều bị
// gom lại và báo lỗi một lần với danh sách đã sort để thông điệp ổn định.
// scopes nil là sentinel "full default" và luôn hợp lệ.
func (r *ScopeRegistry) ValidateScopes(scopes []string, granterIsAdmin bool) error {
	if scopes == nil {
		return nil
	}

	invalid := []string{}
	for _, s := range scopes {
		info, exists := r.scopes[s]
		if !exists || (info.AdminOnly && !granterIsAdmin) {
			invalid = append(invalid, s)
		}
	}

	if len(invalid) > 0 {
		return common.NewInvalidScopesError(invalid)
	}
	return nil
}

// Catalog trả về danh sách scope theo thứ tự đăng ký, tách custom/adminCustom
func (r *ScopeRegistry) Catalog() *ScopeCatalog {
	catalog := &ScopeCatalog{Custom: []ScopeInfo{}, AdminCustom: []ScopeInfo{}}
	for _, id := range r.order {
		info := r.scopes[id]
		if info.AdminOnly {
			catalog.AdminCustom = append(catalog.AdminCustom, info)
		} else {
			catalog.Custom = append(catalog.Custom, info)
		}
	}
	return catalog
}

// DefaultUserScopes là tập scope mặc định khi key có scope nil
func (r *ScopeRegistry) DefaultUserScopes() []string {
	return []string{ScopeUserAuth}
}

// SortedIDs trả về toàn bộ scope ID đã sort (phục vụ debug/log)
func (r *ScopeRegistry) SortedIDs() []string {
	ids := make([]string, 0, len(r.scopes))
	for id := range r.scopes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
