package authsvc

import (
	"errors"
	"testing"

	"github.com/manthey/girder/internal/common"
)

func TestScopeRegistry_ValidateScopes_NilLaSentinel(t *testing.T) {
	reg := NewDefaultScopeRegistry()
	if err := reg.ValidateScopes(nil, false); err != nil {
		t.Errorf("scope nil (full default) phải luôn hợp lệ, có lỗi: %v", err)
	}
}

func TestScopeRegistry_ValidateScopes_HopLe(t *testing.T) {
	reg := NewDefaultScopeRegistry()
	if err := reg.ValidateScopes([]string{ScopeDataRead, ScopeDataWrite}, false); err != nil {
		t.Errorf("scope đã đăng ký phải hợp lệ, có lỗi: %v", err)
	}
}

func TestScopeRegistry_ValidateScopes_GomLoiVaSort(t *testing.T) {
	reg := NewDefaultScopeRegistry()

	// Hai scope không tồn tại, báo một lần, sort theo tên
	err := reg.ValidateScopes([]string{"zzz.fake", ScopeDataRead, "aaa.fake"}, false)
	if err == nil {
		t.Fatal("scope không tồn tại phải bị từ chối")
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("lỗi phải là *common.Error, có %T", err)
	}
	want := "Invalid scopes: aaa.fake, zzz.fake."
	if appErr.Message != want {
		t.Errorf("thông điệp lỗi sai: muốn %q, có %q", want, appErr.Message)
	}
}

func TestScopeRegistry_ValidateScopes_AdminOnly(t *testing.T) {
	reg := NewDefaultScopeRegistry()

	// Non-admin yêu cầu scope admin-only: bị từ chối như scope không tồn tại
	err := reg.ValidateScopes([]string{ScopeSettingsRead}, false)
	if err == nil {
		t.Fatal("non-admin không được cấp scope admin-only")
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("lỗi phải là *common.Error, có %T", err)
	}
	want := "Invalid scopes: core.setting.read."
	if appErr.Message != want {
		t.Errorf("thông điệp lỗi sai: muốn %q, có %q", want, appErr.Message)
	}

	// Admin cấp được
	if err := reg.ValidateScopes([]string{ScopeSettingsRead}, true); err != nil {
		t.Errorf("admin phải cấp được scope admin-only, có lỗi: %v", err)
	}
}

func TestScopeRegistry_Catalog_TachNhom(t *testing.T) {
	reg := NewDefaultScopeRegistry()
	catalog := reg.Catalog()

	for _, info := range catalog.Custom {
		if info.ID == ScopeSettingsRead {
			t.Error("scope admin-only lọt vào nhóm custom")
		}
	}
	foundAdmin := false
	for _, info := range catalog.AdminCustom {
		if info.ID == ScopeSettingsRead {
			foundAdmin = true
		}
	}
	if !foundAdmin {
		t.Error("nhóm adminCustom thiếu scope admin-only")
	}
	if len(catalog.Custom) == 0 {
		t.Error("nhóm custom rỗng")
	}
}
