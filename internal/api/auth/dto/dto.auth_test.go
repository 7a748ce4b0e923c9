package authdto

import (
	"encoding/json"
	"testing"
)

func TestApiKeyUpdateInput_ScopeVang(t *testing.T) {
	var input ApiKeyUpdateInput
	if err := json.Unmarshal([]byte(`{"name":"key moi"}`), &input); err != nil {
		t.Fatalf("unmarshal lỗi: %v", err)
	}
	if input.ScopeSet {
		t.Error("body không gửi scope thì ScopeSet phải là false")
	}
	if input.Name == nil || *input.Name != "key moi" {
		t.Errorf("name phải được parse, có %v", input.Name)
	}
}

func TestApiKeyUpdateInput_ScopeNull(t *testing.T) {
	// scope: null là reset về sentinel "toàn bộ quyền mặc định",
	// khác với không gửi scope
	var input ApiKeyUpdateInput
	if err := json.Unmarshal([]byte(`{"scope":null}`), &input); err != nil {
		t.Fatalf("unmarshal lỗi: %v", err)
	}
	if !input.ScopeSet {
		t.Error("body gửi scope null thì ScopeSet phải là true")
	}
	if input.Scope != nil {
		t.Errorf("scope null phải giữ nil, có %v", input.Scope)
	}
}

func TestApiKeyUpdateInput_ScopeDanhSach(t *testing.T) {
	var input ApiKeyUpdateInput
	if err := json.Unmarshal([]byte(`{"scope":["core.data.read"]}`), &input); err != nil {
		t.Fatalf("unmarshal lỗi: %v", err)
	}
	if !input.ScopeSet {
		t.Error("body gửi scope thì ScopeSet phải là true")
	}
	if len(input.Scope) != 1 || input.Scope[0] != "core.data.read" {
		t.Errorf("scope phải được parse, có %v", input.Scope)
	}
}

func TestApiKeyUpdateInput_ScopeRong(t *testing.T) {
	// Danh sách rỗng khác nil: key không phát hành được token nào
	var input ApiKeyUpdateInput
	if err := json.Unmarshal([]byte(`{"scope":[]}`), &input); err != nil {
		t.Fatalf("unmarshal lỗi: %v", err)
	}
	if !input.ScopeSet {
		t.Error("body gửi scope rỗng thì ScopeSet phải là true")
	}
	if input.Scope == nil || len(input.Scope) != 0 {
		t.Errorf("scope phải là danh sách rỗng không nil, có %#v", input.Scope)
	}
}
