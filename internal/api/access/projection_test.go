package access

import (
	"testing"
)

func TestIsInclusionProjection(t *testing.T) {
	cases := []struct {
		name      string
		p         Projection
		inclusion bool
		wantErr   bool
	}{
		{"nil là exclusion", nil, false, false},
		{"rỗng là exclusion", Projection{}, false, false},
		{"chỉ _id false là exclusion", Projection{"_id": false}, false, false},
		{"có true là inclusion", Projection{"name": true}, true, false},
		{"inclusion kèm _id false hợp lệ", Projection{"name": true, "_id": false}, true, false},
		{"toàn false là exclusion", Projection{"name": false, "size": false}, false, false},
		{"trộn true/false là lỗi", Projection{"name": true, "size": false}, false, true},
	}

	for _, tc := range cases {
		got, err := IsInclusionProjection(tc.p)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: phải trả lỗi validation", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: lỗi không mong đợi: %v", tc.name, err)
			continue
		}
		if got != tc.inclusion {
			t.Errorf("%s: muốn inclusion=%v, có %v", tc.name, tc.inclusion, got)
		}
	}
}

func TestSupplementFields_NilProjection(t *testing.T) {
	got, err := SupplementFields(nil, []string{"access", "publicLevel"})
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if got != nil {
		t.Errorf("projection nil (lấy tất cả) không cần bổ sung, có %v", got)
	}
}

func TestSupplementFields_Inclusion(t *testing.T) {
	original := Projection{"name": true}
	got, err := SupplementFields(original, []string{"access", "publicLevel"})
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if !got["access"] || !got["publicLevel"] || !got["name"] {
		t.Errorf("inclusion phải thêm field bổ sung với true: %v", got)
	}
	if len(original) != 1 {
		t.Error("projection gốc bị sửa tại chỗ")
	}
}

func TestSupplementFields_Exclusion(t *testing.T) {
	original := Projection{"access": false, "meta": false}
	got, err := SupplementFields(original, []string{"access"})
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if _, ok := got["access"]; ok {
		t.Errorf("exclusion phải gỡ field bổ sung khỏi danh sách loại trừ: %v", got)
	}
	if include, ok := got["meta"]; !ok || include {
		t.Errorf("field loại trừ khác phải giữ nguyên: %v", got)
	}
}

func TestRemoveSupplementalFields_Inclusion(t *testing.T) {
	original := Projection{"name": true}
	doc := map[string]interface{}{
		"_id":    "x",
		"name":   "tài liệu",
		"access": "bổ sung",
	}
	if err := RemoveSupplementalFields(doc, original); err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if _, ok := doc["access"]; ok {
		t.Error("field bổ sung phải bị gỡ sau khi dùng")
	}
	if _, ok := doc["name"]; !ok {
		t.Error("field được yêu cầu bị gỡ nhầm")
	}
	if _, ok := doc["_id"]; !ok {
		t.Error("_id phải được giữ khi không bị loại tường minh")
	}
}

func TestRemoveSupplementalFields_InclusionLoaiId(t *testing.T) {
	original := Projection{"name": true, "_id": false}
	doc := map[string]interface{}{"_id": "x", "name": "tài liệu"}
	if err := RemoveSupplementalFields(doc, original); err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if _, ok := doc["_id"]; ok {
		t.Error("_id bị loại tường minh vẫn còn trong doc")
	}
}

func TestRemoveSupplementalFields_Exclusion(t *testing.T) {
	original := Projection{"access": false}
	doc := map[string]interface{}{
		"_id":    "x",
		"name":   "tài liệu",
		"access": "đã bổ sung lại",
	}
	if err := RemoveSupplementalFields(doc, original); err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if _, ok := doc["access"]; ok {
		t.Error("field trong danh sách loại trừ gốc phải bị gỡ")
	}
	if _, ok := doc["name"]; !ok {
		t.Error("field ngoài danh sách loại trừ bị gỡ nhầm")
	}
}

func TestRemoveSupplementalFields_NilOriginal(t *testing.T) {
	doc := map[string]interface{}{"name": "x", "access": "y"}
	if err := RemoveSupplementalFields(doc, nil); err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if len(doc) != 2 {
		t.Error("projection gốc nil thì không được gỡ field nào")
	}
}
