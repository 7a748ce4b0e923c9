package access

import (
	"testing"
)

func TestFieldRegistry_FilterTheoMuc(t *testing.T) {
	reg := NewFieldRegistry()
	reg.ExposeFields("folder", LevelRead, "_id", "name", "description")
	reg.ExposeFields("folder", LevelWrite, "size")
	reg.ExposeFields("folder", LevelSiteAdmin, "internalNote")

	doc := map[string]interface{}{
		"_id":          "x",
		"name":         "tài liệu",
		"description":  "mô tả",
		"size":         123,
		"internalNote": "bí mật",
		"notExposed":   "không đăng ký",
	}

	readView := reg.Filter("folder", doc, LevelRead)
	if _, ok := readView["name"]; !ok {
		t.Error("mức READ phải thấy field name")
	}
	if _, ok := readView["size"]; ok {
		t.Error("mức READ không được thấy field size (WRITE)")
	}
	if _, ok := readView["notExposed"]; ok {
		t.Error("field chưa đăng ký không bao giờ được trả ra")
	}
	if readView["_modelType"] != "folder" {
		t.Errorf("thiếu _modelType: %v", readView["_modelType"])
	}

	writeView := reg.Filter("folder", doc, LevelWrite)
	if _, ok := writeView["size"]; !ok {
		t.Error("mức WRITE phải thấy field size")
	}
	if _, ok := writeView["internalNote"]; ok {
		t.Error("mức WRITE không được thấy field của site admin")
	}

	adminView := reg.Filter("folder", doc, LevelSiteAdmin)
	if _, ok := adminView["internalNote"]; !ok {
		t.Error("site admin phải thấy toàn bộ field đã đăng ký")
	}
}

func TestFieldRegistry_HideFields(t *testing.T) {
	reg := NewFieldRegistry()
	reg.ExposeFields("user", LevelRead, "login", "email")
	reg.HideFields("user", "email")

	doc := map[string]interface{}{"login": "a", "email": "a@b.c"}
	view := reg.Filter("user", doc, LevelSiteAdmin)
	if _, ok := view["email"]; ok {
		t.Error("field đã hide vẫn xuất hiện ở mức site admin")
	}
	if _, ok := view["login"]; !ok {
		t.Error("hide một field không được ảnh hưởng field khác")
	}
}

func TestFieldRegistry_FilterNilDoc(t *testing.T) {
	reg := NewFieldRegistry()
	if reg.Filter("folder", nil, LevelRead) != nil {
		t.Error("doc nil phải trả nil")
	}
}

func TestFieldRegistry_ModelChuaDangKy(t *testing.T) {
	reg := NewFieldRegistry()
	doc := map[string]interface{}{"name": "x"}
	view := reg.Filter("unknown", doc, LevelSiteAdmin)
	if len(view) != 1 || view["_modelType"] != "unknown" {
		t.Errorf("model chưa đăng ký chỉ được trả _modelType, có %v", view)
	}
}
