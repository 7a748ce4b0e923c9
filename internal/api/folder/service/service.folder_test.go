package foldersvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manthey/girder/internal/api/access"
	foldermodels "github.com/manthey/girder/internal/api/folder/models"
)

func testFieldRegistry() *access.FieldRegistry {
	registry := access.NewFieldRegistry()
	foldermodels.RegisterFields(registry)
	return registry
}

func TestProjectAndFilter_InclusionGiuModelType(t *testing.T) {
	registry := testFieldRegistry()
	projection := access.Projection{"name": true}

	// Doc thô như đọc từ Mongo với projection đã bổ sung field ACL
	doc := map[string]interface{}{
		"_id":         primitive.NewObjectID(),
		"name":        "tài liệu",
		"access":      map[string]interface{}{},
		"publicLevel": int32(0),
	}

	filtered, err := projectAndFilter(registry, doc, projection, access.LevelRead)
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}

	if filtered["_modelType"] != foldermodels.ModelType {
		t.Errorf("inclusion projection không được gỡ _modelType, có %v", filtered)
	}
	if _, ok := filtered["name"]; !ok {
		t.Error("field được yêu cầu bị gỡ nhầm")
	}
	if _, ok := filtered["access"]; ok {
		t.Error("field ACL bổ sung phải bị gỡ khi caller không yêu cầu")
	}
	if _, ok := filtered["publicLevel"]; ok {
		t.Error("field ACL bổ sung phải bị gỡ khi caller không yêu cầu")
	}
}

func TestProjectAndFilter_ExclusionLocTheoMuc(t *testing.T) {
	registry := testFieldRegistry()
	projection := access.Projection{"description": false}

	doc := map[string]interface{}{
		"_id":         primitive.NewObjectID(),
		"name":        "tài liệu",
		"description": "mô tả",
		"access":      map[string]interface{}{},
	}

	filtered, err := projectAndFilter(registry, doc, projection, access.LevelRead)
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}

	if _, ok := filtered["description"]; ok {
		t.Error("field bị loại tường minh vẫn còn trong kết quả")
	}
	if _, ok := filtered["access"]; ok {
		t.Error("field access chỉ thấy được từ mức ADMIN")
	}
	if filtered["_modelType"] != foldermodels.ModelType {
		t.Errorf("kết quả phải mang tag _modelType, có %v", filtered)
	}
}

func TestProjectAndFilter_NilProjectionMucAdmin(t *testing.T) {
	registry := testFieldRegistry()

	doc := map[string]interface{}{
		"_id":    primitive.NewObjectID(),
		"name":   "tài liệu",
		"access": map[string]interface{}{},
	}

	filtered, err := projectAndFilter(registry, doc, nil, access.LevelAdmin)
	if err != nil {
		t.Fatalf("lỗi không mong đợi: %v", err)
	}
	if _, ok := filtered["access"]; !ok {
		t.Error("mức ADMIN phải thấy field access")
	}
	if filtered["_modelType"] != foldermodels.ModelType {
		t.Errorf("kết quả phải mang tag _modelType, có %v", filtered)
	}
}

func TestAccessibleFilter_AnDanh(t *testing.T) {
	filter := accessibleFilter(nil)
	cond, ok := filter["publicLevel"].(bson.M)
	if !ok || cond["$exists"] != true {
		t.Errorf("caller ẩn danh chỉ truy vấn được document public, có %v", filter)
	}
	if len(filter) != 1 {
		t.Errorf("filter ẩn danh không được có điều kiện khác: %v", filter)
	}
}

func TestAccessibleFilter_SiteAdmin(t *testing.T) {
	filter := accessibleFilter(&access.Caller{ID: primitive.NewObjectID(), SiteAdmin: true})
	if len(filter) != 0 {
		t.Errorf("site admin truy vấn mọi document, filter phải rỗng: %v", filter)
	}
}

func TestAccessibleFilter_UserCoGroup(t *testing.T) {
	userID := primitive.NewObjectID()
	groupID := primitive.NewObjectID()
	filter := accessibleFilter(&access.Caller{ID: userID, GroupIDs: []primitive.ObjectID{groupID}})

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("filter phải là $or của public, grant user và grant group: %v", filter)
	}
	if or[1]["access.users.id"] != userID {
		t.Errorf("nhánh grant user phải match theo ID caller: %v", or[1])
	}
	in, ok := or[2]["access.groups.id"].(bson.M)
	if !ok {
		t.Fatalf("nhánh grant group phải match bằng $in: %v", or[2])
	}
	ids, ok := in["$in"].([]primitive.ObjectID)
	if !ok || len(ids) != 1 || ids[0] != groupID {
		t.Errorf("danh sách group trong $in sai: %v", in)
	}
}

func TestAccessibleFilter_UserKhongGroup(t *testing.T) {
	filter := accessibleFilter(&access.Caller{ID: primitive.NewObjectID()})
	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("caller không có group thì $or chỉ gồm public và grant user: %v", filter)
	}
}
