package access

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manthey/girder/internal/common"
)

func TestResolveLevel_AnDanh(t *testing.T) {
	acl := &Control{}
	acl.SetUser(primitive.NewObjectID(), levelPtr(LevelAdmin))

	// Không public: ẩn danh không có quyền gì
	if got := ResolveLevel(acl, nil, nil); got != LevelNone {
		t.Errorf("ẩn danh trên document private phải LevelNone, có %d", got)
	}

	// Public READ: ẩn danh đọc được
	if got := ResolveLevel(acl, levelPtr(LevelRead), nil); got != LevelRead {
		t.Errorf("ẩn danh trên document public phải LevelRead, có %d", got)
	}
}

func TestResolveLevel_SiteAdminVuotACL(t *testing.T) {
	acl := &Control{}
	caller := &Caller{ID: primitive.NewObjectID(), SiteAdmin: true}

	if got := ResolveLevel(acl, nil, caller); got != LevelSiteAdmin {
		t.Errorf("site admin phải có LevelSiteAdmin bất kể ACL, có %d", got)
	}
}

func TestResolveLevel_LayMaxCacNguon(t *testing.T) {
	userID := primitive.NewObjectID()
	groupID := primitive.NewObjectID()

	acl := &Control{}
	acl.SetUser(userID, levelPtr(LevelRead))
	acl.SetGroup(groupID, levelPtr(LevelWrite))

	caller := &Caller{ID: userID, GroupIDs: []primitive.ObjectID{groupID}}

	// Grant group WRITE cao hơn grant user READ
	if got := ResolveLevel(acl, nil, caller); got != LevelWrite {
		t.Errorf("phải lấy max các grant: muốn WRITE, có %d", got)
	}

	// Public ADMIN cao hơn cả hai (publicLevel hợp lệ chỉ tới ADMIN trong thực tế)
	if got := ResolveLevel(acl, levelPtr(LevelAdmin), caller); got != LevelAdmin {
		t.Errorf("publicLevel cao hơn phải thắng: muốn ADMIN, có %d", got)
	}
}

func TestResolveLevel_KhongGrantLaTuChoi(t *testing.T) {
	acl := &Control{}
	acl.SetUser(primitive.NewObjectID(), levelPtr(LevelAdmin))

	caller := &Caller{ID: primitive.NewObjectID()}
	if got := ResolveLevel(acl, nil, caller); got != LevelNone {
		t.Errorf("user không có grant phải LevelNone, có %d", got)
	}
}

func TestRequireLevel(t *testing.T) {
	userID := primitive.NewObjectID()
	acl := &Control{}
	acl.SetUser(userID, levelPtr(LevelWrite))
	caller := &Caller{ID: userID}

	if err := RequireLevel(acl, nil, caller, LevelRead); err != nil {
		t.Errorf("WRITE phải bao hàm READ, có lỗi: %v", err)
	}
	if err := RequireLevel(acl, nil, caller, LevelWrite); err != nil {
		t.Errorf("đủ mức yêu cầu vẫn bị từ chối: %v", err)
	}

	err := RequireLevel(acl, nil, caller, LevelAdmin)
	if err == nil {
		t.Fatal("thiếu mức ADMIN phải bị từ chối")
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) || appErr.StatusCode != common.StatusForbidden {
		t.Errorf("lỗi từ chối phải là forbidden, có %v", err)
	}
}
