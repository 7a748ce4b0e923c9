package access

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func levelPtr(l Level) *Level { return &l }

func TestControl_SetUser_UpsertGiuThuTu(t *testing.T) {
	u1 := primitive.NewObjectID()
	u2 := primitive.NewObjectID()
	u3 := primitive.NewObjectID()

	acl := &Control{}
	acl.SetUser(u1, levelPtr(LevelRead))
	acl.SetUser(u2, levelPtr(LevelWrite))
	acl.SetUser(u3, levelPtr(LevelRead))

	// Cập nhật grant giữa danh sách không được đổi thứ tự
	acl.SetUser(u2, levelPtr(LevelAdmin))

	if len(acl.Users) != 3 {
		t.Fatalf("số grant sai: muốn 3, có %d", len(acl.Users))
	}
	if acl.Users[1].ID != u2 || acl.Users[1].Level != LevelAdmin {
		t.Errorf("grant u2 phải ở vị trí 1 với level ADMIN, có %+v", acl.Users[1])
	}
}

func TestControl_SetUser_NilThuHoi(t *testing.T) {
	u1 := primitive.NewObjectID()
	u2 := primitive.NewObjectID()

	acl := &Control{}
	acl.SetUser(u1, levelPtr(LevelRead))
	acl.SetUser(u2, levelPtr(LevelWrite))
	acl.SetUser(u1, nil)

	if len(acl.Users) != 1 {
		t.Fatalf("thu hồi không xóa grant: còn %d grant", len(acl.Users))
	}
	if acl.Users[0].ID != u2 {
		t.Error("thu hồi xóa nhầm grant của user khác")
	}
	if acl.UserLevel(u1) != LevelNone {
		t.Error("user đã thu hồi vẫn còn level")
	}

	// Thu hồi lần nữa phải là no-op
	acl.SetUser(u1, nil)
	if len(acl.Users) != 1 {
		t.Error("thu hồi grant không tồn tại làm thay đổi ACL")
	}
}

func TestControl_GroupLevel_LayMucCaoNhat(t *testing.T) {
	g1 := primitive.NewObjectID()
	g2 := primitive.NewObjectID()
	g3 := primitive.NewObjectID()

	acl := &Control{}
	acl.SetGroup(g1, levelPtr(LevelRead))
	acl.SetGroup(g2, levelPtr(LevelAdmin))
	acl.SetGroup(g3, levelPtr(LevelWrite))

	// Caller là thành viên g1 và g3: mức cao nhất là WRITE
	got := acl.GroupLevel([]primitive.ObjectID{g1, g3})
	if got != LevelWrite {
		t.Errorf("GroupLevel sai: muốn WRITE, có %d", got)
	}

	// Không thuộc group nào
	if acl.GroupLevel(nil) != LevelNone {
		t.Error("không thuộc group nào phải trả LevelNone")
	}
}

func TestValidLevel(t *testing.T) {
	for _, l := range []Level{LevelRead, LevelWrite, LevelAdmin} {
		if !ValidLevel(l) {
			t.Errorf("level %d phải hợp lệ để lưu ACL", l)
		}
	}
	for _, l := range []Level{LevelNone, LevelSiteAdmin, Level(5)} {
		if ValidLevel(l) {
			t.Errorf("level %d không được phép lưu vào ACL", l)
		}
	}
}
