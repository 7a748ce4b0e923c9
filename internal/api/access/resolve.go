package access

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manthey/girder/internal/common"
)

// Caller là principal đang thực hiện request, đã resolve xong membership.
// Caller nil biểu diễn truy cập ẩn danh.
type Caller struct {
	ID        primitive.ObjectID   // ID user
	SiteAdmin bool                 // Quản trị toàn hệ thống
	GroupIDs  []primitive.ObjectID // Các group user là thành viên
}

// ResolveLevel tính mức truy cập hiệu lực của caller trên một document.
//
// Quy tắc:
//   - Site admin luôn có LevelSiteAdmin
//   - Caller ẩn danh chỉ có mức public (nếu document có publicLevel)
//   - Ngược lại lấy max(publicLevel, grant trực tiếp, grant qua group)
//   - Không có grant nào thì LevelNone
func ResolveLevel(acl *Control, publicLevel *Level, caller *Caller) Level {
	if caller != nil && caller.SiteAdmin {
		return LevelSiteAdmin
	}

	effective := LevelNone
	if publicLevel != nil && *publicLevel > effective {
		effective = *publicLevel
	}

	if caller == nil || acl == nil {
		return effective
	}

	if userLevel := acl.UserLevel(caller.ID); userLevel > effective {
		effective = userLevel
	}
	if groupLevel := acl.GroupLevel(caller.GroupIDs); groupLevel > effective {
		effective = groupLevel
	}
	return effective
}

// RequireLevel kiểm tra caller đạt mức yêu cầu trên document.
// Thiếu quyền trả về lỗi forbidden chung, không tiết lộ chi tiết ACL.
func RequireLevel(acl *Control, publicLevel *Level, caller *Caller, required Level) error {
	if ResolveLevel(acl, publicLevel, caller) >= required {
		return nil
	}
	return common.ErrForbidden
}
