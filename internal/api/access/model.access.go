// Package access cài đặt mô hình kiểm soát truy cập theo mức trên document:
// ACL người dùng/nhóm, mức public, lọc field theo mức truy cập và projection.
package access

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Level là mức truy cập trên một document. Giá trị cao hơn bao hàm
// mọi quyền của giá trị thấp hơn.
type Level int

const (
	// LevelNone - không có quyền; không phải giá trị lưu trong ACL,
	// chỉ là kết quả resolve khi caller không có grant nào
	LevelNone Level = -1

	// LevelRead - đọc document
	LevelRead Level = 0

	// LevelWrite - sửa nội dung document
	LevelWrite Level = 1

	// LevelAdmin - sửa ACL của document
	LevelAdmin Level = 2

	// LevelSiteAdmin - quản trị toàn hệ thống, vượt mọi ACL
	LevelSiteAdmin Level = 100
)

// ValidLevel kiểm tra một mức có hợp lệ để lưu vào ACL không
func ValidLevel(l Level) bool {
	return l == LevelRead || l == LevelWrite || l == LevelAdmin
}

// Entry là một grant trong ACL: principal (user hoặc group) và mức được cấp
type Entry struct {
	ID    primitive.ObjectID `bson:"id" json:"id"`       // ID của principal
	Level Level              `bson:"level" json:"level"` // Mức được cấp
}

// Control là ACL đầy đủ của một document. Mỗi danh sách unique theo ID,
// thứ tự chèn được giữ nguyên.
type Control struct {
	Users  []Entry `bson:"users" json:"users"`   // Grant theo user
	Groups []Entry `bson:"groups" json:"groups"` // Grant theo group
}

// upsertEntry cập nhật hoặc thêm grant cho principal, giữ thứ tự hiện có
func upsertEntry(entries []Entry, id primitive.ObjectID, level Level) []Entry {
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Level = level
			return entries
		}
	}
	return append(entries, Entry{ID: id, Level: level})
}

// removeEntry xóa grant của principal nếu có
func removeEntry(entries []Entry, id primitive.ObjectID) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			result = append(result, e)
		}
	}
	return result
}

// SetUser cấp hoặc thu hồi quyền của một user. level nil nghĩa là thu hồi.
func (c *Control) SetUser(userID primitive.ObjectID, level *Level) {
	if level == nil {
		c.Users = removeEntry(c.Users, userID)
		return
	}
	c.Users = upsertEntry(c.Users, userID, *level)
}

// SetGroup cấp hoặc thu hồi quyền của một group. level nil nghĩa là thu hồi.
func (c *Control) SetGroup(groupID primitive.ObjectID, level *Level) {
	if level == nil {
		c.Groups = removeEntry(c.Groups, groupID)
		return
	}
	c.Groups = upsertEntry(c.Groups, groupID, *level)
}

// UserLevel trả về mức cấp cho user trong ACL, LevelNone nếu không có grant
func (c *Control) UserLevel(userID primitive.ObjectID) Level {
	for _, e := range c.Users {
		if e.ID == userID {
			return e.Level
		}
	}
	return LevelNone
}

// GroupLevel trả về mức cao nhất cấp qua các group trong groupIDs
func (c *Control) GroupLevel(groupIDs []primitive.ObjectID) Level {
	best := LevelNone
	for _, e := range c.Groups {
		for _, gid := range groupIDs {
			if e.ID == gid && e.Level > best {
				best = e.Level
			}
		}
	}
	return best
}
