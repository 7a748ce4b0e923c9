// Package foldermodels chứa model folder - loại document kiểm soát truy cập.
package foldermodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manthey/girder/internal/api/access"
)

// ModelType là tag loại document gắn vào response đã lọc field
const ModelType = "folder"

// Folder là document kiểm soát truy cập: ACL user/group, mức public tùy
// chọn và creatorId là tham chiếu yếu (xóa user thì creatorId bị xóa,
// folder vẫn còn).
type Folder struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Size        int64               `json:"size" bson:"size"`
	Access      access.Control      `json:"access" bson:"access"`
	PublicLevel *access.Level       `json:"publicLevel,omitempty" bson:"publicLevel,omitempty"`
	CreatorID   *primitive.ObjectID `json:"creatorId,omitempty" bson:"creatorId,omitempty"`
	CreatedAt   int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64               `json:"updatedAt" bson:"updatedAt"`
}

// RegisterFields đăng ký mức lộ thông tin theo field của folder.
// Field access chỉ thấy được từ mức ADMIN của document.
func RegisterFields(registry *access.FieldRegistry) {
	registry.ExposeFields(ModelType, access.LevelRead,
		"_id", "name", "description", "size", "publicLevel", "createdAt", "updatedAt")
	registry.ExposeFields(ModelType, access.LevelWrite, "creatorId")
	registry.ExposeFields(ModelType, access.LevelAdmin, "access")
}
