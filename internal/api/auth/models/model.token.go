package authmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token là phiên xác thực lưu server-side. Giá trị Token là JWT đã ký nhưng
// tính hợp lệ quyết định bởi bản ghi trong database: xóa bản ghi là thu hồi.
type Token struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Token     string              `json:"token" bson:"token"`
	UserID    primitive.ObjectID  `json:"userId" bson:"userId"`
	Scope     []string            `json:"scope" bson:"scope"`
	ApiKeyID  *primitive.ObjectID `json:"apiKeyId,omitempty" bson:"apiKeyId,omitempty"` // Key phát hành, nil với token đăng nhập
	Expires   int64               `json:"expires" bson:"expires"`                       // Millisecond epoch
	CreatedAt int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64               `json:"updatedAt" bson:"updatedAt"`
}
