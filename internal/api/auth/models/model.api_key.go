package authmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApiKey là khóa dài hạn thuộc sở hữu độc quyền của một user.
// Key (secret) bất biến sau khi tạo. Scope nil là sentinel "toàn bộ quyền
// mặc định của chủ sở hữu", khác với scope rỗng.
type ApiKey struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	Name          string             `json:"name" bson:"name"`
	Key           string             `json:"key" bson:"key"`
	Scope         []string           `json:"scope" bson:"scope"`                   // nil = full default
	TokenDuration int                `json:"tokenDuration" bson:"tokenDuration"`   // Ngày; 0 = dùng mặc định hệ thống
	Active        bool               `json:"active" bson:"active"`
	LastUse       int64              `json:"lastUse,omitempty" bson:"lastUse,omitempty"` // Millisecond epoch, 0 = chưa dùng
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
