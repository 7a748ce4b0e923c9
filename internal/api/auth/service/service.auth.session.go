package authsvc

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionInvalidator gỡ cache danh tính đã resolve của một user. Các service
// làm thay đổi quyền (siteAdmin, membership, xóa user) gọi nó để thay đổi có
// hiệu lực ngay thay vì đợi cache hết TTL.
type SessionInvalidator interface {
	Invalidate(userID primitive.ObjectID)
}
