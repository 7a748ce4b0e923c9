package middleware

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manthey/girder/internal/api/access"
	authmodels "github.com/manthey/girder/internal/api/auth/models"
	authsvc "github.com/manthey/girder/internal/api/auth/service"
)

// SessionCache phải dùng được làm SessionInvalidator của các service đổi quyền
var _ authsvc.SessionInvalidator = (*SessionCache)(nil)

func TestSessionCacheInvalidate(t *testing.T) {
	sessions := NewSessionCache()
	userID := primitive.NewObjectID()

	auth := &authContext{
		user:   &authmodels.User{ID: userID, SiteAdmin: true},
		caller: &access.Caller{ID: userID, SiteAdmin: true},
	}
	sessions.set(userID.Hex(), auth)

	got, ok := sessions.get(userID.Hex())
	if !ok || got.user.ID != userID {
		t.Fatal("danh tính vừa cache phải đọc lại được")
	}

	// Quyền đổi thì cache phải bị gỡ ngay, không đợi TTL
	sessions.Invalidate(userID)
	if _, ok := sessions.get(userID.Hex()); ok {
		t.Error("Invalidate phải gỡ cache phiên của user")
	}
}

func TestSessionCacheInvalidateUserKhac(t *testing.T) {
	sessions := NewSessionCache()
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()

	sessions.set(userA.Hex(), &authContext{user: &authmodels.User{ID: userA}})
	sessions.set(userB.Hex(), &authContext{user: &authmodels.User{ID: userB}})

	sessions.Invalidate(userA)
	if _, ok := sessions.get(userB.Hex()); !ok {
		t.Error("gỡ cache của một user không được ảnh hưởng user khác")
	}
}
