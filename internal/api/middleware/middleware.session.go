package middleware

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manthey/girder/internal/utility"
)

// SessionCache cache danh tính đã resolve (user + caller) theo userID.
// Được chia sẻ giữa AuthMiddleware và các service làm thay đổi quyền:
// đổi siteAdmin hay membership gọi Invalidate để request kế tiếp resolve
// lại ngay, không giữ quyền cũ tới hết TTL.
type SessionCache struct {
	cache *utility.Cache
}

// NewSessionCache tạo cache phiên với TTL 5 phút
func NewSessionCache() *SessionCache {
	return &SessionCache{cache: utility.NewCache(5*time.Minute, 5*time.Minute)}
}

func (s *SessionCache) get(userID string) (*authContext, bool) {
	cached, ok := s.cache.Get(userID)
	if !ok {
		return nil, false
	}
	auth, ok := cached.(*authContext)
	return auth, ok
}

func (s *SessionCache) set(userID string, auth *authContext) {
	s.cache.Set(userID, auth)
}

// Invalidate gỡ cache phiên của user; implement authsvc.SessionInvalidator
func (s *SessionCache) Invalidate(userID primitive.ObjectID) {
	s.cache.Delete(userID.Hex())
}
