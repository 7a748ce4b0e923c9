// Package middleware chứa middleware xác thực dựa trên token lưu server-side.
package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/manthey/girder/internal/api/access"
	authmodels "github.com/manthey/girder/internal/api/auth/models"
	authsvc "github.com/manthey/girder/internal/api/auth/service"
	basehdl "github.com/manthey/girder/internal/api/base/handler"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/utility"
)

// Các key trong fiber Locals do middleware set
const (
	LocalUser   = "user"   // *authmodels.User
	LocalCaller = "caller" // *access.Caller, nil khi ẩn danh
	LocalToken  = "token"  // giá trị token thô của phiên
)

// AuthMiddleware xác thực request: Bearer token → bản ghi token trong DB
// (hết hạn bị loại lazy) → user → Caller với membership đã resolve.
// Danh tính được cache ngắn theo userID và được gỡ chủ động khi quyền đổi;
// bản ghi token luôn đọc từ DB nên thu hồi token có hiệu lực ngay.
type AuthMiddleware struct {
	tokens   *authsvc.TokenService
	users    *authsvc.UserService
	groups   *authsvc.GroupService
	sessions *SessionCache
}

// NewAuthMiddleware tạo middleware với các service và cache phiên được inject
func NewAuthMiddleware(tokens *authsvc.TokenService, users *authsvc.UserService, groups *authsvc.GroupService, sessions *SessionCache) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		users:    users,
		groups:   groups,
		sessions: sessions,
	}
}

type authContext struct {
	user   *authmodels.User
	caller *access.Caller
}

// authenticate resolve token từ header thành user + caller. Token trả về
// riêng vì scope thuộc về từng token, không cache theo user được.
func (m *AuthMiddleware) authenticate(ctx context.Context, c fiber.Ctx) (*authContext, *authmodels.Token, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, nil, common.ErrTokenInvalid
	}
	value := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if value == "" || value == header {
		return nil, nil, common.ErrTokenInvalid
	}

	token, err := m.tokens.Validate(ctx, value)
	if err != nil {
		return nil, nil, err
	}

	key := token.UserID.Hex()
	if auth, ok := m.sessions.get(key); ok {
		return auth, token, nil
	}

	user, err := m.users.FindOneById(ctx, token.UserID)
	if err != nil {
		return nil, nil, common.ErrTokenInvalid
	}
	caller, err := m.groups.CallerForUser(ctx, &user)
	if err != nil {
		return nil, nil, err
	}

	auth := &authContext{user: &user, caller: caller}
	m.sessions.set(key, auth)
	return auth, token, nil
}

// store ghi kết quả xác thực vào Locals của request
func store(c fiber.Ctx, auth *authContext, token *authmodels.Token) {
	c.Locals(LocalUser, auth.user)
	c.Locals(LocalCaller, auth.caller)
	c.Locals(LocalToken, token.Token)
	c.Locals("user_id", auth.user.ID.Hex())
}

// Required yêu cầu request có token hợp lệ
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c fiber.Ctx) error {
		auth, token, err := m.authenticate(c.Context(), c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		store(c, auth, token)
		return c.Next()
	}
}

// Optional xác thực nếu có token; không có token thì đi tiếp như ẩn danh
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		auth, token, err := m.authenticate(c.Context(), c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		store(c, auth, token)
		return c.Next()
	}
}

// AdminRequired yêu cầu token hợp lệ của một site admin
func (m *AuthMiddleware) AdminRequired() fiber.Handler {
	return func(c fiber.Ctx) error {
		auth, token, err := m.authenticate(c.Context(), c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if !auth.user.SiteAdmin {
			return basehdl.HandleResponse(c, nil, common.ErrAdminRequired)
		}
		store(c, auth, token)
		return c.Next()
	}
}

// RequireScope yêu cầu token mang scope chỉ định hoặc scope user_auth
// (danh tính đầy đủ bao hàm mọi scope của chính user đó)
func (m *AuthMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c fiber.Ctx) error {
		auth, token, err := m.authenticate(c.Context(), c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if !utility.Contains(token.Scope, scope) && !utility.Contains(token.Scope, authsvc.ScopeUserAuth) {
			return basehdl.HandleResponse(c, nil, common.ErrForbidden)
		}
		store(c, auth, token)
		return c.Next()
	}
}

// CurrentUser đọc user đã xác thực từ Locals, nil nếu ẩn danh
func CurrentUser(c fiber.Ctx) *authmodels.User {
	if user, ok := c.Locals(LocalUser).(*authmodels.User); ok {
		return user
	}
	return nil
}

// CurrentCaller đọc caller đã resolve từ Locals, nil nếu ẩn danh
func CurrentCaller(c fiber.Ctx) *access.Caller {
	if caller, ok := c.Locals(LocalCaller).(*access.Caller); ok {
		return caller
	}
	return nil
}

// CurrentToken đọc giá trị token thô của phiên, rỗng nếu ẩn danh
func CurrentToken(c fiber.Ctx) string {
	if token, ok := c.Locals(LocalToken).(string); ok {
		return token
	}
	return ""
}
