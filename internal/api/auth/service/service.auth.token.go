package authsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/manthey/girder/internal/api/auth/models"
	basesvc "github.com/manthey/girder/internal/api/base/service"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/global"
	"github.com/manthey/girder/internal/utility"
)

// TokenService quản lý vòng đời token: phát hành, kiểm tra, thu hồi.
// Token hết hạn bị loại lúc kiểm tra (lazy); worker dọn định kỳ chỉ là
// tối ưu lưu trữ, không ảnh hưởng tính đúng.
type TokenService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.Token]
}

// NewTokenService tạo TokenService trên collection tokens
func NewTokenService() (*TokenService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tokens)
	if !exist {
		return nil, fmt.Errorf("failed to get tokens collection: %v", common.ErrNotFound)
	}
	return &TokenService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.Token](collection),
	}, nil
}

// defaultDurationDays đọc thời hạn token mặc định từ cấu hình
func defaultDurationDays() int {
	if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.TokenDurationDays > 0 {
		return global.MongoDB_ServerConfig.TokenDurationDays
	}
	return 30
}

// EffectiveDurationDays tính thời hạn hiệu lực (ngày) theo quy tắc:
// min(requested hoặc mặc định, keyOverride hoặc mặc định). Key chỉ rút ngắn
// được mặc định, caller chỉ rút ngắn thêm.
func EffectiveDurationDays(requestedDays int, keyOverrideDays int) int {
	systemDefault := defaultDurationDays()

	requested := systemDefault
	if requestedDays > 0 {
		requested = requestedDays
	}
	limit := systemDefault
	if keyOverrideDays > 0 {
		limit = keyOverrideDays
	}

	if requested < limit {
		return requested
	}
	return limit
}

// Issue phát hành token mới cho user với scope và thời hạn đã tính xong.
// apiKeyID nil với token đăng nhập thông thường.
func (s *TokenService) Issue(ctx context.Context, userID primitive.ObjectID, scope []string, durationDays int, apiKeyID *primitive.ObjectID) (*authmodels.Token, error) {
	expires := time.Now().Add(time.Duration(durationDays) * 24 * time.Hour)

	value, err := utility.CreateToken(global.MongoDB_ServerConfig.JwtSecret, userID.Hex(), expires)
	if err != nil {
		return nil, err
	}

	token := authmodels.Token{
		Token:    value,
		UserID:   userID,
		Scope:    scope,
		ApiKeyID: apiKeyID,
		Expires:  expires.UnixMilli(),
	}

	created, err := s.InsertOne(ctx, token)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// IssueForLogin phát hành token đăng nhập: scope cố định [user_auth],
// apiKeyId nil, thời hạn mặc định trừ khi caller rút ngắn.
func (s *TokenService) IssueForLogin(ctx context.Context, userID primitive.ObjectID, requestedDays int) (*authmodels.Token, error) {
	days := EffectiveDurationDays(requestedDays, 0)
	return s.Issue(ctx, userID, []string{ScopeUserAuth}, days, nil)
}

// Validate tra token theo giá trị; token không tồn tại hoặc đã hết hạn đều
// trả ErrTokenInvalid/ErrTokenExpired. Token hết hạn bị xóa luôn khi gặp.
func (s *TokenService) Validate(ctx context.Context, value string) (*authmodels.Token, error) {
	if value == "" {
		return nil, common.ErrTokenInvalid
	}

	token, err := s.FindOne(ctx, bson.M{"token": value}, nil)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}

	if token.Expires <= time.Now().UnixMilli() {
		_ = s.DeleteById(ctx, token.ID)
		return nil, common.ErrTokenExpired
	}
	return &token, nil
}

// DeleteByValue thu hồi token theo giá trị (logout). Không tồn tại là no-op.
func (s *TokenService) DeleteByValue(ctx context.Context, value string) error {
	_, err := s.DeleteMany(ctx, bson.M{"token": value})
	return err
}

// DeleteForApiKey xóa mọi token do một key phát hành (cascade khi key bị
// sửa, vô hiệu hóa hoặc xóa). Trả về số token đã xóa.
func (s *TokenService) DeleteForApiKey(ctx context.Context, apiKeyID primitive.ObjectID) (int64, error) {
	return s.DeleteMany(ctx, bson.M{"apiKeyId": apiKeyID})
}

// DeleteForUser xóa mọi token của user (khi user bị xóa)
func (s *TokenService) DeleteForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.DeleteMany(ctx, bson.M{"userId": userID})
}

// SweepExpired xóa các token đã quá hạn, trả về số bản ghi dọn được
func (s *TokenService) SweepExpired(ctx context.Context) (int64, error) {
	return s.DeleteMany(ctx, bson.M{"expires": bson.M{"$lte": time.Now().UnixMilli()}})
}
