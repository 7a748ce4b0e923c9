package utility

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/manthey/girder/internal/common"
)

// RandomHex sinh chuỗi hex ngẫu nhiên độ dài 2*nBytes ký tự từ crypto/rand.
// Dùng làm secret cho API key và nonce cho token.
func RandomHex(nBytes int) (string, error) {
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không thể sinh dữ liệu ngẫu nhiên", common.StatusInternalServerError, err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateToken sinh JWT HS256 mang userId và thời điểm hết hạn.
// Nonce ngẫu nhiên đảm bảo hai token của cùng user không trùng nhau.
func CreateToken(secret string, userID string, expires time.Time) (string, error) {
	nonce, err := RandomHex(8)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    expires.Unix(),
		"iat":    time.Now().Unix(),
		"nonce":  nonce,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không thể ký token", common.StatusInternalServerError, err)
	}
	return signed, nil
}

// ParseToken kiểm tra chữ ký và hạn của JWT, trả về userId trong claims.
// Token hợp lệ về chữ ký vẫn phải tồn tại trong database mới dùng được.
func ParseToken(secret string, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", common.ErrTokenInvalid
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", common.ErrTokenInvalid
	}
	return userID, nil
}
