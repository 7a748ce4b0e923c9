// Package common chứa hệ thống mã lỗi và các sentinel error dùng chung cho toàn bộ ứng dụng.
// Mọi tầng (service, handler, middleware) đều trả lỗi qua *common.Error để response
// có cấu trúc thống nhất: mã lỗi, thông điệp, HTTP status và chi tiết.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Các HTTP status code dùng trong hệ thống
const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
)

// ErrorCode định nghĩa một mã lỗi trong hệ thống phân loại lỗi.
// Code có dạng CATEGORY_NNN, ví dụ AUTH_002.
type ErrorCode struct {
	Code        string // Mã lỗi, ví dụ "AUTH_002"
	Category    string // Nhóm lỗi: SYS, AUTH, VAL, DB, BIZ
	SubCategory string // Nhóm con, ví dụ "credentials"
	Description string // Mô tả ngắn cho developer
}

// Danh sách mã lỗi của hệ thống
var (
	// SYS - lỗi hệ thống
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "SYS", SubCategory: "internal", Description: "Lỗi nội bộ server"}

	// AUTH - lỗi xác thực và phân quyền
	ErrCodeAuth            = ErrorCode{Code: "AUTH_001", Category: "AUTH", SubCategory: "general", Description: "Lỗi xác thực chung"}
	ErrCodeAuthCredentials = ErrorCode{Code: "AUTH_002", Category: "AUTH", SubCategory: "credentials", Description: "Thông tin đăng nhập không hợp lệ"}
	ErrCodeAuthToken       = ErrorCode{Code: "AUTH_003", Category: "AUTH", SubCategory: "token", Description: "Token không hợp lệ hoặc đã hết hạn"}
	ErrCodeAuthRole        = ErrorCode{Code: "AUTH_004", Category: "AUTH", SubCategory: "permission", Description: "Không đủ quyền truy cập"}

	// VAL - lỗi dữ liệu đầu vào
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "VAL", SubCategory: "input", Description: "Dữ liệu đầu vào không hợp lệ"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "VAL", SubCategory: "format", Description: "Định dạng dữ liệu không hợp lệ"}

	// DB - lỗi database
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "DB", SubCategory: "connection", Description: "Lỗi kết nối database"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "DB", SubCategory: "query", Description: "Lỗi truy vấn database"}

	// BIZ - lỗi nghiệp vụ
	ErrCodeBusinessLogic     = ErrorCode{Code: "BIZ_001", Category: "BIZ", SubCategory: "logic", Description: "Lỗi logic nghiệp vụ"}
	ErrCodeBusinessOperation = ErrorCode{Code: "BIZ_002", Category: "BIZ", SubCategory: "operation", Description: "Thao tác nghiệp vụ không hợp lệ"}
)

// Error là kiểu lỗi chuẩn của hệ thống, mang theo mã lỗi, thông điệp
// hướng người dùng, HTTP status và chi tiết kỹ thuật (nếu có).
type Error struct {
	Code       ErrorCode   // Mã lỗi phân loại
	Message    string      // Thông điệp trả về cho client
	StatusCode int         // HTTP status code
	Details    interface{} // Chi tiết kỹ thuật, có thể là error gốc
}

// Error implement interface error
func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code.Code, e.Message)
}

// Unwrap cho phép errors.Is/As đi xuyên qua Details nếu Details là error
func (e *Error) Unwrap() error {
	if err, ok := e.Details.(error); ok {
		return err
	}
	return nil
}

// NewError tạo một *Error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details interface{}) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Các sentinel error dùng chung. Message của nhóm xác thực/phân quyền
// là thông điệp trả thẳng cho client nên giữ nguyên văn tiếng Anh.
var (
	// ErrNotFound - không tìm thấy bản ghi
	ErrNotFound = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)

	// ErrRequiredField - thiếu trường bắt buộc
	ErrRequiredField = NewError(ErrCodeValidationInput, "Thiếu trường bắt buộc", StatusBadRequest, nil)

	// ErrTokenInvalid - token không hợp lệ hoặc không tồn tại
	ErrTokenInvalid = NewError(ErrCodeAuthToken, "Token không hợp lệ", StatusUnauthorized, nil)

	// ErrTokenExpired - token đã hết hạn
	ErrTokenExpired = NewError(ErrCodeAuthToken, "Token đã hết hạn", StatusUnauthorized, nil)

	// ErrInvalidCredential - sai thông tin đăng nhập; thông điệp cố ý chung chung
	ErrInvalidCredential = NewError(ErrCodeAuthCredentials, "Login failed.", StatusUnauthorized, nil)

	// ErrForbidden - caller không đủ mức truy cập trên tài nguyên
	ErrForbidden = NewError(ErrCodeAuthRole, "Access denied.", StatusForbidden, nil)

	// ErrAdminRequired - thao tác yêu cầu quyền quản trị toàn hệ thống
	ErrAdminRequired = NewError(ErrCodeAuthRole, "Administrator access required.", StatusForbidden, nil)

	// ErrInvalidApiKey - key không tồn tại hoặc không active; thông điệp cố ý
	// không phân biệt hai trường hợp để tránh lộ thông tin
	ErrInvalidApiKey = NewError(ErrCodeAuthCredentials, "Invalid API key.", StatusBadRequest, nil)

	// ErrMongoDuplicate - vi phạm unique index
	ErrMongoDuplicate = NewError(ErrCodeDatabaseQuery, "Dữ liệu đã tồn tại", StatusConflict, nil)

	// ErrMongoNetwork - lỗi mạng khi truy cập database
	ErrMongoNetwork = NewError(ErrCodeDatabaseConnection, "Lỗi kết nối database", StatusInternalServerError, nil)

	// ErrMongoTimeout - truy vấn database vượt quá thời gian cho phép
	ErrMongoTimeout = NewError(ErrCodeDatabaseConnection, "Truy vấn database quá thời gian", StatusInternalServerError, nil)
)

// NewInvalidScopesError tạo lỗi validation cho danh sách scope không hợp lệ.
// Các scope vi phạm được sắp xếp và nối bằng dấu phẩy để thông điệp ổn định.
func NewInvalidScopesError(scopes []string) *Error {
	sorted := make([]string, len(scopes))
	copy(sorted, scopes)
	sort.Strings(sorted)
	return NewError(ErrCodeValidationInput, fmt.Sprintf("Invalid scopes: %s.", strings.Join(sorted, ", ")), StatusBadRequest, nil)
}

// ConvertMongoError chuyển lỗi của mongo-driver sang *common.Error tương ứng.
// Lỗi đã là *common.Error thì trả về nguyên vẹn.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch {
		case cmdErr.Code == 11000 || cmdErr.Code == 11001:
			return ErrMongoDuplicate
		case cmdErr.Code >= 50 && cmdErr.Code < 60:
			return ErrMongoTimeout
		}
	}

	return NewError(ErrCodeDatabaseQuery, "Lỗi truy vấn database", StatusInternalServerError, err)
}
