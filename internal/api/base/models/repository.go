// Package basemodels chứa các kiểu dữ liệu chung cho tầng service/handler.
package basemodels

// PaginateResult là kết quả phân trang chuẩn cho các endpoint find
type PaginateResult[T any] struct {
	Page      int64 `json:"page" bson:"page"`           // Trang hiện tại, bắt đầu từ 1
	Limit     int64 `json:"limit" bson:"limit"`         // Số item mỗi trang
	ItemCount int64 `json:"itemCount" bson:"itemCount"` // Số item trong trang này
	Items     []T   `json:"items" bson:"items"`         // Dữ liệu trang
	Total     int64 `json:"total" bson:"total"`         // Tổng số item khớp filter
	TotalPage int64 `json:"totalPage" bson:"totalPage"` // Tổng số trang
}
