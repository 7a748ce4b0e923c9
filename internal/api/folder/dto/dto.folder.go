// Package folderdto chứa các DTO đầu vào của domain folder.
package folderdto

// FolderCreateInput đầu vào tạo folder. PublicLevel nil = private.
type FolderCreateInput struct {
	Name        string `json:"name" validate:"required,min=1,max=255,no_xss"`
	Description string `json:"description" validate:"omitempty,max=4096,no_xss"`
	PublicLevel *int   `json:"publicLevel" validate:"omitempty,min=0,max=2"`
}

// FolderUpdateInput đầu vào sửa folder. Field nil nghĩa là không đổi.
type FolderUpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255,no_xss"`
	Description *string `json:"description" validate:"omitempty,max=4096,no_xss"`
}

// AccessGrantInput đầu vào cấp/thu hồi quyền cho một principal.
// Đúng một trong userId/groupId phải có. Level nil = thu hồi grant.
type AccessGrantInput struct {
	UserID  string `json:"userId" validate:"omitempty"`
	GroupID string `json:"groupId" validate:"omitempty"`
	Level   *int   `json:"level" validate:"omitempty,min=0,max=2"`
}

// PublicLevelInput đầu vào đặt mức public. Level nil = gỡ public.
type PublicLevelInput struct {
	Level *int `json:"level" validate:"omitempty,min=0,max=2"`
}
