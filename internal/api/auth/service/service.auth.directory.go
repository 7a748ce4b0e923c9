package authsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrincipalDirectory gom UserService và GroupService thành một
// access.PrincipalResolver duy nhất cho các thao tác đọc access list.
type PrincipalDirectory struct {
	Users  *UserService
	Groups *GroupService
}

// NewPrincipalDirectory tạo directory từ hai service principal
func NewPrincipalDirectory(users *UserService, groups *GroupService) *PrincipalDirectory {
	return &PrincipalDirectory{Users: users, Groups: groups}
}

// ResolveUser tra cứu user theo ID, exists=false nếu đã bị xóa
func (d *PrincipalDirectory) ResolveUser(ctx context.Context, id primitive.ObjectID) (string, bool, error) {
	return d.Users.ResolveUser(ctx, id)
}

// ResolveGroup tra cứu group theo ID, exists=false nếu đã bị xóa
func (d *PrincipalDirectory) ResolveGroup(ctx context.Context, id primitive.ObjectID) (string, bool, error) {
	return d.Groups.ResolveGroup(ctx, id)
}
