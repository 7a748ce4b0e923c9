package authsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manthey/girder/internal/api/access"
	authdto "github.com/manthey/girder/internal/api/auth/dto"
	authmodels "github.com/manthey/girder/internal/api/auth/models"
	basesvc "github.com/manthey/girder/internal/api/base/service"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/global"
)

// GroupService quản lý group và thành viên; group là principal trong ACL.
type GroupService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.Group]
	aclHooks access.DeletionHooks
	sessions SessionInvalidator
}

// NewGroupService tạo GroupService. aclHooks nhận thông báo khi group bị
// xóa; sessions gỡ cache danh tính khi membership của user đổi.
func NewGroupService(aclHooks access.DeletionHooks, sessions SessionInvalidator) (*GroupService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Groups)
	if !exist {
		return nil, fmt.Errorf("failed to get groups collection: %v", common.ErrNotFound)
	}
	return &GroupService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.Group](collection),
		aclHooks:             aclHooks,
		sessions:             sessions,
	}, nil
}

// invalidateSession gỡ cache danh tính của user để membership mới có hiệu
// lực ngay
func (s *GroupService) invalidateSession(userID primitive.ObjectID) {
	if s.sessions != nil {
		s.sessions.Invalidate(userID)
	}
}

// Create tạo group mới, người tạo là thành viên đầu tiên
func (s *GroupService) Create(ctx context.Context, creator *authmodels.User, input *authdto.GroupCreateInput) (*authmodels.Group, error) {
	group := authmodels.Group{
		Name:        input.Name,
		Description: input.Description,
		MemberIDs:   []primitive.ObjectID{creator.ID},
	}
	created, err := s.InsertOne(ctx, group)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete xóa group và gỡ mọi grant ACL trỏ tới group. Membership của toàn
// bộ thành viên đổi nên cache danh tính của họ được gỡ.
func (s *GroupService) Delete(ctx context.Context, caller *authmodels.User, groupID primitive.ObjectID) error {
	if !caller.SiteAdmin {
		return common.ErrAdminRequired
	}

	group, err := s.FindOneById(ctx, groupID)
	if err != nil {
		return err
	}

	if err := s.DeleteById(ctx, groupID); err != nil {
		return err
	}

	if s.aclHooks != nil {
		if err := s.aclHooks.OnGroupDeleted(ctx, groupID); err != nil {
			return err
		}
	}

	for _, memberID := range group.MemberIDs {
		s.invalidateSession(memberID)
	}
	return nil
}

// AddMember thêm thành viên; thêm lại thành viên đã có là no-op
func (s *GroupService) AddMember(ctx context.Context, groupID primitive.ObjectID, userID primitive.ObjectID) (*authmodels.Group, error) {
	updated, err := s.UpdateById(ctx, groupID, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{"memberIds": userID},
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSession(userID)
	return &updated, nil
}

// RemoveMember gỡ thành viên khỏi group
func (s *GroupService) RemoveMember(ctx context.Context, groupID primitive.ObjectID, userID primitive.ObjectID) (*authmodels.Group, error) {
	updated, err := s.UpdateById(ctx, groupID, &basesvc.UpdateData{
		Pull: map[string]interface{}{"memberIds": userID},
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSession(userID)
	return &updated, nil
}

// IsMember kiểm tra user có là thành viên của group không
func (s *GroupService) IsMember(ctx context.Context, userID primitive.ObjectID, groupID primitive.ObjectID) (bool, error) {
	return s.Exists(ctx, bson.M{"_id": groupID, "memberIds": userID})
}

// GroupIDsForUser liệt kê ID các group user là thành viên
func (s *GroupService) GroupIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	groups, err := s.Find(ctx, bson.M{"memberIds": userID}, nil)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

// CallerForUser build access.Caller cho user với membership đã resolve
func (s *GroupService) CallerForUser(ctx context.Context, user *authmodels.User) (*access.Caller, error) {
	groupIDs, err := s.GroupIDsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &access.Caller{
		ID:        user.ID,
		SiteAdmin: user.SiteAdmin,
		GroupIDs:  groupIDs,
	}, nil
}

// ResolveGroup implement access.PrincipalResolver cho group
func (s *GroupService) ResolveGroup(ctx context.Context, id primitive.ObjectID) (string, bool, error) {
	group, err := s.FindOneById(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return group.Name, true, nil
}
