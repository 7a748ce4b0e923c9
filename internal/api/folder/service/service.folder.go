// Package foldersvc chứa service folder: CRUD có kiểm soát truy cập,
// lọc field theo mức và quản lý ACL của từng folder.
package foldersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manthey/girder/internal/api/access"
	basemodels "github.com/manthey/girder/internal/api/base/models"
	basesvc "github.com/manthey/girder/internal/api/base/service"
	folderdto "github.com/manthey/girder/internal/api/folder/dto"
	foldermodels "github.com/manthey/girder/internal/api/folder/models"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/global"
	"github.com/manthey/girder/internal/utility"
)

// aclFields các field phải fetch thêm để tính mức truy cập, dù caller
// không yêu cầu trong projection
var aclFields = []string{"access", "publicLevel"}

// FolderService thao tác folder với kiểm soát truy cập trên từng document
type FolderService struct {
	*basesvc.BaseServiceMongoImpl[foldermodels.Folder]
	aclStore *access.Store
	fields   *access.FieldRegistry
	resolver access.PrincipalResolver
}

// NewFolderService tạo FolderService với field registry và principal
// resolver được inject lúc khởi động
func NewFolderService(fields *access.FieldRegistry, resolver access.PrincipalResolver) (*FolderService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Folders)
	if !exist {
		return nil, fmt.Errorf("failed to get folders collection: %v", common.ErrNotFound)
	}
	return &FolderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[foldermodels.Folder](collection),
		aclStore:             access.NewStore(collection),
		fields:               fields,
		resolver:             resolver,
	}, nil
}

// Create tạo folder mới: người tạo nhận grant ADMIN và creatorId
func (s *FolderService) Create(ctx context.Context, caller *access.Caller, input *folderdto.FolderCreateInput) (*foldermodels.Folder, error) {
	if caller == nil {
		return nil, common.ErrForbidden
	}

	acl := access.Control{Users: []access.Entry{}, Groups: []access.Entry{}}
	adminLevel := access.LevelAdmin
	acl.SetUser(caller.ID, &adminLevel)

	var publicLevel *access.Level
	if input.PublicLevel != nil {
		level := access.Level(*input.PublicLevel)
		if !access.ValidLevel(level) {
			return nil, common.NewError(common.ErrCodeValidationInput, "Mức public không hợp lệ", common.StatusBadRequest, nil)
		}
		publicLevel = &level
	}

	folder := foldermodels.Folder{
		Name:        input.Name,
		Description: input.Description,
		Access:      acl,
		PublicLevel: publicLevel,
		CreatorID:   &caller.ID,
	}

	created, err := s.InsertOne(ctx, folder)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// load đọc folder và kiểm tra caller đạt mức yêu cầu
func (s *FolderService) load(ctx context.Context, folderID primitive.ObjectID, caller *access.Caller, required access.Level) (*foldermodels.Folder, access.Level, error) {
	folder, err := s.FindOneById(ctx, folderID)
	if err != nil {
		return nil, access.LevelNone, err
	}

	level := access.ResolveLevel(&folder.Access, folder.PublicLevel, caller)
	if level < required {
		return nil, access.LevelNone, common.ErrForbidden
	}
	return &folder, level, nil
}

// GetFiltered trả về folder đã lọc field theo mức truy cập của caller
func (s *FolderService) GetFiltered(ctx context.Context, folderID primitive.ObjectID, caller *access.Caller) (map[string]interface{}, error) {
	folder, level, err := s.load(ctx, folderID, caller, access.LevelRead)
	if err != nil {
		return nil, err
	}

	doc, err := utility.ToMap(folder)
	if err != nil {
		return nil, err
	}
	return s.fields.Filter(foldermodels.ModelType, doc, level), nil
}

// accessibleFilter build điều kiện Mongo giới hạn truy vấn vào các folder
// caller đọc được, để phân trang và tổng số đếm trên đúng tập đó.
// Mức lưu trong ACL luôn từ READ trở lên nên chỉ cần match principal.
func accessibleFilter(caller *access.Caller) bson.M {
	if caller == nil {
		return bson.M{"publicLevel": bson.M{"$exists": true}}
	}
	if caller.SiteAdmin {
		return bson.M{}
	}

	or := []bson.M{
		{"publicLevel": bson.M{"$exists": true}},
		{"access.users.id": caller.ID},
	}
	if len(caller.GroupIDs) > 0 {
		or = append(or, bson.M{"access.groups.id": bson.M{"$in": caller.GroupIDs}})
	}
	return bson.M{"$or": or}
}

// projectAndFilter gỡ các field ACL bổ sung khỏi doc thô theo projection gốc
// rồi mới lọc field theo mức truy cập, để field _modelType do bước lọc gắn
// vào không bị projection inclusion gỡ mất.
func projectAndFilter(fields *access.FieldRegistry, doc map[string]interface{}, projection access.Projection, level access.Level) (map[string]interface{}, error) {
	if err := access.RemoveSupplementalFields(doc, projection); err != nil {
		return nil, err
	}
	return fields.Filter(foldermodels.ModelType, doc, level), nil
}

// ListFiltered liệt kê các folder caller đọc được, áp dụng projection của
// caller. Projection được bổ sung các field ACL để tính mức truy cập rồi
// gỡ chúng khỏi kết quả nếu caller không yêu cầu.
func (s *FolderService) ListFiltered(ctx context.Context, caller *access.Caller, projection access.Projection, page int64, limit int64) (*basemodels.PaginateResult[map[string]interface{}], error) {
	supplemented, err := access.SupplementFields(projection, aclFields)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if supplemented != nil {
		proj := bson.M{}
		for field, include := range supplemented {
			if include {
				proj[field] = 1
			} else {
				proj[field] = 0
			}
		}
		findOpts.SetProjection(proj)
	}

	result, err := s.FindWithPagination(ctx, accessibleFilter(caller), page, limit, findOpts)
	if err != nil {
		return nil, err
	}

	items := []map[string]interface{}{}
	for i := range result.Items {
		folder := result.Items[i]
		level := access.ResolveLevel(&folder.Access, folder.PublicLevel, caller)
		if level < access.LevelRead {
			continue
		}

		doc, err := utility.ToMap(folder)
		if err != nil {
			return nil, err
		}
		filtered, err := projectAndFilter(s.fields, doc, projection, level)
		if err != nil {
			return nil, err
		}
		items = append(items, filtered)
	}

	return &basemodels.PaginateResult[map[string]interface{}]{
		Page:      result.Page,
		Limit:     result.Limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     result.Total,
		TotalPage: result.TotalPage,
	}, nil
}

// Update sửa name/description; yêu cầu mức WRITE
func (s *FolderService) Update(ctx context.Context, folderID primitive.ObjectID, caller *access.Caller, input *folderdto.FolderUpdateInput) (*foldermodels.Folder, error) {
	folder, _, err := s.load(ctx, folderID, caller, access.LevelWrite)
	if err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if len(set) == 0 {
		return folder, nil
	}

	updated, err := s.UpdateById(ctx, folder.ID, &basesvc.UpdateData{Set: set})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete xóa folder; yêu cầu mức ADMIN
func (s *FolderService) Delete(ctx context.Context, folderID primitive.ObjectID, caller *access.Caller) error {
	folder, _, err := s.load(ctx, folderID, caller, access.LevelAdmin)
	if err != nil {
		return err
	}
	return s.DeleteById(ctx, folder.ID)
}

// SetAccess cấp/thu hồi quyền cho một principal; yêu cầu mức ADMIN
func (s *FolderService) SetAccess(ctx context.Context, folderID primitive.ObjectID, caller *access.Caller, input *folderdto.AccessGrantInput) error {
	if _, _, err := s.load(ctx, folderID, caller, access.LevelAdmin); err != nil {
		return err
	}

	if (input.UserID == "") == (input.GroupID == "") {
		return common.NewError(common.ErrCodeValidationInput, "Cần đúng một trong userId hoặc groupId", common.StatusBadRequest, nil)
	}

	var level *access.Level
	if input.Level != nil {
		l := access.Level(*input.Level)
		level = &l
	}

	if input.UserID != "" {
		userID, err := utility.String2ObjectID(input.UserID)
		if err != nil {
			return err
		}
		return s.aclStore.SetUserAccess(ctx, folderID, userID, level)
	}

	groupID, err := utility.String2ObjectID(input.GroupID)
	if err != nil {
		return err
	}
	return s.aclStore.SetGroupAccess(ctx, folderID, groupID, level)
}

// SetPublicLevel đặt/gỡ mức public; yêu cầu mức ADMIN
func (s *FolderService) SetPublicLevel(ctx context.Context, folderID primitive.ObjectID, caller *access.Caller, input *folderdto.PublicLevelInput) error {
	if _, _, err := s.load(ctx, folderID, caller, access.LevelAdmin); err != nil {
		return err
	}

	var level *access.Level
	if input.Level != nil {
		l := access.Level(*input.Level)
		level = &l
	}
	return s.aclStore.SetPublicLevel(ctx, folderID, level)
}

// FullAccessList trả về ACL đã resolve tên, loại principal stale;
// yêu cầu mức ADMIN
func (s *FolderService) FullAccessList(ctx context.Context, folderID primitive.ObjectID, caller *access.Caller) (*access.FullAccessList, error) {
	if _, _, err := s.load(ctx, folderID, caller, access.LevelAdmin); err != nil {
		return nil, err
	}
	return s.aclStore.FullAccessList(ctx, folderID, s.resolver)
}

// RawAccessList trả về ACL đúng như lưu trữ, kể cả grant stale.
// Chỉ site admin dùng được (phục vụ kiểm tra toàn vẹn dữ liệu).
func (s *FolderService) RawAccessList(ctx context.Context, folderID primitive.ObjectID, caller *access.Caller) (*access.Control, *access.Level, error) {
	if caller == nil || !caller.SiteAdmin {
		return nil, nil, common.ErrAdminRequired
	}
	return s.aclStore.RawACL(ctx, folderID)
}
