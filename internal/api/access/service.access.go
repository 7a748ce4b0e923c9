package access

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/manthey/girder/internal/common"
)

// PrincipalResolver tra cứu principal khi build danh sách access đầy đủ.
// exists=false cho principal đã bị xóa (grant stale).
type PrincipalResolver interface {
	ResolveUser(ctx context.Context, id primitive.ObjectID) (name string, exists bool, err error)
	ResolveGroup(ctx context.Context, id primitive.ObjectID) (name string, exists bool, err error)
}

// NamedEntry là một grant kèm tên principal, dùng cho response access list
type NamedEntry struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Level Level              `json:"level"`
}

// FullAccessList là ACL đã resolve tên, loại bỏ principal stale
type FullAccessList struct {
	Users  []NamedEntry `json:"users"`
	Groups []NamedEntry `json:"groups"`
}

// aclDocument là phần ACL đọc từ một document bất kỳ
type aclDocument struct {
	Access      Control             `bson:"access"`
	PublicLevel *Level              `bson:"publicLevel,omitempty"`
	CreatorID   *primitive.ObjectID `bson:"creatorId,omitempty"`
}

// Store thao tác ACL trên một collection chứa document kiểm soát truy cập.
// Document phải có các field access, publicLevel (tùy chọn), creatorId (yếu).
type Store struct {
	collection *mongo.Collection
}

// NewStore tạo Store cho collection. Collection cũng cần được đưa vào
// Cleaner để ACL được dọn dẹp khi principal bị xóa.
func NewStore(collection *mongo.Collection) *Store {
	return &Store{collection: collection}
}

// readACL đọc phần ACL của document
func (s *Store) readACL(ctx context.Context, docID primitive.ObjectID) (*aclDocument, error) {
	var doc aclDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": docID}).Decode(&doc)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return &doc, nil
}

// RawACL trả về ACL lưu trong document nguyên vẹn, kể cả grant stale
func (s *Store) RawACL(ctx context.Context, docID primitive.ObjectID) (*Control, *Level, error) {
	doc, err := s.readACL(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	return &doc.Access, doc.PublicLevel, nil
}

// SetUserAccess cấp hoặc thu hồi (level nil) quyền của user trên document
func (s *Store) SetUserAccess(ctx context.Context, docID primitive.ObjectID, userID primitive.ObjectID, level *Level) error {
	return s.setEntry(ctx, docID, "access.users", userID, level)
}

// SetGroupAccess cấp hoặc thu hồi (level nil) quyền của group trên document
func (s *Store) SetGroupAccess(ctx context.Context, docID primitive.ObjectID, groupID primitive.ObjectID, level *Level) error {
	return s.setEntry(ctx, docID, "access.groups", groupID, level)
}

// revokeEntryOp build update $pull gỡ grant của principal khỏi danh sách
func revokeEntryOp(docID primitive.ObjectID, listField string, principalID primitive.ObjectID) (bson.M, bson.M) {
	filter := bson.M{"_id": docID}
	update := bson.M{"$pull": bson.M{listField: bson.M{"id": principalID}}}
	return filter, update
}

// updateEntryLevelOp build update đổi mức của grant sẵn có bằng positional
// operator; chỉ match khi grant đang tồn tại
func updateEntryLevelOp(docID primitive.ObjectID, listField string, principalID primitive.ObjectID, level Level) (bson.M, bson.M) {
	filter := bson.M{"_id": docID, listField + ".id": principalID}
	update := bson.M{"$set": bson.M{listField + ".$.level": level}}
	return filter, update
}

// insertEntryOp build update chèn grant mới vào cuối danh sách. Điều kiện
// $ne chặn chèn trùng khi một grant cho cùng principal vừa được ghi song song.
func insertEntryOp(docID primitive.ObjectID, listField string, principalID primitive.ObjectID, level Level) (bson.M, bson.M) {
	filter := bson.M{"_id": docID, listField + ".id": bson.M{"$ne": principalID}}
	update := bson.M{"$push": bson.M{listField: Entry{ID: principalID, Level: level}}}
	return filter, update
}

// setEntry cấp hoặc thu hồi grant bằng các update nguyên tử trên một
// document. Không đọc-sửa-ghi: hai grant ghi song song không mất update của
// nhau và không chèn lại grant mà Cleaner vừa gỡ.
func (s *Store) setEntry(ctx context.Context, docID primitive.ObjectID, listField string, principalID primitive.ObjectID, level *Level) error {
	if level == nil {
		filter, update := revokeEntryOp(docID, listField, principalID)
		result, err := s.collection.UpdateOne(ctx, filter, update)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if result.MatchedCount == 0 {
			return common.ErrNotFound
		}
		return nil
	}

	if !ValidLevel(*level) {
		return common.NewError(common.ErrCodeValidationInput, "Mức truy cập không hợp lệ", common.StatusBadRequest, nil)
	}

	for attempt := 0; attempt < 3; attempt++ {
		filter, update := updateEntryLevelOp(docID, listField, principalID, *level)
		result, err := s.collection.UpdateOne(ctx, filter, update)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if result.MatchedCount > 0 {
			return nil
		}

		filter, update = insertEntryOp(docID, listField, principalID, *level)
		result, err = s.collection.UpdateOne(ctx, filter, update)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if result.MatchedCount > 0 {
			return nil
		}

		// Cả hai bước không match: document không tồn tại, hoặc grant cho
		// principal vừa được chèn song song giữa hai bước. Kiểm tra tồn tại
		// rồi thử lại.
		count, err := s.collection.CountDocuments(ctx, bson.M{"_id": docID})
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count == 0 {
			return common.ErrNotFound
		}
	}
	return common.NewError(common.ErrCodeDatabaseQuery, "Không thể cập nhật access list", common.StatusInternalServerError, nil)
}

// SetPublicLevel đặt hoặc gỡ (level nil) mức truy cập public của document
func (s *Store) SetPublicLevel(ctx context.Context, docID primitive.ObjectID, level *Level) error {
	var update bson.M
	if level == nil {
		update = bson.M{"$unset": bson.M{"publicLevel": ""}}
	} else {
		if !ValidLevel(*level) {
			return common.NewError(common.ErrCodeValidationInput, "Mức truy cập không hợp lệ", common.StatusBadRequest, nil)
		}
		update = bson.M{"$set": bson.M{"publicLevel": *level}}
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": docID}, update)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// FullAccessList trả về ACL đã resolve tên principal. Grant trỏ tới principal
// không còn tồn tại bị loại bỏ im lặng, không sửa dữ liệu lưu trữ.
func (s *Store) FullAccessList(ctx context.Context, docID primitive.ObjectID, resolver PrincipalResolver) (*FullAccessList, error) {
	doc, err := s.readACL(ctx, docID)
	if err != nil {
		return nil, err
	}

	full := &FullAccessList{Users: []NamedEntry{}, Groups: []NamedEntry{}}
	for _, e := range doc.Access.Users {
		name, exists, err := resolver.ResolveUser(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		full.Users = append(full.Users, NamedEntry{ID: e.ID, Name: name, Level: e.Level})
	}
	for _, e := range doc.Access.Groups {
		name, exists, err := resolver.ResolveGroup(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		full.Groups = append(full.Groups, NamedEntry{ID: e.ID, Name: name, Level: e.Level})
	}
	return full, nil
}

// ResolveCallerLevel đọc document và tính mức truy cập hiệu lực của caller
func (s *Store) ResolveCallerLevel(ctx context.Context, docID primitive.ObjectID, caller *Caller) (Level, error) {
	doc, err := s.readACL(ctx, docID)
	if err != nil {
		return LevelNone, err
	}
	return ResolveLevel(&doc.Access, doc.PublicLevel, caller), nil
}

// ==========================================================================
// Dọn dẹp tham chiếu ACL khi principal bị xóa
// ==========================================================================

// DeletionHooks là interface mà service xóa user/group gọi để dọn dẹp
// các tham chiếu ACL tới principal vừa xóa.
type DeletionHooks interface {
	OnUserDeleted(ctx context.Context, userID primitive.ObjectID) error
	OnGroupDeleted(ctx context.Context, groupID primitive.ObjectID) error
}

// Cleaner implement DeletionHooks trên một danh sách collection kiểm soát
// truy cập, build một lần lúc khởi động và truyền vào các service cần nó.
type Cleaner struct {
	targets []*mongo.Collection
}

// NewCleaner tạo Cleaner cho các collection có document kiểm soát truy cập
func NewCleaner(targets ...*mongo.Collection) *Cleaner {
	return &Cleaner{targets: targets}
}

// OnUserDeleted gỡ mọi grant của user khỏi ACL của tất cả collection và xóa
// creatorId trỏ tới user. Idempotent: chạy lại trên grant stale là no-op.
func (cl *Cleaner) OnUserDeleted(ctx context.Context, userID primitive.ObjectID) error {
	for _, collection := range cl.targets {
		if _, err := collection.UpdateMany(ctx,
			bson.M{"access.users.id": userID},
			bson.M{"$pull": bson.M{"access.users": bson.M{"id": userID}}},
		); err != nil {
			return common.ConvertMongoError(err)
		}
		if _, err := collection.UpdateMany(ctx,
			bson.M{"creatorId": userID},
			bson.M{"$unset": bson.M{"creatorId": ""}},
		); err != nil {
			return common.ConvertMongoError(err)
		}
	}
	return nil
}

// OnGroupDeleted gỡ mọi grant của group khỏi ACL của tất cả collection
func (cl *Cleaner) OnGroupDeleted(ctx context.Context, groupID primitive.ObjectID) error {
	for _, collection := range cl.targets {
		if _, err := collection.UpdateMany(ctx,
			bson.M{"access.groups.id": groupID},
			bson.M{"$pull": bson.M{"access.groups": bson.M{"id": groupID}}},
		); err != nil {
			return common.ConvertMongoError(err)
		}
	}
	return nil
}
