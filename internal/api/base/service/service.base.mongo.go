// Package basesvc cung cấp tầng CRUD generic trên MongoDB cho mọi model.
// Mỗi service domain embed BaseServiceMongoImpl[T] với T là model của nó.
package basesvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/manthey/girder/internal/api/base/models"
	"github.com/manthey/girder/internal/common"
	"github.com/manthey/girder/internal/utility"
)

// UpdateData mô tả một thao tác update có cấu trúc, tránh caller tự ghép
// operator của Mongo. Field nào nil thì operator đó không xuất hiện.
type UpdateData struct {
	Set         map[string]interface{} `bson:"$set,omitempty"`
	SetOnInsert map[string]interface{} `bson:"$setOnInsert,omitempty"`
	Unset       map[string]interface{} `bson:"$unset,omitempty"`
	Push        map[string]interface{} `bson:"$push,omitempty"`
	Pull        map[string]interface{} `bson:"$pull,omitempty"`
	AddToSet    map[string]interface{} `bson:"$addToSet,omitempty"`
}

// ToUpdateData chuyển một model/map thành UpdateData dạng $set toàn bộ field
func ToUpdateData(input interface{}) (*UpdateData, error) {
	data, err := utility.ToMap(input)
	if err != nil {
		return nil, err
	}
	delete(data, "_id")
	return &UpdateData{Set: data}, nil
}

// BaseServiceMongo là interface CRUD chung trên một collection
type BaseServiceMongo[T any] interface {
	InsertOne(ctx context.Context, data T) (T, error)
	InsertMany(ctx context.Context, data []T) ([]T, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data *UpdateData) (T, error)
	UpdateOne(ctx context.Context, filter interface{}, data *UpdateData) (T, error)
	UpdateMany(ctx context.Context, filter interface{}, data *UpdateData) (int64, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
	Upsert(ctx context.Context, filter interface{}, data *UpdateData) (T, error)
	Exists(ctx context.Context, filter interface{}) (bool, error)
	Collection() *mongo.Collection
}

// BaseServiceMongoImpl implement BaseServiceMongo trên một *mongo.Collection
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo service CRUD cho collection
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection trả về collection gốc cho các truy vấn đặc thù
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// nowMillis thời điểm hiện tại tính theo millisecond, dùng cho createdAt/updatedAt
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// prepareInsert chuyển model thành map và gắn timestamps
func prepareInsert(data interface{}) (map[string]interface{}, error) {
	doc, err := utility.ToMap(data)
	if err != nil {
		return nil, err
	}
	now := nowMillis()
	doc["createdAt"] = now
	doc["updatedAt"] = now
	// _id zero value để Mongo tự sinh
	if id, ok := doc["_id"].(primitive.ObjectID); ok && id.IsZero() {
		delete(doc, "_id")
	}
	return doc, nil
}

// buildUpdate chuyển UpdateData thành bson.M, luôn cập nhật updatedAt
func buildUpdate(data *UpdateData) bson.M {
	update := bson.M{}
	set := map[string]interface{}{}
	if data != nil && data.Set != nil {
		for k, v := range data.Set {
			set[k] = v
		}
	}
	delete(set, "_id")
	set["updatedAt"] = nowMillis()
	update["$set"] = set

	if data != nil {
		if len(data.SetOnInsert) > 0 {
			update["$setOnInsert"] = data.SetOnInsert
		}
		if len(data.Unset) > 0 {
			update["$unset"] = data.Unset
		}
		if len(data.Push) > 0 {
			update["$push"] = data.Push
		}
		if len(data.Pull) > 0 {
			update["$pull"] = data.Pull
		}
		if len(data.AddToSet) > 0 {
			update["$addToSet"] = data.AddToSet
		}
	}
	return update
}

// InsertOne chèn một document, tự gắn createdAt/updatedAt
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T
	doc, err := prepareInsert(data)
	if err != nil {
		return zero, err
	}

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return zero, common.NewError(common.ErrCodeDatabaseQuery, "InsertedID không phải ObjectID", common.StatusInternalServerError, nil)
	}
	return s.FindOneById(ctx, id)
}

// InsertMany chèn nhiều document, tự gắn timestamps cho từng document
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return []T{}, nil
	}

	docs := make([]interface{}, 0, len(data))
	for _, item := range data {
		doc, err := prepareInsert(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	inserted := make([]T, 0, len(result.InsertedIDs))
	for _, rawID := range result.InsertedIDs {
		id, ok := rawID.(primitive.ObjectID)
		if !ok {
			continue
		}
		item, err := s.FindOneById(ctx, id)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, item)
	}
	return inserted, nil
}

// FindOne tìm một document theo filter; không có thì trả common.ErrNotFound
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	if filter == nil {
		filter = bson.M{}
	}
	err := s.collection.FindOne(ctx, filter, opts).Decode(&result)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm document theo _id
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm nhiều document; kết quả rỗng trả []T{} thay vì nil
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindWithPagination tìm theo trang; page bắt đầu từ 1
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if filter == nil {
		filter = bson.M{}
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip((page - 1) * limit).SetLimit(limit)

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &basemodels.PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: (total + limit - 1) / limit,
	}, nil
}

// UpdateById cập nhật document theo _id, trả về bản sau cập nhật
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data *UpdateData) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, data)
}

// UpdateOne cập nhật document đầu tiên khớp filter, trả về bản sau cập nhật
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, data *UpdateData) (T, error) {
	var result T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.collection.FindOneAndUpdate(ctx, filter, buildUpdate(data), opts).Decode(&result)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// UpdateMany cập nhật mọi document khớp filter, trả về số document thay đổi
func (s *BaseServiceMongoImpl[T]) UpdateMany(ctx context.Context, filter interface{}, data *UpdateData) (int64, error) {
	result, err := s.collection.UpdateMany(ctx, filter, buildUpdate(data))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.ModifiedCount, nil
}

// DeleteById xóa document theo _id; không tồn tại thì trả ErrNotFound
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteMany xóa mọi document khớp filter, trả về số document đã xóa
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// CountDocuments đếm số document khớp filter
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Distinct lấy danh sách giá trị distinct của một field
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	if filter == nil {
		filter = bson.M{}
	}
	values, err := s.collection.Distinct(ctx, fieldName, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// Upsert cập nhật hoặc chèn document khớp filter, trả về bản sau thao tác.
// Sort theo _id để kết quả ổn định khi filter khớp nhiều document.
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, data *UpdateData) (T, error) {
	var result T
	update := buildUpdate(data)

	// Với upsert, createdAt chỉ set khi chèn mới
	setOnInsert, _ := update["$setOnInsert"].(map[string]interface{})
	if setOnInsert == nil {
		setOnInsert = map[string]interface{}{}
	}
	setOnInsert["createdAt"] = nowMillis()
	update["$setOnInsert"] = setOnInsert

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// Exists kiểm tra có document nào khớp filter không
func (s *BaseServiceMongoImpl[T]) Exists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}
