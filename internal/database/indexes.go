// Package database - Khai báo index cho các collection của hệ thống.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manthey/girder/internal/global"
)

// CreateIndexes tạo toàn bộ index cần thiết cho hệ thống.
// Gọi một lần lúc khởi động, sau khi collections đã được đăng ký.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	// users: login unique (case-normalized ở tầng service), email unique sparse
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "login", Value: 1}},
		Options: options.Index().SetName("user_login_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("user_email_unique").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// groups: name unique
	groups := db.Collection(global.MongoDB_ColNames.Groups)
	if _, err := groups.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("group_name_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// tokens: tra cứu theo giá trị token, theo key phát hành và theo hạn dùng
	tokens := db.Collection(global.MongoDB_ColNames.Tokens)
	if _, err := tokens.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetName("token_value_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := tokens.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "apiKeyId", Value: 1}},
		Options: options.Index().SetName("token_api_key").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := tokens.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires", Value: 1}},
		Options: options.Index().SetName("token_expires"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// api_keys: secret unique, tra cứu theo user sở hữu
	apiKeys := db.Collection(global.MongoDB_ColNames.ApiKeys)
	if _, err := apiKeys.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetName("api_key_secret_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := apiKeys.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("api_key_user"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// folders: tra cứu ACL theo principal khi dọn dẹp lúc xóa user/group
	folders := db.Collection(global.MongoDB_ColNames.Folders)
	if _, err := folders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "access.users.id", Value: 1}},
		Options: options.Index().SetName("folder_access_users"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := folders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "access.groups.id", Value: 1}},
		Options: options.Index().SetName("folder_access_groups"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

// isIndexExistsError nhận diện lỗi index đã tồn tại (tạo lại là no-op chấp nhận được)
func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "IndexOptionsConflict") ||
		strings.Contains(msg, "IndexKeySpecsConflict")
}
