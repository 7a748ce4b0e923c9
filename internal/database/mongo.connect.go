// Package database quản lý kết nối MongoDB và index của các collection.
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/manthey/girder/config"
	"github.com/manthey/girder/internal/common"
)

// GetInstance tạo client MongoDB với connection pool và kiểm tra kết nối bằng ping
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(50).
		SetMinPoolSize(10).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, common.NewError(common.ErrCodeDatabaseConnection, "Không thể kết nối MongoDB", common.StatusInternalServerError, err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, common.NewError(common.ErrCodeDatabaseConnection, "MongoDB không phản hồi ping", common.StatusInternalServerError, err)
	}

	return client, nil
}

// CloseInstance đóng client, dùng khi shutdown
func CloseInstance(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
