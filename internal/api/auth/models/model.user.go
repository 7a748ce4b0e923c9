// Package authmodels chứa các model của domain auth: user, group, token, api key.
package authmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User là người dùng của hệ thống. PasswordHash không bao giờ serialize ra JSON.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Login        string             `json:"login" bson:"login"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	Name         string             `json:"name,omitempty" bson:"name,omitempty"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	SiteAdmin    bool               `json:"siteAdmin" bson:"siteAdmin"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
