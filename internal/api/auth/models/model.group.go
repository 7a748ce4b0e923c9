package authmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group là nhóm người dùng, dùng làm principal trong ACL
type Group struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description,omitempty" bson:"description,omitempty"`
	MemberIDs   []primitive.ObjectID `json:"memberIds" bson:"memberIds"`
	CreatedAt   int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64                `json:"updatedAt" bson:"updatedAt"`
}
