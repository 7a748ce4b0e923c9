package utility

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manthey/girder/internal/common"
)

// String2ObjectID chuyển hex string sang ObjectID, trả lỗi validation nếu sai định dạng
func String2ObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID không đúng định dạng", common.StatusBadRequest, err)
	}
	return objectID, nil
}

// ObjectID2String chuyển ObjectID sang hex string
func ObjectID2String(id primitive.ObjectID) string {
	return id.Hex()
}
