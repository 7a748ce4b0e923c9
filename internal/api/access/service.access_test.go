package access

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRevokeEntryOp(t *testing.T) {
	docID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	filter, update := revokeEntryOp(docID, "access.users", userID)

	if filter["_id"] != docID {
		t.Errorf("filter phải match theo _id document: %v", filter)
	}
	pull, ok := update["$pull"].(bson.M)
	if !ok {
		t.Fatalf("thu hồi phải dùng $pull: %v", update)
	}
	cond, ok := pull["access.users"].(bson.M)
	if !ok || cond["id"] != userID {
		t.Errorf("$pull phải gỡ đúng grant của principal: %v", pull)
	}
}

func TestUpdateEntryLevelOp(t *testing.T) {
	docID := primitive.NewObjectID()
	groupID := primitive.NewObjectID()

	filter, update := updateEntryLevelOp(docID, "access.groups", groupID, LevelWrite)

	if filter["_id"] != docID || filter["access.groups.id"] != groupID {
		t.Errorf("filter phải match document và grant đang tồn tại: %v", filter)
	}
	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("đổi mức phải dùng $set: %v", update)
	}
	if set["access.groups.$.level"] != LevelWrite {
		t.Errorf("$set phải trỏ vào phần tử match qua positional operator: %v", set)
	}
}

func TestInsertEntryOp(t *testing.T) {
	docID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	filter, update := insertEntryOp(docID, "access.users", userID, LevelRead)

	// Điều kiện $ne là chốt chặn race: nếu grant cho principal vừa được ghi
	// song song thì update không match thay vì chèn entry trùng
	guard, ok := filter["access.users.id"].(bson.M)
	if !ok || guard["$ne"] != userID {
		t.Errorf("filter chèn phải có điều kiện $ne chặn grant trùng: %v", filter)
	}

	push, ok := update["$push"].(bson.M)
	if !ok {
		t.Fatalf("chèn grant mới phải dùng $push: %v", update)
	}
	entry, ok := push["access.users"].(Entry)
	if !ok || entry.ID != userID || entry.Level != LevelRead {
		t.Errorf("entry chèn vào sai principal hoặc sai mức: %v", push)
	}
}
