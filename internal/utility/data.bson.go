package utility

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển một struct (hoặc document) sang map[string]interface{} qua
// BSON roundtrip, giữ nguyên tên field theo bson tag.
func ToMap(input interface{}) (map[string]interface{}, error) {
	if input == nil {
		return nil, nil
	}
	if m, ok := input.(map[string]interface{}); ok {
		return m, nil
	}

	data, err := bson.Marshal(input)
	if err != nil {
		return nil, err
	}

	// Xử lý unmarshal về map để các kiểu BSON (ObjectID, DateTime) giữ nguyên
	var result map[string]interface{}
	if err := bson.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return result, nil
}
