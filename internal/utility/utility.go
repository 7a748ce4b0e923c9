// Package utility chứa các hàm tiện ích dùng chung: chuyển đổi struct,
// chuyển đổi BSON, cache, token và helper cho slice.
package utility

import (
	"encoding/json"
)

// ConvertStruct chuyển đổi một struct sang struct khác qua JSON roundtrip.
// target phải là con trỏ.
func ConvertStruct(source interface{}, target interface{}) (interface{}, error) {
	jsonData, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(jsonData, target)
	if err != nil {
		return nil, err
	}

	return target, nil
}
