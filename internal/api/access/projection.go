package access

import (
	"github.com/manthey/girder/internal/common"
)

// Projection mô tả projection kiểu Mongo: field → true (inclusion) hoặc
// false (exclusion). Projection nil nghĩa là lấy toàn bộ document.
type Projection map[string]bool

// IsInclusionProjection phân loại projection là inclusion hay exclusion.
//
// Quy tắc:
//   - nil hoặc rỗng → exclusion (trả mọi field)
//   - có bất kỳ giá trị true nào → inclusion; "_id": false được phép đi kèm
//   - toàn giá trị false → exclusion
//   - trộn true/false ngoài trường hợp "_id": false → lỗi validation
func IsInclusionProjection(p Projection) (bool, error) {
	if len(p) == 0 {
		return false, nil
	}

	truthy := 0
	falsy := 0
	for field, include := range p {
		if include {
			truthy++
		} else if field != "_id" {
			falsy++
		}
	}

	if truthy > 0 && falsy > 0 {
		return false, common.NewError(common.ErrCodeValidationInput, "Projection không được trộn inclusion và exclusion", common.StatusBadRequest, nil)
	}
	return truthy > 0, nil
}

// SupplementFields bổ sung các field hệ thống cần đọc vào projection sao cho
// chúng chắc chắn có mặt trong kết quả truy vấn. Trả về bản sao; projection
// gốc giữ nguyên để RemoveSupplementalFields khôi phục sau khi dùng.
func SupplementFields(p Projection, fields []string) (Projection, error) {
	if p == nil {
		return nil, nil
	}

	inclusion, err := IsInclusionProjection(p)
	if err != nil {
		return nil, err
	}

	supplemented := make(Projection, len(p)+len(fields))
	for k, v := range p {
		supplemented[k] = v
	}

	for _, f := range fields {
		if inclusion {
			supplemented[f] = true
		} else {
			// Exclusion: bỏ field khỏi danh sách loại trừ để nó được trả về
			delete(supplemented, f)
		}
	}
	return supplemented, nil
}

// RemoveSupplementalFields gỡ khỏi doc các field chỉ được thêm vào vì
// SupplementFields, trả doc về đúng hình dạng projection gốc yêu cầu.
// Doc được sửa tại chỗ.
func RemoveSupplementalFields(doc map[string]interface{}, original Projection) error {
	if doc == nil || original == nil {
		return nil
	}

	inclusion, err := IsInclusionProjection(original)
	if err != nil {
		return err
	}

	if inclusion {
		for field := range doc {
			if original[field] {
				continue
			}
			// _id luôn được Mongo trả về trừ khi bị loại tường minh
			if field == "_id" {
				if include, present := original["_id"]; !present || include {
					continue
				}
			}
			delete(doc, field)
		}
		return nil
	}

	for field, include := range original {
		if !include {
			delete(doc, field)
		}
	}
	return nil
}
