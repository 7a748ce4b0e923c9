package access

import (
	"sync"
)

// FieldRegistry quản lý mức lộ thông tin theo field cho từng loại document.
// Mỗi field được gắn mức truy cập tối thiểu để xuất hiện trong response;
// field chưa đăng ký không bao giờ được trả ra.
type FieldRegistry struct {
	models map[string]map[string]Level
	mu     sync.RWMutex
}

// NewFieldRegistry tạo registry rỗng
func NewFieldRegistry() *FieldRegistry {
	return &FieldRegistry{
		models: make(map[string]map[string]Level),
	}
}

// ExposeFields đăng ký các field của modelType được thấy từ mức level trở lên.
// Đăng ký lại một field sẽ ghi đè mức cũ.
func (r *FieldRegistry) ExposeFields(modelType string, level Level, fields ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.models[modelType]
	if !ok {
		m = make(map[string]Level)
		r.models[modelType] = m
	}
	for _, f := range fields {
		m[f] = level
	}
}

// HideFields gỡ các field khỏi registry; field bị gỡ không còn được trả ra
// ở bất kỳ mức nào.
func (r *FieldRegistry) HideFields(modelType string, fields ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.models[modelType]
	if !ok {
		return
	}
	for _, f := range fields {
		delete(m, f)
	}
}

// Filter trả về bản sao của doc chỉ gồm các field caller được thấy ở mức
// effective, kèm field _modelType đánh dấu loại document. Doc nil trả nil.
func (r *FieldRegistry) Filter(modelType string, doc map[string]interface{}, effective Level) map[string]interface{} {
	if doc == nil {
		return nil
	}

	r.mu.RLock()
	exposed := r.models[modelType]
	r.mu.RUnlock()

	filtered := make(map[string]interface{})
	for field, value := range doc {
		minLevel, ok := exposed[field]
		if ok && minLevel <= effective {
			filtered[field] = value
		}
	}
	filtered["_modelType"] = modelType
	return filtered
}

// ExposedFields liệt kê các field thấy được ở mức effective (phục vụ projection)
func (r *FieldRegistry) ExposedFields(modelType string, effective Level) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fields := []string{}
	for field, minLevel := range r.models[modelType] {
		if minLevel <= effective {
			fields = append(fields, field)
		}
	}
	return fields
}
