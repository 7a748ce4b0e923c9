package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// FilterHook đánh dấu các entry khớp danh sách filter bằng field _filtered
// để downstream (hoặc người đọc log) lọc bỏ được các endpoint ồn ào.
type FilterHook struct {
	endpoints []string
	methods   []string
}

// NewFilterHook tạo hook từ danh sách filter trong LogConfig
func NewFilterHook(cfg *LogConfig) *FilterHook {
	return &FilterHook{
		endpoints: cfg.FilterEndpoints,
		methods:   cfg.FilterMethods,
	}
}

// Levels hook áp dụng cho mọi level
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire kiểm tra field path/method của entry và đánh dấu _filtered nếu khớp
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if path, ok := entry.Data["path"].(string); ok {
		for _, e := range h.endpoints {
			if strings.HasPrefix(path, e) {
				entry.Data["_filtered"] = true
				return nil
			}
		}
	}
	if method, ok := entry.Data["method"].(string); ok {
		for _, m := range h.methods {
			if strings.EqualFold(method, m) {
				entry.Data["_filtered"] = true
				return nil
			}
		}
	}
	return nil
}
