package worker

import (
	"context"
	"time"

	authsvc "github.com/manthey/girder/internal/api/auth/service"
	"github.com/manthey/girder/internal/logger"
)

// TokenCleanupWorker worker dọn các token đã hết hạn khỏi DB.
// Token hết hạn đã bị từ chối lazy lúc xác thực; worker chỉ thu hồi
// chỗ lưu trữ của các bản ghi chết.
type TokenCleanupWorker struct {
	tokenService *authsvc.TokenService
	interval     time.Duration // Khoảng thời gian giữa các lần chạy
}

// NewTokenCleanupWorker tạo mới TokenCleanupWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần quét (mặc định: 1 giờ)
//
// Trả về:
//   - *TokenCleanupWorker: Instance mới của TokenCleanupWorker
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewTokenCleanupWorker(tokenService *authsvc.TokenService, interval time.Duration) (*TokenCleanupWorker, error) {
	if interval < time.Minute {
		interval = time.Hour
	}
	return &TokenCleanupWorker{
		tokenService: tokenService,
		interval:     interval,
	}, nil
}

// Start bắt đầu background worker quét token hết hạn định kỳ
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🔄 [TOKEN_CLEANUP] Starting Token Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [TOKEN_CLEANUP] Token Cleanup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🔄 [TOKEN_CLEANUP] Panic khi quét token hết hạn, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				removedCount, err := w.tokenService.SweepExpired(ctx)
				if err != nil {
					log.WithError(err).Error("🔄 [TOKEN_CLEANUP] Failed to sweep expired tokens")
					return
				}

				if removedCount > 0 {
					log.WithFields(map[string]interface{}{
						"removedCount": removedCount,
					}).Info("🔄 [TOKEN_CLEANUP] Removed expired tokens")
				}
				// Nếu removedCount = 0, không log (giảm log noise)
			}()
		}
	}
}
