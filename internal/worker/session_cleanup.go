// Package worker chứa các background worker chạy định kỳ.
package worker

import (
	"context"
	"time"

	analyticssvc "ecommerce_analytics/internal/api/analytics/service"
	"ecommerce_analytics/internal/logger"
)

// SessionCleanupWorker xóa các session không hoạt động quá hạn retention.
// Chạy định kỳ để collection session không phình vô hạn.
type SessionCleanupWorker struct {
	analyticsService *analyticssvc.AnalyticsService
	interval         time.Duration // Khoảng thời gian giữa các lần chạy
	retentionDays    int           // Số ngày giữ session không hoạt động
}

// NewSessionCleanupWorker tạo mới SessionCleanupWorker.
// interval dưới 1 phút được nâng lên mặc định 1 giờ; retentionDays dưới 1 thành 7.
func NewSessionCleanupWorker(interval time.Duration, retentionDays int) (*SessionCleanupWorker, error) {
	analyticsService, err := analyticssvc.NewAnalyticsService()
	if err != nil {
		return nil, err
	}

	if interval < time.Minute {
		interval = time.Hour
	}
	if retentionDays < 1 {
		retentionDays = 7
	}

	return &SessionCleanupWorker{
		analyticsService: analyticsService,
		interval:         interval,
		retentionDays:    retentionDays,
	}, nil
}

// Start chạy worker cho đến khi context bị hủy
func (w *SessionCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":      w.interval.String(),
		"retentionDays": w.retentionDays,
	}).Info("[SESSION_CLEANUP] Starting Session Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("[SESSION_CLEANUP] Session Cleanup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("[SESSION_CLEANUP] Panic khi xóa session cũ, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				deletedCount, err := w.analyticsService.DeleteStaleSessions(ctx, w.retentionDays)
				if err != nil {
					log.WithError(err).Error("[SESSION_CLEANUP] Failed to delete stale sessions")
					return
				}

				if deletedCount > 0 {
					log.WithFields(map[string]interface{}{
						"deletedCount":  deletedCount,
						"retentionDays": w.retentionDays,
					}).Info("[SESSION_CLEANUP] Deleted stale sessions")
				}
				// deletedCount = 0 không log để giảm noise
			}()
		}
	}
}
