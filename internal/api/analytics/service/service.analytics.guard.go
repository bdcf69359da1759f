package analyticssvc

import (
	"context"
	"errors"
	"time"

	"ecommerce_analytics/internal/common"
	"ecommerce_analytics/internal/logger"

	"github.com/sony/gobreaker"
)

// StorageGuard bọc mọi truy vấn storage với timeout và circuit breaker.
// Breaker mở sau 5 lần lỗi liên tiếp, thử lại (half-open) sau 30 giây —
// khi MongoDB có sự cố, request fail nhanh thay vì dồn đống chờ timeout.
type StorageGuard struct {
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
}

// NewStorageGuard tạo guard với timeout cho mỗi truy vấn
func NewStorageGuard(timeout time.Duration) *StorageGuard {
	settings := gobreaker.Settings{
		Name:    "analytics-storage",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.GetAppLogger().Warnf("Circuit breaker %s chuyển trạng thái %s -> %s", name, from, to)
		},
	}
	return &StorageGuard{
		timeout: timeout,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// GuardedQuery chạy một truy vấn storage dưới timeout và circuit breaker của guard.
// Lỗi breaker mở được chuyển thành lỗi kết nối chung, không lộ chi tiết nội bộ.
func GuardedQuery[T any](ctx context.Context, g *StorageGuard, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	result, err := g.breaker.Execute(func() (interface{}, error) {
		queryCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		return fn(queryCtx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, common.ErrConnection
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return zero, common.ErrMongoTimeout
		}
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, common.ErrInvalidFormat
	}
	return typed, nil
}
