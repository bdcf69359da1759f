// Package analyticssvc - Test timeout và circuit breaker bọc truy vấn storage.
package analyticssvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecommerce_analytics/internal/common"
)

func TestGuardedQuery_TruyVanThanhCong(t *testing.T) {
	guard := NewStorageGuard(time.Second)

	got, err := GuardedQuery(context.Background(), guard, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("GuardedQuery trả về lỗi: %v", err)
	}
	if got != 42 {
		t.Errorf("kết quả = %d, muốn 42", got)
	}
}

func TestGuardedQuery_TruyenDeadlineVaoContext(t *testing.T) {
	guard := NewStorageGuard(time.Second)

	_, err := GuardedQuery(context.Background(), guard, func(ctx context.Context) (struct{}, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("context truyền vào truy vấn phải có deadline")
		}
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("GuardedQuery trả về lỗi: %v", err)
	}
}

func TestGuardedQuery_TimeoutThanhLoiTimeout(t *testing.T) {
	guard := NewStorageGuard(10 * time.Millisecond)

	_, err := GuardedQuery(context.Background(), guard, func(ctx context.Context) (struct{}, error) {
		<-ctx.Done()
		return struct{}{}, ctx.Err()
	})
	if !errors.Is(err, common.ErrMongoTimeout) {
		t.Errorf("truy vấn quá timeout phải trả về ErrMongoTimeout, nhận: %v", err)
	}
}

// Sau 5 lần lỗi liên tiếp breaker mở: truy vấn tiếp theo fail nhanh
// với lỗi kết nối chung, không chạm vào storage.
func TestGuardedQuery_BreakerMoSau5LanLoi(t *testing.T) {
	guard := NewStorageGuard(time.Second)
	queryErr := errors.New("storage down")

	for i := 0; i < 5; i++ {
		_, err := GuardedQuery(context.Background(), guard, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, queryErr
		})
		if !errors.Is(err, queryErr) {
			t.Fatalf("lần %d: muốn lỗi gốc, nhận: %v", i+1, err)
		}
	}

	touched := false
	_, err := GuardedQuery(context.Background(), guard, func(ctx context.Context) (struct{}, error) {
		touched = true
		return struct{}{}, nil
	})
	if !errors.Is(err, common.ErrConnection) {
		t.Errorf("breaker mở phải trả về ErrConnection, nhận: %v", err)
	}
	if touched {
		t.Error("breaker mở thì truy vấn không được chạy")
	}
}

func TestAcquireSlot_GioiHanSoLuong(t *testing.T) {
	s := &AnalyticsService{sem: make(chan struct{}, 1)}

	release, err := s.acquireSlot(context.Background())
	if err != nil {
		t.Fatalf("acquireSlot trả về lỗi: %v", err)
	}

	// Slot đã đầy: request mới chờ đến khi context hết hạn
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := s.acquireSlot(ctx); !errors.Is(err, common.ErrTooManyAggregations) {
		t.Errorf("hết slot và context hết hạn phải trả về ErrTooManyAggregations, nhận: %v", err)
	}

	// Trả slot: request mới lấy được ngay
	release()
	release2, err := s.acquireSlot(context.Background())
	if err != nil {
		t.Fatalf("acquireSlot sau khi release trả về lỗi: %v", err)
	}
	release2()
}
