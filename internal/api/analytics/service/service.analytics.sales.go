package analyticssvc

import (
	"context"
	"time"

	analyticsdto "ecommerce_analytics/internal/api/analytics/dto"
	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	"ecommerce_analytics/internal/common"
)

// GetSalesReport dựng báo cáo sales theo chu kỳ: bucket theo granularity
// trong cửa sổ lookback tương ứng, kèm breakdown theo phương thức thanh toán
// trên toàn lịch sử. Granularity không hợp lệ -> lỗi 400, không dùng mặc định.
func (s *AnalyticsService) GetSalesReport(ctx context.Context, period string) (*analyticsdto.SalesReport, error) {
	if !ValidGranularity(period) {
		return nil, common.ErrInvalidPeriod
	}

	release, err := s.acquireSlot(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	// Lấy toàn bộ lịch sử order một lần: bucket cần cửa sổ lookback,
	// breakdown cần toàn lịch sử — engine tự lọc cửa sổ khi gom.
	orders, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) ([]analyticsmodels.OrderRecord, error) {
		return s.orders.Find(queryCtx, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	buckets, err := AggregateByPeriod(orders, period, now)
	if err != nil {
		return nil, err
	}

	breakdown, err := AggregateByField(orders, "paymentMethod")
	if err != nil {
		return nil, err
	}

	return &analyticsdto.SalesReport{
		Period:           period,
		Buckets:          buckets,
		PaymentBreakdown: breakdown,
	}, nil
}
