// Package analyticssvc chứa service tổng hợp số liệu analytics.
// File: service.analytics.go - giữ tên cấu trúc cũ (service.<domain>.<entity>.go).
package analyticssvc

import (
	"context"
	"fmt"
	"time"

	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	basesvc "ecommerce_analytics/internal/api/base/service"
	"ecommerce_analytics/internal/common"
	"ecommerce_analytics/internal/global"
)

// AnalyticsService xử lý toàn bộ truy vấn analytics: dashboard tổng quan,
// báo cáo sales theo chu kỳ, ranking sản phẩm, người dùng, tìm kiếm và
// sample real-time. Collections được resolve một lần khi khởi tạo.
type AnalyticsService struct {
	metrics      *basesvc.BaseServiceMongoImpl[analyticsmodels.MetricSnapshot]
	orders       *basesvc.BaseServiceMongoImpl[analyticsmodels.OrderRecord]
	products     *basesvc.BaseServiceMongoImpl[analyticsmodels.ProductMetric]
	users        *basesvc.BaseServiceMongoImpl[analyticsmodels.UserMetric]
	sessions     *basesvc.BaseServiceMongoImpl[analyticsmodels.SessionRecord]
	searchTerms  *basesvc.BaseServiceMongoImpl[analyticsmodels.SearchTerm]
	zeroSearches *basesvc.BaseServiceMongoImpl[analyticsmodels.ZeroResultSearchEvent]
	realtime     *basesvc.BaseServiceMongoImpl[analyticsmodels.RealtimeSample]

	guard *StorageGuard // Timeout + circuit breaker cho mọi truy vấn storage
	sem   chan struct{} // Giới hạn số aggregation query nặng chạy đồng thời
}

// NewAnalyticsService tạo mới AnalyticsService.
func NewAnalyticsService() (*AnalyticsService, error) {
	names := []string{
		global.MongoDB_ColNames.DailyMetrics,
		global.MongoDB_ColNames.Orders,
		global.MongoDB_ColNames.Products,
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Sessions,
		global.MongoDB_ColNames.SearchTerms,
		global.MongoDB_ColNames.ZeroSearches,
		global.MongoDB_ColNames.Realtime,
	}
	for _, name := range names {
		if _, ok := global.RegistryCollections.Get(name); !ok {
			return nil, fmt.Errorf("không tìm thấy collection %s: %w", name, common.ErrNotFound)
		}
	}

	get := global.RegistryCollections.MustGet

	queryTimeout := 10 * time.Second
	maxInflight := 8
	if global.MongoDB_ServerConfig != nil {
		if global.MongoDB_ServerConfig.Storage_QueryTimeout > 0 {
			queryTimeout = time.Duration(global.MongoDB_ServerConfig.Storage_QueryTimeout) * time.Second
		}
		if global.MongoDB_ServerConfig.Aggregation_MaxInflight > 0 {
			maxInflight = global.MongoDB_ServerConfig.Aggregation_MaxInflight
		}
	}

	return &AnalyticsService{
		metrics:      basesvc.NewBaseServiceMongo[analyticsmodels.MetricSnapshot](get(global.MongoDB_ColNames.DailyMetrics)),
		orders:       basesvc.NewBaseServiceMongo[analyticsmodels.OrderRecord](get(global.MongoDB_ColNames.Orders)),
		products:     basesvc.NewBaseServiceMongo[analyticsmodels.ProductMetric](get(global.MongoDB_ColNames.Products)),
		users:        basesvc.NewBaseServiceMongo[analyticsmodels.UserMetric](get(global.MongoDB_ColNames.Users)),
		sessions:     basesvc.NewBaseServiceMongo[analyticsmodels.SessionRecord](get(global.MongoDB_ColNames.Sessions)),
		searchTerms:  basesvc.NewBaseServiceMongo[analyticsmodels.SearchTerm](get(global.MongoDB_ColNames.SearchTerms)),
		zeroSearches: basesvc.NewBaseServiceMongo[analyticsmodels.ZeroResultSearchEvent](get(global.MongoDB_ColNames.ZeroSearches)),
		realtime:     basesvc.NewBaseServiceMongo[analyticsmodels.RealtimeSample](get(global.MongoDB_ColNames.Realtime)),
		guard:        NewStorageGuard(queryTimeout),
		sem:          make(chan struct{}, maxInflight),
	}, nil
}

// acquireSlot giữ một slot trong semaphore admission cho aggregation nặng.
// Request chờ (không bị drop) cho đến khi có slot hoặc context hết hạn.
func (s *AnalyticsService) acquireSlot(ctx context.Context) (release func(), err error) {
	select {
	case s.sem <- struct{}{}:
		return func() { <-s.sem }, nil
	case <-ctx.Done():
		return nil, common.ErrTooManyAggregations
	}
}
