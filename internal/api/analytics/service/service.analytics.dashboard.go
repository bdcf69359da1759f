package analyticssvc

import (
	"context"
	"errors"
	"sync"
	"time"

	analyticsdto "ecommerce_analytics/internal/api/analytics/dto"
	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	"ecommerce_analytics/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Tên các metric snapshot cố định của dashboard
const (
	MetricDailyPageViews = "daily_page_views"
	MetricDailySales     = "daily_sales"
)

// GetSnapshot lấy snapshot theo (name, date). Không tìm thấy -> (nil, nil):
// snapshot vắng mặt là trạng thái bình thường (chưa có event trong ngày),
// không phải lỗi và không làm nhảy circuit breaker.
func (s *AnalyticsService) GetSnapshot(ctx context.Context, name string, date string) (*analyticsmodels.MetricSnapshot, error) {
	return GuardedQuery(ctx, s.guard, func(queryCtx context.Context) (*analyticsmodels.MetricSnapshot, error) {
		snapshot, err := s.metrics.FindOne(queryCtx, bson.M{"name": name, "date": date}, nil)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &snapshot, nil
	})
}

// dashboardSnapshots gom 4 snapshot cần cho overview
type dashboardSnapshots struct {
	pageViewsToday     *analyticsmodels.MetricSnapshot
	pageViewsYesterday *analyticsmodels.MetricSnapshot
	salesToday         *analyticsmodels.MetricSnapshot
	salesYesterday     *analyticsmodels.MetricSnapshot
}

// GetDashboardOverview dựng payload tổng quan cho dashboard.
// 5 nhánh đọc độc lập chạy đồng thời (fan-out), join kết quả khi tất cả
// hoàn thành (fan-in). Bất kỳ nhánh nào lỗi thì cả request lỗi —
// không trả payload thiếu một phần.
func (s *AnalyticsService) GetDashboardOverview(ctx context.Context) (*analyticsdto.DashboardOverview, error) {
	release, err := s.acquireSlot(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now()
	today := now.UTC().Format("2006-01-02")
	yesterday := now.UTC().AddDate(0, 0, -1).Format("2006-01-02")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		snapshots dashboardSnapshots

		totalUsers     int64
		activeSessions int64
		topProducts    []analyticsmodels.ProductMetric
		recentOrders   []analyticsmodels.OrderRecord
	)

	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	// Nhánh 1: snapshot hôm nay/hôm qua của page views và sales
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if snapshots.pageViewsToday, err = s.GetSnapshot(ctx, MetricDailyPageViews, today); err != nil {
			setErr(err)
			return
		}
		if snapshots.pageViewsYesterday, err = s.GetSnapshot(ctx, MetricDailyPageViews, yesterday); err != nil {
			setErr(err)
			return
		}
		if snapshots.salesToday, err = s.GetSnapshot(ctx, MetricDailySales, today); err != nil {
			setErr(err)
			return
		}
		if snapshots.salesYesterday, err = s.GetSnapshot(ctx, MetricDailySales, yesterday); err != nil {
			setErr(err)
		}
	}()

	// Nhánh 2: tổng số người dùng
	wg.Add(1)
	go func() {
		defer wg.Done()
		count, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) (int64, error) {
			return s.users.CountDocuments(queryCtx, nil)
		})
		if err != nil {
			setErr(err)
			return
		}
		totalUsers = count
	}()

	// Nhánh 3: session đang hoạt động (cửa sổ 30 phút)
	wg.Add(1)
	go func() {
		defer wg.Done()
		count, err := s.countActiveSessions(ctx, now)
		if err != nil {
			setErr(err)
			return
		}
		activeSessions = count
	}()

	// Nhánh 4: top 5 sản phẩm theo lượt xem
	wg.Add(1)
	go func() {
		defer wg.Done()
		products, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) ([]analyticsmodels.ProductMetric, error) {
			opts := options.Find().
				SetSort(bson.D{{Key: "views", Value: -1}}).
				SetLimit(5)
			return s.products.Find(queryCtx, nil, opts)
		})
		if err != nil {
			setErr(err)
			return
		}
		topProducts = products
	}()

	// Nhánh 5: 5 đơn hàng mới nhất
	wg.Add(1)
	go func() {
		defer wg.Done()
		orders, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) ([]analyticsmodels.OrderRecord, error) {
			opts := options.Find().
				SetSort(bson.D{{Key: "timestamp", Value: -1}}).
				SetLimit(5)
			return s.orders.Find(queryCtx, nil, opts)
		})
		if err != nil {
			setErr(err)
			return
		}
		recentOrders = orders
	}()

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	return composeOverview(snapshots, totalUsers, activeSessions, topProducts, recentOrders), nil
}

// composeOverview ghép các mảnh đã đọc thành payload tổng quan.
// Tách khỏi phần I/O để test thuần bằng dữ liệu trong bộ nhớ.
func composeOverview(
	snapshots dashboardSnapshots,
	totalUsers int64,
	activeSessions int64,
	topProducts []analyticsmodels.ProductMetric,
	recentOrders []analyticsmodels.OrderRecord,
) *analyticsdto.DashboardOverview {
	overview := &analyticsdto.DashboardOverview{
		TotalUsers:     totalUsers,
		ActiveSessions: activeSessions,
		TopProducts:    topProducts,
		RecentOrders:   recentOrders,
	}

	if snapshots.pageViewsToday != nil {
		overview.PageViews.Today = snapshots.pageViewsToday.Count
	}
	if snapshots.pageViewsYesterday != nil {
		overview.PageViews.Yesterday = snapshots.pageViewsYesterday.Count
	}
	overview.PageViews.Change = SnapshotCountChange(snapshots.pageViewsToday, snapshots.pageViewsYesterday)

	if snapshots.salesToday != nil {
		overview.Sales.Today = snapshots.salesToday.Count
		overview.Revenue.Today = snapshots.salesToday.Revenue
	}
	if snapshots.salesYesterday != nil {
		overview.Sales.Yesterday = snapshots.salesYesterday.Count
		overview.Revenue.Yesterday = snapshots.salesYesterday.Revenue
	}
	overview.Sales.Change = SnapshotCountChange(snapshots.salesToday, snapshots.salesYesterday)
	overview.Revenue.Change = SnapshotRevenueChange(snapshots.salesToday, snapshots.salesYesterday)

	// Conversion rate = sales.count / pageViews.count * 100, mẫu số tối thiểu 1
	var salesCount, pageViewCount int64
	if snapshots.salesToday != nil {
		salesCount = snapshots.salesToday.Count
	}
	if snapshots.pageViewsToday != nil {
		pageViewCount = snapshots.pageViewsToday.Count
	}
	if pageViewCount < 1 {
		pageViewCount = 1
	}
	overview.ConversionRate = round2(float64(salesCount) / float64(pageViewCount) * 100)

	return overview
}
