// Package analyticssvc - Test ghép payload tổng quan dashboard từ dữ liệu trong bộ nhớ.
package analyticssvc

import (
	"testing"

	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
)

func TestComposeOverview_DayDuSnapshot(t *testing.T) {
	snapshots := dashboardSnapshots{
		pageViewsToday:     &analyticsmodels.MetricSnapshot{Count: 200},
		pageViewsYesterday: &analyticsmodels.MetricSnapshot{Count: 100},
		salesToday:         &analyticsmodels.MetricSnapshot{Count: 10, Revenue: 500},
		salesYesterday:     &analyticsmodels.MetricSnapshot{Count: 8, Revenue: 400},
	}

	overview := composeOverview(snapshots, 42, 7, nil, nil)

	if overview.PageViews.Today != 200 || overview.PageViews.Yesterday != 100 {
		t.Errorf("pageViews sai: %+v", overview.PageViews)
	}
	if overview.PageViews.Change != 100 {
		t.Errorf("pageViews.Change = %v, muốn 100", overview.PageViews.Change)
	}
	if overview.Sales.Change != 25 {
		t.Errorf("sales.Change = %v, muốn 25", overview.Sales.Change)
	}
	if overview.Revenue.Change != 25 {
		t.Errorf("revenue.Change = %v, muốn 25", overview.Revenue.Change)
	}
	if overview.TotalUsers != 42 || overview.ActiveSessions != 7 {
		t.Errorf("totalUsers/activeSessions sai: %d/%d", overview.TotalUsers, overview.ActiveSessions)
	}
	// conversion = 10/200*100 = 5
	if overview.ConversionRate != 5 {
		t.Errorf("conversionRate = %v, muốn 5", overview.ConversionRate)
	}
}

// Snapshot vắng mặt (ngày chưa có event) cho giá trị 0 và change 0,
// không gây lỗi và không làm thiếu payload.
func TestComposeOverview_ThieuSnapshot(t *testing.T) {
	overview := composeOverview(dashboardSnapshots{}, 0, 0, nil, nil)

	if overview.PageViews.Today != 0 || overview.PageViews.Change != 0 {
		t.Errorf("thiếu snapshot: pageViews phải là 0, nhận %+v", overview.PageViews)
	}
	if overview.Sales.Today != 0 || overview.Sales.Change != 0 {
		t.Errorf("thiếu snapshot: sales phải là 0, nhận %+v", overview.Sales)
	}
	if overview.Revenue.Today != 0 || overview.Revenue.Change != 0 {
		t.Errorf("thiếu snapshot: revenue phải là 0, nhận %+v", overview.Revenue)
	}
	if overview.ConversionRate != 0 {
		t.Errorf("conversionRate = %v, muốn 0", overview.ConversionRate)
	}
}

// Mẫu số conversion rate tối thiểu là 1: có sales nhưng chưa có page view
// không được chia cho 0.
func TestComposeOverview_ConversionRateMauSoToiThieu(t *testing.T) {
	snapshots := dashboardSnapshots{
		salesToday: &analyticsmodels.MetricSnapshot{Count: 3},
	}

	overview := composeOverview(snapshots, 0, 0, nil, nil)
	// 3 / max(0,1) * 100 = 300
	if overview.ConversionRate != 300 {
		t.Errorf("conversionRate = %v, muốn 300", overview.ConversionRate)
	}
}

func TestComposeOverview_ChiCoHomNay(t *testing.T) {
	snapshots := dashboardSnapshots{
		pageViewsToday: &analyticsmodels.MetricSnapshot{Count: 50},
		salesToday:     &analyticsmodels.MetricSnapshot{Count: 5, Revenue: 250},
	}

	overview := composeOverview(snapshots, 0, 0, nil, nil)
	if overview.PageViews.Today != 50 || overview.PageViews.Change != 0 {
		t.Errorf("chỉ có hôm nay: change phải là 0, nhận %+v", overview.PageViews)
	}
	if overview.Revenue.Today != 250 || overview.Revenue.Change != 0 {
		t.Errorf("chỉ có hôm nay: revenue change phải là 0, nhận %+v", overview.Revenue)
	}
	// 5/50*100 = 10
	if overview.ConversionRate != 10 {
		t.Errorf("conversionRate = %v, muốn 10", overview.ConversionRate)
	}
}
