package analyticssvc

import (
	"math"

	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
)

// round2 làm tròn về 2 chữ số thập phân
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PercentChange tính phần trăm thay đổi giữa hôm nay và hôm qua.
// Nếu hôm qua bằng 0, mẫu số được thay bằng 1 — chấp nhận phần trăm
// lệch thay vì chia cho 0. Kết quả làm tròn 2 chữ số.
func PercentChange(today, yesterday float64) float64 {
	diff := today - yesterday
	denom := yesterday
	if denom == 0 {
		denom = 1
	}
	return round2(diff / denom * 100)
}

// SnapshotCountChange tính phần trăm thay đổi count giữa hai snapshot.
// Thiếu một trong hai snapshot -> 0, không phải lỗi.
func SnapshotCountChange(today, yesterday *analyticsmodels.MetricSnapshot) float64 {
	if today == nil || yesterday == nil {
		return 0
	}
	return PercentChange(float64(today.Count), float64(yesterday.Count))
}

// SnapshotRevenueChange tính phần trăm thay đổi revenue giữa hai snapshot.
// Thiếu một trong hai snapshot -> 0, không phải lỗi.
func SnapshotRevenueChange(today, yesterday *analyticsmodels.MetricSnapshot) float64 {
	if today == nil || yesterday == nil {
		return 0
	}
	return PercentChange(today.Revenue, yesterday.Revenue)
}
