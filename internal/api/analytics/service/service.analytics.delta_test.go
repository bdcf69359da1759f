// Package analyticssvc - Test phần trăm thay đổi hôm nay/hôm qua.
package analyticssvc

import (
	"testing"

	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
)

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name      string
		today     float64
		yesterday float64
		want      float64
	}{
		{"tăng 25%", 10, 8, 25},
		{"giảm", 8, 10, -20},
		{"không đổi", 5, 5, 0},
		{"hôm qua bằng 0, mẫu số thay bằng 1", 7, 0, 700},
		{"cả hai bằng 0", 0, 0, 0},
		{"làm tròn 2 chữ số", 1, 3, -66.67},
	}

	for _, tc := range cases {
		got := PercentChange(tc.today, tc.yesterday)
		if got != tc.want {
			t.Errorf("%s: PercentChange(%v, %v) = %v, muốn %v", tc.name, tc.today, tc.yesterday, got, tc.want)
		}
	}
}

func TestSnapshotChange_HaiSnapshotDayDu(t *testing.T) {
	today := &analyticsmodels.MetricSnapshot{Count: 10, Revenue: 500}
	yesterday := &analyticsmodels.MetricSnapshot{Count: 8, Revenue: 400}

	if got := SnapshotCountChange(today, yesterday); got != 25 {
		t.Errorf("SnapshotCountChange = %v, muốn 25", got)
	}
	if got := SnapshotRevenueChange(today, yesterday); got != 25 {
		t.Errorf("SnapshotRevenueChange = %v, muốn 25", got)
	}
}

// Thiếu snapshot (ngày chưa có event) là trạng thái bình thường:
// change phải bằng 0, không phải lỗi.
func TestSnapshotChange_ThieuSnapshot(t *testing.T) {
	snapshot := &analyticsmodels.MetricSnapshot{Count: 10, Revenue: 500}

	if got := SnapshotCountChange(nil, snapshot); got != 0 {
		t.Errorf("thiếu snapshot hôm nay: change = %v, muốn 0", got)
	}
	if got := SnapshotCountChange(snapshot, nil); got != 0 {
		t.Errorf("thiếu snapshot hôm qua: change = %v, muốn 0", got)
	}
	if got := SnapshotRevenueChange(nil, nil); got != 0 {
		t.Errorf("thiếu cả hai: change = %v, muốn 0", got)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0},  // 1.005*100 cho nhị phân dưới 100.5 nên round xuống
		{1.015, 1.01}, // tương tự
		{2.675, 2.68}, // 2.675*100 lại cho đúng 267.5 nên round lên
		{33.333333, 33.33},
		{-66.666666, -66.67},
	}
	for _, tc := range cases {
		if got := round2(tc.in); got != tc.want {
			t.Errorf("round2(%v) = %v, muốn %v", tc.in, got, tc.want)
		}
	}
}
