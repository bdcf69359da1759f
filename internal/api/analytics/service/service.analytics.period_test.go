// Package analyticssvc - Test ánh xạ thời điểm sang khóa bucket và cửa sổ lookback.
package analyticssvc

import (
	"errors"
	"testing"
	"time"

	"ecommerce_analytics/internal/common"
)

func TestBucketKey_CacDinhDang(t *testing.T) {
	ts := time.Date(2026, 8, 28, 13, 45, 12, 0, time.UTC)

	cases := []struct {
		granularity string
		want        string
	}{
		{GranularityHour, "2026-08-28T13:00"},
		{GranularityDay, "2026-08-28"},
		{GranularityWeek, "2026-W35"},
		{GranularityMonth, "2026-08"},
	}

	for _, tc := range cases {
		got, err := BucketKey(ts, tc.granularity)
		if err != nil {
			t.Fatalf("BucketKey(%s) trả về lỗi: %v", tc.granularity, err)
		}
		if got != tc.want {
			t.Errorf("BucketKey(%s) = %q, muốn %q", tc.granularity, got, tc.want)
		}
	}
}

// Khóa week lấy năm dương lịch + số tuần ISO từ hai nguồn độc lập.
// Ngày cuối năm thuộc tuần 1 ISO của năm sau phải cho khóa "2024-W1",
// không phải "2025-W1". Test này ghim hành vi để khóa đã lưu không bị lệch.
func TestBucketKey_WeekQuaRanhGioiNam(t *testing.T) {
	// 30/12/2024 là thứ Hai, thuộc tuần ISO 1 của 2025
	endOfYear := time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC)
	got, err := BucketKey(endOfYear, GranularityWeek)
	if err != nil {
		t.Fatalf("BucketKey trả về lỗi: %v", err)
	}
	if got != "2024-W1" {
		t.Errorf("BucketKey(30/12/2024, week) = %q, muốn %q", got, "2024-W1")
	}

	// 01/01/2021 là thứ Sáu, thuộc tuần ISO 53 của 2020
	startOfYear := time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC)
	got, err = BucketKey(startOfYear, GranularityWeek)
	if err != nil {
		t.Fatalf("BucketKey trả về lỗi: %v", err)
	}
	if got != "2021-W53" {
		t.Errorf("BucketKey(01/01/2021, week) = %q, muốn %q", got, "2021-W53")
	}
}

func TestBucketKey_GranularityKhongHopLe(t *testing.T) {
	_, err := BucketKey(time.Now(), "quarter")
	if !errors.Is(err, common.ErrInvalidPeriod) {
		t.Errorf("BucketKey với granularity lạ phải trả về ErrInvalidPeriod, nhận: %v", err)
	}
}

func TestValidGranularity(t *testing.T) {
	for _, g := range []string{GranularityHour, GranularityDay, GranularityWeek, GranularityMonth} {
		if !ValidGranularity(g) {
			t.Errorf("ValidGranularity(%s) = false, muốn true", g)
		}
	}
	for _, g := range []string{"", "quarter", "Day", "year"} {
		if ValidGranularity(g) {
			t.Errorf("ValidGranularity(%q) = true, muốn false", g)
		}
	}
}

func TestLookbackStart(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		granularity string
		want        time.Time
	}{
		{GranularityHour, now.Add(-24 * time.Hour)},
		{GranularityDay, now.AddDate(0, 0, -30)},
		{GranularityWeek, now.AddDate(0, 0, -84)},
		{GranularityMonth, now.AddDate(0, 0, -360)},
	}

	for _, tc := range cases {
		got, err := LookbackStart(now, tc.granularity)
		if err != nil {
			t.Fatalf("LookbackStart(%s) trả về lỗi: %v", tc.granularity, err)
		}
		if !got.Equal(tc.want) {
			t.Errorf("LookbackStart(%s) = %v, muốn %v", tc.granularity, got, tc.want)
		}
	}

	if _, err := LookbackStart(now, "decade"); !errors.Is(err, common.ErrInvalidPeriod) {
		t.Errorf("LookbackStart với granularity lạ phải trả về ErrInvalidPeriod, nhận: %v", err)
	}
}
