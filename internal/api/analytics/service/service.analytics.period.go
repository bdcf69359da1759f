package analyticssvc

import (
	"fmt"
	"time"

	"ecommerce_analytics/internal/common"
)

// Các granularity hợp lệ cho truy vấn theo chu kỳ
const (
	GranularityHour  = "hour"
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

// ValidGranularity kiểm tra chuỗi granularity có hợp lệ không
func ValidGranularity(granularity string) bool {
	switch granularity {
	case GranularityHour, GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// BucketKey ánh xạ một thời điểm sang khóa bucket theo granularity.
//   - hour:  YYYY-MM-DDTHH:00
//   - day:   YYYY-MM-DD
//   - week:  YYYY-Www (số tuần ISO, không zero-pad)
//   - month: YYYY-MM
//
// Với week, năm lấy từ năm dương lịch còn số tuần lấy từ tuần ISO — hai nguồn
// độc lập. Event cuối năm rơi vào tuần 1 của năm sau (hoặc ngược lại) sẽ cho
// khóa kiểu "2024-W1" cho ngày 30/12/2024. Hành vi này được giữ nguyên để
// các khóa đã lưu không bị lệch; có regression test ghim lại.
func BucketKey(t time.Time, granularity string) (string, error) {
	switch granularity {
	case GranularityHour:
		return t.Format("2006-01-02T15:00"), nil
	case GranularityDay:
		return t.Format("2006-01-02"), nil
	case GranularityWeek:
		_, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%d", t.Year(), week), nil
	case GranularityMonth:
		return t.Format("2006-01"), nil
	}
	return "", common.ErrInvalidPeriod
}

// LookbackStart trả về thời điểm sớm nhất mà một truy vấn theo granularity
// cần quét: hour = 24h, day = 30 ngày, week = 84 ngày, month = 360 ngày
// (12 x 30 ngày, không phải 12 tháng dương lịch).
func LookbackStart(now time.Time, granularity string) (time.Time, error) {
	switch granularity {
	case GranularityHour:
		return now.Add(-24 * time.Hour), nil
	case GranularityDay:
		return now.AddDate(0, 0, -30), nil
	case GranularityWeek:
		return now.AddDate(0, 0, -84), nil
	case GranularityMonth:
		return now.AddDate(0, 0, -360), nil
	}
	return time.Time{}, common.ErrInvalidPeriod
}
