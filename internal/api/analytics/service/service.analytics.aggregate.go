package analyticssvc

import (
	"sort"
	"time"

	analyticsdto "ecommerce_analytics/internal/api/analytics/dto"
	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	"ecommerce_analytics/internal/common"
	"ecommerce_analytics/internal/logger"
)

// parseOrderTimestamp parse timestamp ISO-8601 của order.
// Chấp nhận cả dạng có timezone (RFC 3339) và dạng không có.
func parseOrderTimestamp(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// AggregateByPeriod gom các order thành bucket theo granularity.
// Order ngoài cửa sổ [LookbackStart(now), now] bị loại trước khi gom.
// Kết quả tăng dần theo bucketKey (thứ tự lexical trùng thứ tự thời gian
// với cả bốn định dạng khóa). Field số thiếu được tính là 0, không gây lỗi.
func AggregateByPeriod(records []analyticsmodels.OrderRecord, granularity string, now time.Time) ([]analyticsdto.PeriodBucket, error) {
	start, err := LookbackStart(now, granularity)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*analyticsdto.PeriodBucket)
	for _, record := range records {
		ts, ok := parseOrderTimestamp(record.Timestamp)
		if !ok {
			// Timestamp hỏng: bỏ qua record, không làm hỏng cả báo cáo
			logger.GetAppLogger().WithField("timestamp", record.Timestamp).Warn("Bỏ qua order có timestamp không parse được")
			continue
		}
		if ts.Before(start) || ts.After(now) {
			continue
		}

		key, err := BucketKey(ts, granularity)
		if err != nil {
			return nil, err
		}

		bucket, exists := grouped[key]
		if !exists {
			bucket = &analyticsdto.PeriodBucket{BucketKey: key}
			grouped[key] = bucket
		}
		bucket.Count++
		bucket.Revenue += record.Total
		bucket.Items += record.Items
	}

	buckets := make([]analyticsdto.PeriodBucket, 0, len(grouped))
	for _, bucket := range grouped {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].BucketKey < buckets[j].BucketKey
	})

	return buckets, nil
}

// AggregateByField gom toàn bộ order (không lọc cửa sổ thời gian) theo giá trị
// một field, trả về {count, revenue} cho mỗi giá trị. Dùng cho breakdown
// theo phương thức thanh toán.
func AggregateByField(records []analyticsmodels.OrderRecord, fieldName string) (map[string]analyticsdto.FieldBreakdown, error) {
	selector, err := orderFieldSelector(fieldName)
	if err != nil {
		return nil, err
	}

	result := make(map[string]analyticsdto.FieldBreakdown)
	for _, record := range records {
		key := selector(record)
		entry := result[key]
		entry.Count++
		entry.Revenue += record.Total
		result[key] = entry
	}
	return result, nil
}

// orderFieldSelector trả về hàm lấy giá trị field dùng làm khóa gom nhóm
func orderFieldSelector(fieldName string) (func(analyticsmodels.OrderRecord) string, error) {
	switch fieldName {
	case "paymentMethod":
		return func(r analyticsmodels.OrderRecord) string { return r.PaymentMethod }, nil
	}
	return nil, common.ErrInvalidInput
}

// TopN sắp xếp sản phẩm giảm dần theo sort field đã resolve và cắt lấy n phần tử.
// Sort ổn định: các phần tử bằng nhau giữ nguyên thứ tự gốc trong store.
func TopN(items []analyticsmodels.ProductMetric, selection analyticsdto.SortSelection, n int) []analyticsmodels.ProductMetric {
	sorted := make([]analyticsmodels.ProductMetric, len(items))
	copy(sorted, items)

	key := productSortValue(selection.Field)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})

	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// productSortValue trả về hàm lấy giá trị số của sort field.
// Field đã qua ResolveSortField nên luôn thuộc whitelist; phòng hờ
// vẫn trả về views cho giá trị ngoài dự kiến.
func productSortValue(field string) func(analyticsmodels.ProductMetric) float64 {
	switch field {
	case analyticsdto.SortFieldCartAdds:
		return func(p analyticsmodels.ProductMetric) float64 { return float64(p.CartAdds) }
	case analyticsdto.SortFieldViewToCartRate:
		return func(p analyticsmodels.ProductMetric) float64 { return p.ViewToCartRate }
	case analyticsdto.SortFieldPrice:
		return func(p analyticsmodels.ProductMetric) float64 { return p.Price }
	}
	return func(p analyticsmodels.ProductMetric) float64 { return float64(p.Views) }
}
