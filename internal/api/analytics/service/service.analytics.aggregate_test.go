// Package analyticssvc - Test gom bucket theo chu kỳ, breakdown theo field và TopN.
package analyticssvc

import (
	"errors"
	"testing"
	"time"

	analyticsdto "ecommerce_analytics/internal/api/analytics/dto"
	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	"ecommerce_analytics/internal/common"
)

func order(ts string, total float64, items int64, payment string) analyticsmodels.OrderRecord {
	return analyticsmodels.OrderRecord{
		Timestamp:     ts,
		Total:         total,
		Items:         items,
		PaymentMethod: payment,
	}
}

func TestAggregateByPeriod_GomTheoNgay(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	records := []analyticsmodels.OrderRecord{
		order("2026-08-27T09:00:00Z", 100, 2, "card"),
		order("2026-08-27T15:30:00Z", 50, 1, "cod"),
		order("2026-08-28T08:00:00Z", 200, 3, "card"),
	}

	buckets, err := AggregateByPeriod(records, GranularityDay, now)
	if err != nil {
		t.Fatalf("AggregateByPeriod trả về lỗi: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("muốn 2 bucket, nhận %d", len(buckets))
	}

	first := buckets[0]
	if first.BucketKey != "2026-08-27" || first.Count != 2 || first.Revenue != 150 || first.Items != 3 {
		t.Errorf("bucket 27/08 sai: %+v", first)
	}
	second := buckets[1]
	if second.BucketKey != "2026-08-28" || second.Count != 1 || second.Revenue != 200 || second.Items != 3 {
		t.Errorf("bucket 28/08 sai: %+v", second)
	}
}

func TestAggregateByPeriod_ThuTuTangDan(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	// Đưa vào không theo thứ tự thời gian
	records := []analyticsmodels.OrderRecord{
		order("2026-08-28T08:00:00Z", 10, 1, "card"),
		order("2026-08-25T08:00:00Z", 10, 1, "card"),
		order("2026-08-27T08:00:00Z", 10, 1, "card"),
	}

	buckets, err := AggregateByPeriod(records, GranularityDay, now)
	if err != nil {
		t.Fatalf("AggregateByPeriod trả về lỗi: %v", err)
	}
	for i := 1; i < len(buckets); i++ {
		if buckets[i-1].BucketKey >= buckets[i].BucketKey {
			t.Errorf("bucket không tăng dần: %q đứng trước %q", buckets[i-1].BucketKey, buckets[i].BucketKey)
		}
	}
}

func TestAggregateByPeriod_LocCuaSoLookback(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	records := []analyticsmodels.OrderRecord{
		order("2026-08-28T08:00:00Z", 10, 1, "card"), // trong cửa sổ
		order("2026-07-01T08:00:00Z", 10, 1, "card"), // ngoài cửa sổ 30 ngày
		order("2026-09-01T08:00:00Z", 10, 1, "card"), // sau now
	}

	buckets, err := AggregateByPeriod(records, GranularityDay, now)
	if err != nil {
		t.Fatalf("AggregateByPeriod trả về lỗi: %v", err)
	}

	var total int64
	for _, b := range buckets {
		total += b.Count
	}
	if total != 1 {
		t.Errorf("tổng count phải bằng số order trong cửa sổ (1), nhận %d", total)
	}
}

func TestAggregateByPeriod_TimestampHongBiBoQua(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	records := []analyticsmodels.OrderRecord{
		order("not-a-timestamp", 10, 1, "card"),
		order("2026-08-28T08:00:00Z", 20, 2, "card"),
	}

	buckets, err := AggregateByPeriod(records, GranularityDay, now)
	if err != nil {
		t.Fatalf("record hỏng không được làm hỏng cả báo cáo: %v", err)
	}
	if len(buckets) != 1 || buckets[0].Count != 1 {
		t.Errorf("chỉ record hợp lệ được gom, nhận: %+v", buckets)
	}
}

func TestAggregateByPeriod_FieldThieuTinhLaKhong(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	// Order không có total/items (zero value)
	records := []analyticsmodels.OrderRecord{
		{Timestamp: "2026-08-28T08:00:00Z"},
	}

	buckets, err := AggregateByPeriod(records, GranularityDay, now)
	if err != nil {
		t.Fatalf("AggregateByPeriod trả về lỗi: %v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("muốn 1 bucket, nhận %d", len(buckets))
	}
	if buckets[0].Count != 1 || buckets[0].Revenue != 0 || buckets[0].Items != 0 {
		t.Errorf("field thiếu phải tính là 0: %+v", buckets[0])
	}
}

func TestAggregateByPeriod_TimestampKhongTimezone(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	records := []analyticsmodels.OrderRecord{
		order("2026-08-28T08:00:00", 10, 1, "card"), // không có suffix Z
	}

	buckets, err := AggregateByPeriod(records, GranularityDay, now)
	if err != nil {
		t.Fatalf("AggregateByPeriod trả về lỗi: %v", err)
	}
	if len(buckets) != 1 {
		t.Errorf("timestamp không timezone vẫn phải parse được, nhận %d bucket", len(buckets))
	}
}

func TestAggregateByField_PaymentMethod(t *testing.T) {
	records := []analyticsmodels.OrderRecord{
		order("2026-08-28T08:00:00Z", 100, 1, "card"),
		order("2026-08-27T08:00:00Z", 50, 1, "card"),
		order("2020-01-01T08:00:00Z", 30, 1, "cod"), // toàn lịch sử, không lọc cửa sổ
	}

	breakdown, err := AggregateByField(records, "paymentMethod")
	if err != nil {
		t.Fatalf("AggregateByField trả về lỗi: %v", err)
	}

	card := breakdown["card"]
	if card.Count != 2 || card.Revenue != 150 {
		t.Errorf("breakdown card sai: %+v", card)
	}
	cod := breakdown["cod"]
	if cod.Count != 1 || cod.Revenue != 30 {
		t.Errorf("breakdown cod sai: %+v", cod)
	}
}

func TestAggregateByField_FieldKhongHoTro(t *testing.T) {
	_, err := AggregateByField(nil, "shippingMethod")
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("field không hỗ trợ phải trả về ErrInvalidInput, nhận: %v", err)
	}
}

func product(id string, views, cartAdds int64, rate, price float64) analyticsmodels.ProductMetric {
	return analyticsmodels.ProductMetric{
		ProductID:      id,
		Views:          views,
		CartAdds:       cartAdds,
		ViewToCartRate: rate,
		Price:          price,
	}
}

func TestTopN_GiamDanTheoViews(t *testing.T) {
	items := []analyticsmodels.ProductMetric{
		product("a", 10, 0, 0, 0),
		product("b", 30, 0, 0, 0),
		product("c", 20, 0, 0, 0),
	}

	top := TopN(items, analyticsdto.SortSelection{Field: analyticsdto.SortFieldViews}, 2)
	if len(top) != 2 {
		t.Fatalf("muốn 2 phần tử, nhận %d", len(top))
	}
	if top[0].ProductID != "b" || top[1].ProductID != "c" {
		t.Errorf("thứ tự sai: %s, %s", top[0].ProductID, top[1].ProductID)
	}
}

// Sort phải ổn định: phần tử có giá trị bằng nhau giữ nguyên thứ tự gốc,
// gọi nhiều lần trên cùng input cho cùng kết quả.
func TestTopN_OnDinhVoiGiaTriTrung(t *testing.T) {
	items := []analyticsmodels.ProductMetric{
		product("first", 10, 0, 0, 0),
		product("second", 10, 0, 0, 0),
		product("third", 10, 0, 0, 0),
	}
	selection := analyticsdto.SortSelection{Field: analyticsdto.SortFieldViews}

	run1 := TopN(items, selection, 3)
	run2 := TopN(items, selection, 3)

	for i := range run1 {
		if run1[i].ProductID != items[i].ProductID {
			t.Errorf("giá trị trùng phải giữ thứ tự gốc, vị trí %d: %s", i, run1[i].ProductID)
		}
		if run1[i].ProductID != run2[i].ProductID {
			t.Errorf("hai lần chạy cho kết quả khác nhau ở vị trí %d", i)
		}
	}
}

func TestTopN_KhongSuaInputGoc(t *testing.T) {
	items := []analyticsmodels.ProductMetric{
		product("a", 1, 0, 0, 0),
		product("b", 9, 0, 0, 0),
	}
	TopN(items, analyticsdto.SortSelection{Field: analyticsdto.SortFieldViews}, 2)
	if items[0].ProductID != "a" {
		t.Error("TopN không được sắp xếp tại chỗ trên slice input")
	}
}

func TestTopN_CacSortFieldKhac(t *testing.T) {
	items := []analyticsmodels.ProductMetric{
		product("a", 1, 5, 0.2, 100),
		product("b", 2, 3, 0.9, 50),
	}

	cases := []struct {
		field string
		want  string
	}{
		{analyticsdto.SortFieldCartAdds, "a"},
		{analyticsdto.SortFieldViewToCartRate, "b"},
		{analyticsdto.SortFieldPrice, "a"},
	}
	for _, tc := range cases {
		top := TopN(items, analyticsdto.SortSelection{Field: tc.field}, 1)
		if top[0].ProductID != tc.want {
			t.Errorf("sort theo %s: muốn %s đứng đầu, nhận %s", tc.field, tc.want, top[0].ProductID)
		}
	}
}

// Sort field lạ đã bị ResolveSortField thay bằng views nên kết quả
// phải giống hệt sort theo views.
func TestTopN_FieldLaTuongDuongViews(t *testing.T) {
	items := []analyticsmodels.ProductMetric{
		product("a", 5, 0, 0, 0),
		product("b", 50, 0, 0, 0),
		product("c", 25, 0, 0, 0),
	}

	selection := analyticsdto.ResolveSortField("bogus")
	if !selection.Fallback {
		t.Fatal("field lạ phải được đánh dấu Fallback")
	}

	viaFallback := TopN(items, selection, 3)
	viaViews := TopN(items, analyticsdto.SortSelection{Field: analyticsdto.SortFieldViews}, 3)
	for i := range viaViews {
		if viaFallback[i].ProductID != viaViews[i].ProductID {
			t.Errorf("sort fallback khác sort views ở vị trí %d", i)
		}
	}
}
