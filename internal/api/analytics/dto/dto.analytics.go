// Package analyticsdto - DTO cho các endpoint Analytics.
package analyticsdto

import (
	"ecommerce_analytics/internal/api/analytics/models"
)

// SalesQueryParams query params cho GET /analytics/sales.
type SalesQueryParams struct {
	Period string `query:"period" validate:"required,granularity"` // hour|day|week|month (bắt buộc hợp lệ, sai -> 400)
}

// ProductsQueryParams query params cho GET /analytics/products.
type ProductsQueryParams struct {
	Category string `query:"category"` // Lọc theo danh mục; rỗng = tất cả
	Sort     string `query:"sort"`     // views|cartAdds|viewToCartRate|price; field lạ fallback về views
	Limit    int    `query:"limit"`    // Số sản phẩm trả về (mặc định 10)
}

// SearchQueryParams query params cho GET /analytics/search.
type SearchQueryParams struct {
	Limit int `query:"limit"` // Số từ khóa trả về (mặc định 10)
}

// RealtimeQueryParams query params cho GET /analytics/realtime.
type RealtimeQueryParams struct {
	Limit int `query:"limit"` // Số sample gần nhất (mặc định 60)
}

// Các sort field được phép cho product ranking
const (
	SortFieldViews          = "views"
	SortFieldCartAdds       = "cartAdds"
	SortFieldViewToCartRate = "viewToCartRate"
	SortFieldPrice          = "price"
)

// SortSelection là kết quả resolve sort field: field nào được dùng
// và nó là lựa chọn hợp lệ của client hay fallback từ field lạ.
// Tách tường minh để hành vi fallback kiểm thử được thay vì ẩn trong điều kiện.
type SortSelection struct {
	Field    string // Field thực sự dùng để sort
	Fallback bool   // true nếu client yêu cầu field không hợp lệ và bị thay bằng mặc định
}

// ResolveSortField kiểm tra field yêu cầu với whitelist.
// Field lạ không trả lỗi mà fallback về views (tương thích hành vi cũ).
func ResolveSortField(requested string) SortSelection {
	switch requested {
	case SortFieldViews, SortFieldCartAdds, SortFieldViewToCartRate, SortFieldPrice:
		return SortSelection{Field: requested}
	case "":
		return SortSelection{Field: SortFieldViews}
	}
	return SortSelection{Field: SortFieldViews, Fallback: true}
}

// PeriodBucket là một bucket thời gian trong báo cáo sales.
type PeriodBucket struct {
	BucketKey string  `json:"bucketKey"` // Khóa bucket (vd: 2026-08-28, 2026-W35)
	Count     int64   `json:"count"`     // Số đơn hàng trong bucket
	Revenue   float64 `json:"revenue"`   // Tổng doanh thu trong bucket
	Items     int64   `json:"items"`     // Tổng số sản phẩm bán ra trong bucket
}

// FieldBreakdown là rollup theo một giá trị field (vd: một phương thức thanh toán).
type FieldBreakdown struct {
	Count   int64   `json:"count"`   // Số đơn hàng
	Revenue float64 `json:"revenue"` // Tổng doanh thu
}

// SalesReport kết quả GET /analytics/sales.
type SalesReport struct {
	Period           string                    `json:"period"`           // Granularity đã dùng
	Buckets          []PeriodBucket            `json:"buckets"`          // Bucket tăng dần theo bucketKey
	PaymentBreakdown map[string]FieldBreakdown `json:"paymentBreakdown"` // Rollup theo phương thức thanh toán (toàn lịch sử)
}

// ProductReport kết quả GET /analytics/products.
type ProductReport struct {
	Category     string                 `json:"category,omitempty"` // Danh mục đã lọc
	Categories   []string               `json:"categories"`         // Các danh mục hiện có (distinct)
	SortField    string                 `json:"sortField"`          // Field thực sự dùng để sort
	SortFallback bool                   `json:"sortFallback"`       // true nếu field yêu cầu không hợp lệ
	Products     []models.ProductMetric `json:"products"`           // Giảm dần theo sortField
}

// TopSpender một người dùng chi tiêu nhiều nhất.
type TopSpender struct {
	UserID     string  `json:"userId"`
	TotalSpent float64 `json:"totalSpent"`
}

// UserReport kết quả GET /analytics/users.
type UserReport struct {
	TotalUsers     int64        `json:"totalUsers"`     // Tổng số người dùng
	ActiveSessions int64        `json:"activeSessions"` // Session hoạt động trong 30 phút
	TopSpenders    []TopSpender `json:"topSpenders"`    // Giảm dần theo totalSpent
}

// ZeroResultQuery một từ khóa tìm kiếm không ra kết quả, tổng hợp theo query text.
type ZeroResultQuery struct {
	Query string `json:"query"` // Từ khóa
	Count int64  `json:"count"` // Số lượt tìm không ra kết quả
}

// SearchReport kết quả GET /analytics/search.
type SearchReport struct {
	TopSearches       []models.SearchTerm `json:"topSearches"`       // Giảm dần theo count
	ZeroResultQueries []ZeroResultQuery   `json:"zeroResultQueries"` // Giảm dần theo count
}

// MetricDelta cặp giá trị hôm nay/hôm qua kèm phần trăm thay đổi.
type MetricDelta struct {
	Today     int64   `json:"today"`     // Count hôm nay
	Yesterday int64   `json:"yesterday"` // Count hôm qua
	Change    float64 `json:"change"`    // Phần trăm thay đổi, làm tròn 2 chữ số
}

// RevenueDelta như MetricDelta nhưng cho revenue.
type RevenueDelta struct {
	Today     float64 `json:"today"`
	Yesterday float64 `json:"yesterday"`
	Change    float64 `json:"change"`
}

// DashboardOverview kết quả GET /analytics/dashboard.
type DashboardOverview struct {
	PageViews      MetricDelta            `json:"pageViews"`      // daily_page_views hôm nay vs hôm qua
	Sales          MetricDelta            `json:"sales"`          // daily_sales count hôm nay vs hôm qua
	Revenue        RevenueDelta           `json:"revenue"`        // daily_sales revenue hôm nay vs hôm qua
	TotalUsers     int64                  `json:"totalUsers"`     // Tổng số người dùng
	ActiveSessions int64                  `json:"activeSessions"` // Session hoạt động trong 30 phút
	ConversionRate float64                `json:"conversionRate"` // sales.count / max(pageViews.count,1) * 100, 2 chữ số
	TopProducts    []models.ProductMetric `json:"topProducts"`    // Top 5 theo views
	RecentOrders   []models.OrderRecord   `json:"recentOrders"`   // 5 đơn mới nhất theo timestamp giảm dần
}

// RealtimeReport kết quả GET /analytics/realtime.
type RealtimeReport struct {
	Samples []models.RealtimeSample `json:"samples"` // Sample mới nhất trước
}
