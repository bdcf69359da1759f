package analyticssvc

import (
	"context"

	analyticsdto "ecommerce_analytics/internal/api/analytics/dto"
	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	"ecommerce_analytics/internal/common"

	"go.mongodb.org/mongo-driver/bson"
)

// GetProductReport dựng ranking sản phẩm: lọc theo danh mục (nếu có),
// sort giảm dần theo field đã resolve, cắt lấy limit phần tử.
// Sort field lạ không trả lỗi mà fallback về views (tương thích hành vi cũ);
// limit âm hoặc 0 -> lỗi 400 nếu client gửi tường minh, mặc định 10 nếu bỏ trống.
func (s *AnalyticsService) GetProductReport(ctx context.Context, params analyticsdto.ProductsQueryParams) (*analyticsdto.ProductReport, error) {
	if params.Limit < 0 {
		return nil, common.ErrInvalidLimit
	}
	limit := params.Limit
	if limit == 0 {
		limit = 10
	}

	selection := analyticsdto.ResolveSortField(params.Sort)

	filter := bson.M{}
	if params.Category != "" {
		filter["category"] = params.Category
	}

	products, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) ([]analyticsmodels.ProductMetric, error) {
		return s.products.Find(queryCtx, filter, nil)
	})
	if err != nil {
		return nil, err
	}

	rawCategories, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) ([]interface{}, error) {
		return s.products.Distinct(queryCtx, "category", nil)
	})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(rawCategories))
	for _, v := range rawCategories {
		if name, ok := v.(string); ok && name != "" {
			categories = append(categories, name)
		}
	}

	return &analyticsdto.ProductReport{
		Category:     params.Category,
		Categories:   categories,
		SortField:    selection.Field,
		SortFallback: selection.Fallback,
		Products:     TopN(products, selection, limit),
	}, nil
}
