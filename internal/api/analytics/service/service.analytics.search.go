package analyticssvc

import (
	"context"

	analyticsdto "ecommerce_analytics/internal/api/analytics/dto"
	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	"ecommerce_analytics/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSearchReport dựng báo cáo tìm kiếm: top từ khóa theo số lượt và
// các từ khóa không ra kết quả, tổng hợp theo query text bằng $group.
func (s *AnalyticsService) GetSearchReport(ctx context.Context, params analyticsdto.SearchQueryParams) (*analyticsdto.SearchReport, error) {
	if params.Limit < 0 {
		return nil, common.ErrInvalidLimit
	}
	limit := params.Limit
	if limit == 0 {
		limit = 10
	}

	topSearches, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) ([]analyticsmodels.SearchTerm, error) {
		opts := options.Find().
			SetSort(bson.D{{Key: "count", Value: -1}}).
			SetLimit(int64(limit))
		return s.searchTerms.Find(queryCtx, nil, opts)
	})
	if err != nil {
		return nil, err
	}

	// Tổng hợp event tìm-không-ra theo từ khóa ngay trên store
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$searchQuery",
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": limit},
	}
	groups, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) ([]bson.M, error) {
		return s.zeroSearches.Aggregate(queryCtx, pipeline)
	})
	if err != nil {
		return nil, err
	}

	zeroResults := make([]analyticsdto.ZeroResultQuery, 0, len(groups))
	for _, group := range groups {
		entry := analyticsdto.ZeroResultQuery{}
		if query, ok := group["_id"].(string); ok {
			entry.Query = query
		}
		switch count := group["count"].(type) {
		case int32:
			entry.Count = int64(count)
		case int64:
			entry.Count = count
		case float64:
			entry.Count = int64(count)
		}
		zeroResults = append(zeroResults, entry)
	}

	return &analyticsdto.SearchReport{
		TopSearches:       topSearches,
		ZeroResultQueries: zeroResults,
	}, nil
}
