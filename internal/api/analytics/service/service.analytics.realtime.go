package analyticssvc

import (
	"context"

	analyticsdto "ecommerce_analytics/internal/api/analytics/dto"
	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	basesvc "ecommerce_analytics/internal/api/base/service"
	"ecommerce_analytics/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertSample ghi một sample real-time vào store theo identity
// (timestamp, metricName). Ingest lại cùng identity chỉ ghi đè value —
// last-write-wins, không bao giờ tạo dòng trùng.
func (s *AnalyticsService) UpsertSample(ctx context.Context, sample analyticsmodels.RealtimeSample) (analyticsmodels.RealtimeSample, error) {
	filter := bson.M{
		"timestamp":  sample.Timestamp,
		"metricName": sample.MetricName,
	}
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"timestamp":  sample.Timestamp,
			"metricName": sample.MetricName,
			"value":      sample.Value,
		},
	}
	return s.realtime.Upsert(ctx, filter, update)
}

// GetRecentSamples trả về các sample real-time mới nhất, mới trước cũ sau.
func (s *AnalyticsService) GetRecentSamples(ctx context.Context, params analyticsdto.RealtimeQueryParams) (*analyticsdto.RealtimeReport, error) {
	if params.Limit < 0 {
		return nil, common.ErrInvalidLimit
	}
	limit := params.Limit
	if limit == 0 {
		limit = 60
	}

	samples, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) ([]analyticsmodels.RealtimeSample, error) {
		opts := options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(int64(limit))
		return s.realtime.Find(queryCtx, nil, opts)
	})
	if err != nil {
		return nil, err
	}

	return &analyticsdto.RealtimeReport{Samples: samples}, nil
}
