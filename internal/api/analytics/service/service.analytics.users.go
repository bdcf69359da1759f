package analyticssvc

import (
	"context"
	"time"

	analyticsdto "ecommerce_analytics/internal/api/analytics/dto"
	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// activeSessionWindow là cửa sổ trailing xác định session "active"
const activeSessionWindow = 30 * time.Minute

// countActiveSessions đếm session có lastActive trong cửa sổ 30 phút.
// lastActive lưu dạng RFC 3339 UTC nên so sánh chuỗi trùng so sánh thời gian.
func (s *AnalyticsService) countActiveSessions(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-activeSessionWindow).UTC().Format(time.RFC3339)
	return GuardedQuery(ctx, s.guard, func(queryCtx context.Context) (int64, error) {
		return s.sessions.CountDocuments(queryCtx, bson.M{"lastActive": bson.M{"$gte": cutoff}})
	})
}

// DeleteStaleSessions xóa các session không hoạt động quá retentionDays ngày.
// Dùng bởi worker dọn dẹp định kỳ; trả về số session đã xóa.
func (s *AnalyticsService) DeleteStaleSessions(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(time.RFC3339)
	return GuardedQuery(ctx, s.guard, func(queryCtx context.Context) (int64, error) {
		return s.sessions.DeleteMany(queryCtx, bson.M{"lastActive": bson.M{"$lt": cutoff}})
	})
}

// GetUserReport dựng báo cáo người dùng: tổng số user, số session đang
// hoạt động và top 5 người chi tiêu nhiều nhất.
func (s *AnalyticsService) GetUserReport(ctx context.Context) (*analyticsdto.UserReport, error) {
	totalUsers, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) (int64, error) {
		return s.users.CountDocuments(queryCtx, nil)
	})
	if err != nil {
		return nil, err
	}

	activeSessions, err := s.countActiveSessions(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	topUsers, err := GuardedQuery(ctx, s.guard, func(queryCtx context.Context) ([]analyticsmodels.UserMetric, error) {
		opts := options.Find().
			SetSort(bson.D{{Key: "totalSpent", Value: -1}}).
			SetLimit(5).
			SetProjection(bson.M{"userId": 1, "totalSpent": 1})
		return s.users.Find(queryCtx, nil, opts)
	})
	if err != nil {
		return nil, err
	}

	topSpenders := make([]analyticsdto.TopSpender, 0, len(topUsers))
	for _, user := range topUsers {
		topSpenders = append(topSpenders, analyticsdto.TopSpender{
			UserID:     user.UserID,
			TotalSpent: user.TotalSpent,
		})
	}

	return &analyticsdto.UserReport{
		TotalUsers:     totalUsers,
		ActiveSessions: activeSessions,
		TopSpenders:    topSpenders,
	}, nil
}
