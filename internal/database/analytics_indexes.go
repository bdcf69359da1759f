// Package database - Index bổ sung cho analytics (compound, sort thứ tự giảm dần)
// không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"ecommerce_analytics/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAnalyticsAdditionalIndexes tạo các index bổ sung cho analytics.
// Gọi sau CreateIndexes cho từng collection.
func CreateAnalyticsAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// analytics_products: (category, views desc) — ranking sản phẩm theo danh mục
	products := db.Collection(global.MongoDB_ColNames.Products)
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "views", Value: -1},
		},
		Options: options.Index().SetName("product_category_views"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// analytics_orders: (timestamp desc) — recent orders + window filter cho period aggregation
	orders := db.Collection(global.MongoDB_ColNames.Orders)
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "timestamp", Value: -1},
		},
		Options: options.Index().SetName("order_timestamp_desc"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// analytics_users: (totalSpent desc) — top spenders
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "totalSpent", Value: -1},
		},
		Options: options.Index().SetName("user_total_spent_desc"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// analytics_zero_searches: (searchQuery, timestamp) — $group theo query text
	zeroSearches := db.Collection(global.MongoDB_ColNames.ZeroSearches)
	if _, err := zeroSearches.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "searchQuery", Value: 1},
			{Key: "timestamp", Value: 1},
		},
		Options: options.Index().SetName("zero_search_query_time"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
