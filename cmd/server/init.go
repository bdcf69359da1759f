package main

import (
	"context"

	"ecommerce_analytics/config"
	analyticsmodels "ecommerce_analytics/internal/api/analytics/models"
	"ecommerce_analytics/internal/database"
	"ecommerce_analytics/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.DailyMetrics = "analytics_daily_metrics"
	global.MongoDB_ColNames.Orders = "analytics_orders"
	global.MongoDB_ColNames.Products = "analytics_products"
	global.MongoDB_ColNames.Users = "analytics_users"
	global.MongoDB_ColNames.Sessions = "analytics_sessions"
	global.MongoDB_ColNames.SearchTerms = "analytics_search_terms"
	global.MongoDB_ColNames.ZeroSearches = "analytics_zero_searches"
	global.MongoDB_ColNames.Realtime = "analytics_realtime"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: granularity, metric_name)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.DailyMetrics), analyticsmodels.MetricSnapshot{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Orders), analyticsmodels.OrderRecord{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Products), analyticsmodels.ProductMetric{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), analyticsmodels.UserMetric{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Sessions), analyticsmodels.SessionRecord{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.SearchTerms), analyticsmodels.SearchTerm{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ZeroSearches), analyticsmodels.ZeroResultSearchEvent{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Realtime), analyticsmodels.RealtimeSample{})

	// Các index phụ phục vụ sort/filter của báo cáo (không gắn với tag model)
	if err := database.CreateAnalyticsAdditionalIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create additional analytics indexes: %v", err)
	}
}
