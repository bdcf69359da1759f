package global

import (
	"ecommerce_analytics/config"
	"ecommerce_analytics/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Analytics_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Analytics_CollectionName struct {
	DailyMetrics string // Tên collection cho snapshot metric theo ngày
	Orders       string // Tên collection cho đơn hàng
	Products     string // Tên collection cho metric sản phẩm
	Users        string // Tên collection cho metric người dùng
	Sessions     string // Tên collection cho session hoạt động
	SearchTerms  string // Tên collection cho từ khóa tìm kiếm
	ZeroSearches string // Tên collection cho lượt tìm kiếm không có kết quả
	Realtime     string // Tên collection cho sample real-time từ stream
}

// Các biến toàn cục
var Validate *validator.Validate                                                               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                                              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                                                 // Cấu hình của server
var MongoDB_ColNames MongoDB_Analytics_CollectionName = *new(MongoDB_Analytics_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
