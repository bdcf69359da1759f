package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Bao gồm cấu hình server, MongoDB, Redis stream và các tham số ingest.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                       // Cổng server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`                 // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"ecommerce_analytics"` // Tên cơ sở dữ liệu analytics
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`                     // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`       // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`                 // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`               // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`            // Bật/tắt rate limiting

	// Redis stream (nguồn metric real-time)
	Redis_Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`       // Địa chỉ Redis
	Redis_Password string `env:"REDIS_PASSWORD"`                               // Mật khẩu Redis (optional)
	Redis_DB       int    `env:"REDIS_DB" envDefault:"0"`                      // Redis database index
	Redis_Channel  string `env:"REDIS_CHANNEL" envDefault:"analytics:metrics"` // Channel pub/sub nhận metric updates

	// Tham số ingest và aggregation
	Ingest_QueueSize        int `env:"INGEST_QUEUE_SIZE" envDefault:"1024"`     // Sức chứa queue giữa receive loop và upsert
	Aggregation_MaxInflight int `env:"AGGREGATION_MAX_INFLIGHT" envDefault:"8"` // Số aggregation query nặng chạy đồng thời tối đa
	Storage_QueryTimeout    int `env:"STORAGE_QUERY_TIMEOUT" envDefault:"10"`   // Timeout mỗi truy vấn storage (giây)

	// Worker dọn session
	Session_RetentionDays int `env:"SESSION_RETENTION_DAYS" envDefault:"7"` // Số ngày giữ session không hoạt động
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			return filepath.Join(envDir, fmt.Sprintf("%s.env", environment))
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
