package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"ecommerce_analytics/config"
	analyticssvc "ecommerce_analytics/internal/api/analytics/service"
	"ecommerce_analytics/internal/database"
	"ecommerce_analytics/internal/global"
	"ecommerce_analytics/internal/logger"
	"ecommerce_analytics/internal/stream"
	"ecommerce_analytics/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server trên main thread
func main_thread(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	address := ":" + cfg.Address

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	listenConfig := fiber.ListenConfig{}
	if err := app.Listen(address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	// Context nền cho các background worker, hủy khi server dừng
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Khởi tạo và chạy Realtime Ingestor (background worker - nhận metric từ Redis)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis_Addr,
		Password: cfg.Redis_Password,
		DB:       cfg.Redis_DB,
	})

	ingestor, err := NewRealtimeIngestor(redisClient, cfg)
	if err != nil {
		log.WithError(err).Error("Failed to create realtime ingestor, continuing without realtime data")
	} else {
		ingestor.Start()
		log.Infof("[INGEST] Realtime ingestor started on channel %s", cfg.Redis_Channel)
	}

	// Khởi tạo và chạy Session Cleanup Worker
	cleanupWorker, err := worker.NewSessionCleanupWorker(0, cfg.Session_RetentionDays)
	if err != nil {
		log.WithError(err).Error("Failed to create session cleanup worker, continuing without cleanup")
	} else {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("[SESSION_CLEANUP] Worker goroutine panic")
				}
			}()
			cleanupWorker.Start(ctx)
		}()
	}

	// Bắt tín hiệu để shutdown có trật tự: dừng ingestor trước (chờ message
	// đang xử lý hoàn tất), sau đó mới đóng kết nối MongoDB.
	app := InitFiberApp()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Infof("Received signal %s, shutting down...", sig)

		cancel()
		if ingestor != nil {
			ingestor.Stop()
		}
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error during Fiber shutdown")
		}
	}()

	// Chạy Fiber server trên main thread
	main_thread(app)

	// Fiber đã dừng, đóng kết nối database
	if err := database.CloseInstance(global.MongoDB_Session); err != nil {
		log.WithError(err).Error("Error closing MongoDB connection")
	}
	log.Info("Server stopped")
}

// NewRealtimeIngestor tạo ingestor gắn với AnalyticsService làm store
func NewRealtimeIngestor(client *redis.Client, cfg *config.Configuration) (*stream.Ingestor, error) {
	analyticsService, err := analyticssvc.NewAnalyticsService()
	if err != nil {
		return nil, err
	}
	return stream.NewIngestor(client, cfg.Redis_Channel, cfg.Ingest_QueueSize, analyticsService), nil
}
