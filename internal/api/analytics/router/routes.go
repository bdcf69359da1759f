// Package router đăng ký các route thuộc domain Analytics.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	analyticshdl "ecommerce_analytics/internal/api/analytics/handler"
	apirouter "ecommerce_analytics/internal/api/router"
)

// Register đăng ký tất cả route analytics lên v1:
// dashboard, sales, products, users, search, realtime.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	analyticsHandler, err := analyticshdl.NewAnalyticsHandler()
	if err != nil {
		return fmt.Errorf("create analytics handler: %w", err)
	}

	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/dashboard", nil, analyticsHandler.HandleGetDashboard)
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/sales", nil, analyticsHandler.HandleGetSales)
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/products", nil, analyticsHandler.HandleGetProducts)
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/users", nil, analyticsHandler.HandleGetUsers)
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/search", nil, analyticsHandler.HandleGetSearch)
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/realtime", nil, analyticsHandler.HandleGetRealtime)

	return nil
}
