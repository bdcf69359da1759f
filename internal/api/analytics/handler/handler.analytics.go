// Package analyticshdl - Handler cho các endpoint Analytics.
package analyticshdl

import (
	"strconv"

	analyticsdto "ecommerce_analytics/internal/api/analytics/dto"
	analyticssvc "ecommerce_analytics/internal/api/analytics/service"
	basehdl "ecommerce_analytics/internal/api/base/handler"
	"ecommerce_analytics/internal/common"
	"ecommerce_analytics/internal/global"

	"github.com/gofiber/fiber/v3"
)

// AnalyticsHandler xử lý request HTTP cho domain Analytics
type AnalyticsHandler struct {
	AnalyticsService *analyticssvc.AnalyticsService
}

// NewAnalyticsHandler tạo mới AnalyticsHandler.
func NewAnalyticsHandler() (*AnalyticsHandler, error) {
	service, err := analyticssvc.NewAnalyticsService()
	if err != nil {
		return nil, err
	}
	return &AnalyticsHandler{AnalyticsService: service}, nil
}

// parseLimit parse query param limit; rỗng -> 0 (service tự áp mặc định),
// không phải số hoặc âm -> lỗi 400.
func parseLimit(c fiber.Ctx) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, common.ErrInvalidLimit
	}
	return limit, nil
}

// HandleGetDashboard xử lý GET /analytics/dashboard — payload tổng quan.
func (h *AnalyticsHandler) HandleGetDashboard(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		overview, err := h.AnalyticsService.GetDashboardOverview(c.Context())
		return basehdl.HandleResponse(c, overview, err)
	})
}

// HandleGetSales xử lý GET /analytics/sales?period= — bucket theo chu kỳ
// kèm breakdown phương thức thanh toán. Period sai -> 400, bỏ trống -> day.
func (h *AnalyticsHandler) HandleGetSales(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		params := analyticsdto.SalesQueryParams{Period: c.Query("period", "day")}
		if err := global.Validate.Struct(params); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidPeriod)
		}
		report, err := h.AnalyticsService.GetSalesReport(c.Context(), params.Period)
		return basehdl.HandleResponse(c, report, err)
	})
}

// HandleGetProducts xử lý GET /analytics/products?category=&sort=&limit=.
// Sort field lạ fallback về views (giữ hành vi cũ); limit sai -> 400.
func (h *AnalyticsHandler) HandleGetProducts(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		limit, err := parseLimit(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		params := analyticsdto.ProductsQueryParams{
			Category: c.Query("category"),
			Sort:     c.Query("sort"),
			Limit:    limit,
		}
		report, err := h.AnalyticsService.GetProductReport(c.Context(), params)
		return basehdl.HandleResponse(c, report, err)
	})
}

// HandleGetUsers xử lý GET /analytics/users — tổng user, session active, top spenders.
func (h *AnalyticsHandler) HandleGetUsers(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		report, err := h.AnalyticsService.GetUserReport(c.Context())
		return basehdl.HandleResponse(c, report, err)
	})
}

// HandleGetSearch xử lý GET /analytics/search?limit= — top từ khóa + zero-result.
func (h *AnalyticsHandler) HandleGetSearch(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		limit, err := parseLimit(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		report, err := h.AnalyticsService.GetSearchReport(c.Context(), analyticsdto.SearchQueryParams{Limit: limit})
		return basehdl.HandleResponse(c, report, err)
	})
}

// HandleGetRealtime xử lý GET /analytics/realtime?limit= — sample mới nhất từ stream.
func (h *AnalyticsHandler) HandleGetRealtime(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		limit, err := parseLimit(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		report, err := h.AnalyticsService.GetRecentSamples(c.Context(), analyticsdto.RealtimeQueryParams{Limit: limit})
		return basehdl.HandleResponse(c, report, err)
	})
}
