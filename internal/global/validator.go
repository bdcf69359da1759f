package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("granularity", validateGranularity)
	_ = Validate.RegisterValidation("metric_name", validateMetricName)
}

// validateGranularity kiểm tra chu kỳ thời gian hợp lệ (hour|day|week|month)
func validateGranularity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "hour", "day", "week", "month":
		return true
	}
	return false
}

// validateMetricName kiểm tra tên metric: không rỗng, không chứa khoảng trắng,
// chỉ gồm chữ thường, số, dấu chấm và underscore (ví dụ: daily_page_views)
func validateMetricName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	for _, c := range value {
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		if !isLower && !isDigit && c != '.' && c != '_' {
			return false
		}
	}
	return !strings.HasPrefix(value, "_") && !strings.HasSuffix(value, "_")
}
