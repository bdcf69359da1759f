// Package global - Test các custom validator.
package global

import "testing"

func TestValidateGranularity(t *testing.T) {
	InitValidator()

	type params struct {
		Period string `validate:"required,granularity"`
	}

	for _, period := range []string{"hour", "day", "week", "month"} {
		if err := Validate.Struct(params{Period: period}); err != nil {
			t.Errorf("granularity %q phải hợp lệ, nhận lỗi: %v", period, err)
		}
	}
	for _, period := range []string{"", "quarter", "Day", "year"} {
		if err := Validate.Struct(params{Period: period}); err == nil {
			t.Errorf("granularity %q phải bị từ chối", period)
		}
	}
}

func TestValidateMetricName(t *testing.T) {
	InitValidator()

	type params struct {
		Name string `validate:"metric_name"`
	}

	for _, name := range []string{"daily_page_views", "daily_sales", "orders.total", "cpu95"} {
		if err := Validate.Struct(params{Name: name}); err != nil {
			t.Errorf("metric name %q phải hợp lệ, nhận lỗi: %v", name, err)
		}
	}
	for _, name := range []string{"", "Daily_Sales", "page views", "_hidden", "trailing_"} {
		if err := Validate.Struct(params{Name: name}); err == nil {
			t.Errorf("metric name %q phải bị từ chối", name)
		}
	}
}
