// Package models chứa các model thuộc domain Analytics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MetricSnapshot là snapshot của một metric theo ngày (analytics_daily_metrics).
// Identity = (name, date). Snapshot của ngày quá khứ là bất biến;
// snapshot của ngày hiện tại được upsert liên tục khi có event mới.
type MetricSnapshot struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                         // MongoDB _id
	Name      string             `json:"name" bson:"name" index:"compound:metric_name_date_unique"` // Tên metric (vd: daily_page_views, daily_sales)
	Date      string             `json:"date" bson:"date" index:"compound:metric_name_date_unique"` // Ngày theo định dạng YYYY-MM-DD
	Count     int64              `json:"count" bson:"count"`                                        // Số lượng event trong ngày (>= 0)
	Revenue   float64            `json:"revenue" bson:"revenue"`                                    // Tổng doanh thu trong ngày (>= 0)
	CreatedAt int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`            // Unix milliseconds
	UpdatedAt int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`            // Unix milliseconds
}
