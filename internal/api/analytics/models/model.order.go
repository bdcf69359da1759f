// Package models - OrderRecord thuộc domain Analytics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// OrderRecord là một đơn hàng thô (analytics_orders).
// Append-only: không bao giờ sửa sau khi ghi. Mọi aggregate đều có thể
// dựng lại bằng cách replay toàn bộ lịch sử order qua aggregation.
type OrderRecord struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`              // MongoDB _id
	Timestamp     string             `json:"timestamp" bson:"timestamp" index:"single:1"`    // Thời điểm đặt hàng, ISO-8601 (RFC 3339)
	Total         float64            `json:"total" bson:"total"`                             // Tổng giá trị đơn hàng (>= 0)
	Items         int64              `json:"items" bson:"items"`                             // Số sản phẩm trong đơn (>= 0)
	PaymentMethod string             `json:"paymentMethod" bson:"paymentMethod"`             // Phương thức thanh toán (vd: card, cod, paypal)
	CreatedAt     int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Unix milliseconds
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Unix milliseconds
}
