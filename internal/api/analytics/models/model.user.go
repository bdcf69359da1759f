// Package models - UserMetric thuộc domain Analytics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserMetric là metric tích lũy của một người dùng (analytics_users).
// firstSeen bất biến; totalSpent và viewedProducts chỉ tăng, không giảm.
type UserMetric struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`              // MongoDB _id
	UserID         string             `json:"userId" bson:"userId" index:"unique"`            // Mã người dùng
	TotalSpent     float64            `json:"totalSpent" bson:"totalSpent"`                   // Tổng chi tiêu (>= 0)
	FirstSeen      string             `json:"firstSeen" bson:"firstSeen"`                     // Lần đầu xuất hiện, ISO-8601 — bất biến
	ViewedProducts []string           `json:"viewedProducts" bson:"viewedProducts"`           // Tập productId đã xem (không trùng lặp)
	CreatedAt      int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Unix milliseconds
	UpdatedAt      int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Unix milliseconds
}
