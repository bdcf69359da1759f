// Package models - SearchTerm và ZeroResultSearchEvent thuộc domain Analytics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SearchTerm là số lượt tìm kiếm tích lũy theo từ khóa (analytics_search_terms).
type SearchTerm struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`              // MongoDB _id
	Query     string             `json:"query" bson:"query" index:"unique"`              // Từ khóa tìm kiếm
	Count     int64              `json:"count" bson:"count"`                             // Số lượt tìm kiếm (>= 0)
	CreatedAt int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Unix milliseconds
	UpdatedAt int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Unix milliseconds
}

// ZeroResultSearchEvent là một lượt tìm kiếm không có kết quả (analytics_zero_searches).
// Append-only; tổng hợp theo searchQuery bằng $group khi truy vấn.
type ZeroResultSearchEvent struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`              // MongoDB _id
	SearchQuery string             `json:"searchQuery" bson:"searchQuery"`                 // Từ khóa không ra kết quả
	Timestamp   string             `json:"timestamp" bson:"timestamp"`                     // Thời điểm tìm kiếm, ISO-8601
	CreatedAt   int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Unix milliseconds
	UpdatedAt   int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Unix milliseconds
}
