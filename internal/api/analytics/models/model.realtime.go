// Package models - RealtimeSample thuộc domain Analytics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RealtimeSample là một sample metric real-time từ stream (analytics_realtime).
// Identity = (timestamp, metricName). Ingest cùng identity nhiều lần chỉ
// ghi đè value (last-write-wins), không bao giờ tạo dòng trùng.
type RealtimeSample struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                                      // MongoDB _id
	Timestamp  string             `json:"timestamp" bson:"timestamp" index:"compound:realtime_identity_unique"`   // Thời điểm, cắt về phút (vd: 2026-08-28T14:05)
	MetricName string             `json:"metricName" bson:"metricName" index:"compound:realtime_identity_unique"` // Tên metric
	Value      float64            `json:"value" bson:"value"`                                                     // Giá trị sample
	CreatedAt  int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"`                         // Unix milliseconds
	UpdatedAt  int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`                         // Unix milliseconds
}
