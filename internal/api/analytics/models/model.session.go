// Package models - SessionRecord thuộc domain Analytics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SessionRecord theo dõi hoạt động của một session (analytics_sessions).
// lastActive chỉ tiến về phía trước; session được coi là "active"
// khi lastActive nằm trong cửa sổ 30 phút tính đến thời điểm truy vấn.
type SessionRecord struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`              // MongoDB _id
	SessionID  string             `json:"sessionId" bson:"sessionId" index:"unique"`      // Mã session
	LastActive string             `json:"lastActive" bson:"lastActive" index:"single:1"`  // Lần hoạt động cuối, ISO-8601
	CreatedAt  int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Unix milliseconds
	UpdatedAt  int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Unix milliseconds
}
