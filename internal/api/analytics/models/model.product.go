// Package models - ProductMetric thuộc domain Analytics.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProductMetric là metric tích lũy của một sản phẩm (analytics_products).
// Identity = productId; views/cartAdds tăng dần khi có event mới.
type ProductMetric struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`              // MongoDB _id
	ProductID      string             `json:"productId" bson:"productId" index:"unique"`      // Mã sản phẩm
	Name           string             `json:"name" bson:"name"`                               // Tên sản phẩm
	Category       string             `json:"category" bson:"category" index:"single:1"`      // Danh mục sản phẩm
	Views          int64              `json:"views" bson:"views"`                             // Số lượt xem (>= 0)
	CartAdds       int64              `json:"cartAdds" bson:"cartAdds"`                       // Số lượt thêm vào giỏ (>= 0)
	ViewToCartRate float64            `json:"viewToCartRate" bson:"viewToCartRate"`           // Tỉ lệ xem -> thêm giỏ, trong [0,1]
	Price          float64            `json:"price" bson:"price"`                             // Giá hiện tại (>= 0)
	CreatedAt      int64              `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Unix milliseconds
	UpdatedAt      int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Unix milliseconds
}
