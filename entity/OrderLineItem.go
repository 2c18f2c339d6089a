package entity

import (
	"gorm.io/gorm"
)

type OrderLineItem struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	ProductID uint    `json:"productId"`
	Product   Product `json:"-"` // preload เฉพาะตอนต้องการชื่อ/รูป

	Quantity int `gorm:"not null" json:"quantity"`
}
