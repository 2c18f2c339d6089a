package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product คือเมนูอาหารที่ขายได้ ทุกชิ้นให้ coins กลับตามจำนวนที่ซื้อ
type Product struct {
	gorm.Model
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Coins       int64           `gorm:"not null;default:0" json:"coins"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"` // preload เมื่อจำเป็น
}
