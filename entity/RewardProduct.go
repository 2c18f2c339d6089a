package entity

import (
	"gorm.io/gorm"
)

// RewardProduct แลกได้ด้วย coins เท่านั้น ไม่มีราคาเป็นเงิน
type RewardProduct struct {
	gorm.Model
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Coins    int64  `gorm:"not null" json:"coins"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
