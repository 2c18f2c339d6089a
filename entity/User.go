package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	// subject ที่ identity provider ออกให้ (uuid ของ local provider หรือ sub ของ OIDC)
	UserUUID    string `gorm:"uniqueIndex;not null" json:"userUuid"`
	Email       string `gorm:"index" json:"email"`
	Password    string `json:"-"` // ว่างได้ ถ้ามาจาก OIDC
	DisplayName string `json:"displayName"`
	CoinBalance int64  `gorm:"not null;default:0" json:"coinBalance"`

	// Relations: preload เฉพาะตอนจำเป็น
	Orders       []Order       `json:"-"`
	RewardOrders []RewardOrder `json:"-"`
}
