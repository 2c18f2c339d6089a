package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"` // preload เมื่อจำเป็น

	MonetaryTotal    decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"monetaryTotal"`
	CoinsTotal       int64            `json:"coinsTotal"`
	QRCode           string           `gorm:"uniqueIndex;size:36;not null" json:"qrCode"`
	ValidationStatus ValidationStatus `gorm:"size:16" json:"validationStatus"`

	Items []OrderLineItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
}
