package entity

import (
	"gorm.io/gorm"
)

type RewardOrder struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	CoinsTotal       int64            `json:"coinsTotal"`
	QRCode           string           `gorm:"uniqueIndex;size:36;not null" json:"qrCode"`
	ValidationStatus ValidationStatus `gorm:"size:16" json:"validationStatus"`

	Items []RewardLineItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
}
