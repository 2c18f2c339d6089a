package entity

import (
	"gorm.io/gorm"
)

type RewardLineItem struct {
	gorm.Model
	RewardOrderID uint        `json:"rewardOrderId"`
	RewardOrder   RewardOrder `json:"-"`

	ProductID uint          `json:"productId"`
	Product   RewardProduct `gorm:"foreignKey:ProductID" json:"-"`

	Quantity int `gorm:"not null" json:"quantity"`
}
