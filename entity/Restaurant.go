package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	DisplayName string `json:"displayName"`
	Address     string `json:"address"`
	LogoURL     string `json:"logoUrl"`

	Products       []Product       `json:"-"`
	RewardProducts []RewardProduct `json:"-"`
}
