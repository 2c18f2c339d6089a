package repository

import (
	"context"

	"github.com/alexandru1c/refeelv2/entity"

	"gorm.io/gorm"
)

// OrderRepository เขียน order header + line items ใน transaction เดียว
type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) RestaurantName(ctx context.Context, restaurantID uint) (string, error) {
	var rest entity.Restaurant
	if err := r.DB.WithContext(ctx).Select("id, display_name").First(&rest, restaurantID).Error; err != nil {
		return "", err
	}
	return rest.DisplayName, nil
}

func (r *OrderRepository) CoinBalance(ctx context.Context, userID uint) (int64, error) {
	var u entity.User
	if err := r.DB.WithContext(ctx).Select("id, coin_balance").First(&u, userID).Error; err != nil {
		return 0, err
	}
	return u.CoinBalance, nil
}

// CreateFoodOrder สร้าง header ก่อน แล้วตามด้วย line items ที่อ้าง id ของ header
func (r *OrderRepository) CreateFoodOrder(ctx context.Context, o *entity.Order) error {
	items := o.Items
	o.Items = nil

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	o.Items = items
	return err
}

// CreateRewardOrder writes header, items and the coin decrement atomically
// and returns the balance left after the decrement.
func (r *OrderRepository) CreateRewardOrder(ctx context.Context, o *entity.RewardOrder) (int64, error) {
	items := o.Items
	o.Items = nil

	var remaining int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].RewardOrderID = o.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		// ตัด coins แบบมีเงื่อนไข กัน balance ติดลบเวลามีการแลกพร้อมกัน
		res := tx.Model(&entity.User{}).
			Where("id = ? AND coin_balance >= ?", o.UserID, o.CoinsTotal).
			UpdateColumn("coin_balance", gorm.Expr("coin_balance - ?", o.CoinsTotal))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		var u entity.User
		if err := tx.Select("id, coin_balance").First(&u, o.UserID).Error; err != nil {
			return err
		}
		remaining = u.CoinBalance
		return nil
	})
	o.Items = items
	if err != nil {
		return 0, err
	}
	return remaining, nil
}
