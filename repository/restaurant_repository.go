package repository

import (
	"github.com/alexandru1c/refeelv2/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// ดึงร้านทั้งหมด
func (r *RestaurantRepository) FindAll() ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.Order("display_name ASC").Find(&rests).Error
	return rests, err
}

// ดึงร้านตาม ID
func (r *RestaurantRepository) FindByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// เมนูอาหารของร้าน
func (r *RestaurantRepository) Products(restaurantID uint) ([]entity.Product, error) {
	var out []entity.Product
	err := r.DB.Where("restaurant_id = ?", restaurantID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) FindProduct(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ของรางวัลที่แลกได้ที่ร้าน
func (r *RestaurantRepository) RewardProducts(restaurantID uint) ([]entity.RewardProduct, error) {
	var out []entity.RewardProduct
	err := r.DB.Where("restaurant_id = ?", restaurantID).Order("coins ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) FindRewardProduct(id uint) (*entity.RewardProduct, error) {
	var p entity.RewardProduct
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
