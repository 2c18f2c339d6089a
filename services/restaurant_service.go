// services/restaurant_service.go
package services

import (
	"errors"

	"github.com/alexandru1c/refeelv2/entity"
	"github.com/alexandru1c/refeelv2/repository"

	"gorm.io/gorm"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantService อ่านข้อมูลร้าน/เมนู/ของรางวัล (read-only)
type RestaurantService struct {
	Repo *repository.RestaurantRepository
}

func NewRestaurantService(repo *repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{Repo: repo}
}

// ดึงร้านทั้งหมด
func (s *RestaurantService) List() ([]entity.Restaurant, error) {
	return s.Repo.FindAll()
}

// ดึงร้านตาม ID
func (s *RestaurantService) Get(id uint) (*entity.Restaurant, error) {
	rest, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

func (s *RestaurantService) Products(restaurantID uint) ([]entity.Product, error) {
	if _, err := s.Get(restaurantID); err != nil {
		return nil, err
	}
	return s.Repo.Products(restaurantID)
}

func (s *RestaurantService) Rewards(restaurantID uint) ([]entity.RewardProduct, error) {
	if _, err := s.Get(restaurantID); err != nil {
		return nil, err
	}
	return s.Repo.RewardProducts(restaurantID)
}
