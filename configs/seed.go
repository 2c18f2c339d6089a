package configs

import (
	"github.com/alexandru1c/refeelv2/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type demoRestaurant struct {
	entity.Restaurant
	products []entity.Product
	rewards  []entity.RewardProduct
}

func demoData() []demoRestaurant {
	price := decimal.RequireFromString
	return []demoRestaurant{
		{
			Restaurant: entity.Restaurant{DisplayName: "Bistro Verde", Address: "Str. Memorandumului 12, Cluj-Napoca"},
			products: []entity.Product{
				{Name: "Falafel Bowl", Price: price("32.50"), Coins: 3},
				{Name: "Lentil Soup", Price: price("18.00"), Coins: 2},
				{Name: "Lemonade", Price: price("12.00"), Coins: 1},
			},
			rewards: []entity.RewardProduct{
				{Name: "Free Lemonade", Coins: 10},
				{Name: "Free Falafel Bowl", Coins: 30},
			},
		},
		{
			Restaurant: entity.Restaurant{DisplayName: "Pizzeria Roma", Address: "Bd. Eroilor 5, Cluj-Napoca"},
			products: []entity.Product{
				{Name: "Margherita", Price: price("35.00"), Coins: 4},
				{Name: "Quattro Formaggi", Price: price("42.00"), Coins: 5},
			},
			rewards: []entity.RewardProduct{
				{Name: "Tiramisu", Coins: 15},
			},
		},
	}
}

// SeedDemo ใส่ร้าน/เมนู/ของรางวัลตัวอย่าง รันซ้ำได้ (FirstOrCreate ตามชื่อ)
func SeedDemo(database *gorm.DB, log *zap.Logger) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, d := range demoData() {
			rest := d.Restaurant
			if err := tx.Where(entity.Restaurant{DisplayName: rest.DisplayName}).
				FirstOrCreate(&rest).Error; err != nil {
				return err
			}
			for _, p := range d.products {
				p.RestaurantID = rest.ID
				if err := tx.Where(entity.Product{Name: p.Name, RestaurantID: rest.ID}).
					FirstOrCreate(&p).Error; err != nil {
					return err
				}
			}
			for _, rp := range d.rewards {
				rp.RestaurantID = rest.ID
				if err := tx.Where(entity.RewardProduct{Name: rp.Name, RestaurantID: rest.ID}).
					FirstOrCreate(&rp).Error; err != nil {
					return err
				}
			}
			log.Info("seeded restaurant", zap.String("name", rest.DisplayName), zap.Uint("id", rest.ID))
		}
		return nil
	})
}
