package services

import (
	"errors"

	"github.com/alexandru1c/refeelv2/entity"
	"github.com/alexandru1c/refeelv2/pkg/cart"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductCatalog resolves product snapshots so prices never come from the
// client.
type ProductCatalog interface {
	FindProduct(id uint) (*entity.Product, error)
	FindRewardProduct(id uint) (*entity.RewardProduct, error)
}

type CartService struct {
	Sessions *cart.Sessions
	Catalog  ProductCatalog
}

func NewCartService(sessions *cart.Sessions, catalog ProductCatalog) *CartService {
	return &CartService{Sessions: sessions, Catalog: catalog}
}

type AddToCartIn struct {
	ProductID uint `json:"productId" binding:"required"`
}

type SetQtyIn struct {
	Qty *int `json:"qty" binding:"required"`
}

type CartView struct {
	Kind         cart.Kind          `json:"kind"`
	RestaurantID uint               `json:"restaurantId"`
	Lines        []cart.Line        `json:"lines"`
	ItemCount    int                `json:"itemCount"`
	TotalPrice   decimal.Decimal    `json:"totalPrice"`
	TotalCoins   int64              `json:"totalCoins"`
	Balance      *BalanceAffordance `json:"balance,omitempty"`
}

// View builds totals from one snapshot so they always agree with the lines.
func View(kind cart.Kind, c *cart.Cart) CartView {
	lines := c.Lines()
	v := CartView{
		Kind:       kind,
		Lines:      lines,
		ItemCount:  cart.ItemCount(lines),
		TotalPrice: cart.TotalPrice(lines),
		TotalCoins: cart.TotalCoins(lines),
	}
	if len(lines) > 0 {
		v.RestaurantID = lines[0].RestaurantID
	}
	return v
}

func (s *CartService) Cart(userID uint, kind cart.Kind) *cart.Cart {
	return s.Sessions.Get(userID, kind)
}

// Add rejects products from a restaurant other than the one already in the
// cart.
func (s *CartService) Add(userID uint, kind cart.Kind, productID uint) (*cart.Cart, error) {
	it, err := s.resolve(kind, productID)
	if err != nil {
		return nil, err
	}

	c := s.Cart(userID, kind)
	if rid := c.RestaurantID(); rid != 0 && rid != it.RestaurantID {
		return nil, ErrRestaurantMismatch
	}
	if err := c.Add(it); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) Increase(userID uint, kind cart.Kind, productID uint) (*cart.Cart, error) {
	c := s.Cart(userID, kind)
	if err := c.Increase(productID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) Decrease(userID uint, kind cart.Kind, productID uint) *cart.Cart {
	c := s.Cart(userID, kind)
	c.Decrease(productID)
	return c
}

func (s *CartService) SetQuantity(userID uint, kind cart.Kind, productID uint, qty int) (*cart.Cart, error) {
	c := s.Cart(userID, kind)
	if err := c.SetQuantity(productID, qty); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) RemoveItem(userID uint, kind cart.Kind, productID uint) *cart.Cart {
	c := s.Cart(userID, kind)
	c.Remove(productID)
	return c
}

func (s *CartService) Clear(userID uint, kind cart.Kind) {
	s.Cart(userID, kind).Clear()
}

func (s *CartService) resolve(kind cart.Kind, productID uint) (cart.Item, error) {
	if kind == cart.Reward {
		p, err := s.Catalog.FindRewardProduct(productID)
		if err != nil {
			return cart.Item{}, lookupErr(err)
		}
		return cart.Item{
			ProductID:    p.ID,
			Name:         p.Name,
			UnitPrice:    decimal.Zero,
			UnitCoins:    p.Coins,
			RestaurantID: p.RestaurantID,
			ImageRef:     p.ImageURL,
		}, nil
	}

	p, err := s.Catalog.FindProduct(productID)
	if err != nil {
		return cart.Item{}, lookupErr(err)
	}
	return cart.Item{
		ProductID:    p.ID,
		Name:         p.Name,
		UnitPrice:    p.Price,
		UnitCoins:    p.Coins,
		RestaurantID: p.RestaurantID,
		ImageRef:     p.ImageURL,
	}, nil
}

func lookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return transient("read product", err)
}
