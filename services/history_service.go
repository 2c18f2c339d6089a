package services

import (
	"context"
	"errors"
	"time"

	"github.com/alexandru1c/refeelv2/entity"
	"github.com/alexandru1c/refeelv2/pkg/cart"
	"github.com/alexandru1c/refeelv2/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const unavailableProduct = "Unavailable product"

// HistorySource is satisfied by repository.HistoryRepository.
type HistorySource interface {
	ListOrders(ctx context.Context, userID uint) ([]repository.OrderRecord, error)
	GetOrder(ctx context.Context, userID, orderID uint) (*repository.OrderRecord, error)
	ListRewardOrders(ctx context.Context, userID uint) ([]repository.OrderRecord, error)
	GetRewardOrder(ctx context.Context, userID, orderID uint) (*repository.OrderRecord, error)
}

// HistoryReader is what the HTTP layer depends on.
type HistoryReader interface {
	ListOrders(ctx context.Context, userID uint) ([]OrderView, error)
	ListRewardOrders(ctx context.Context, userID uint) ([]OrderView, error)
	GetOrder(ctx context.Context, userID, orderID uint) (*OrderView, error)
	GetRewardOrder(ctx context.Context, userID, orderID uint) (*OrderView, error)
}

type OrderLineView struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCoins int64           `json:"unitCoins"`
	Quantity  int             `json:"quantity"`
	Available bool            `json:"available"`
}

type OrderView struct {
	ID             uint                    `json:"id"`
	Kind           cart.Kind               `json:"kind"`
	RestaurantID   uint                    `json:"restaurantId"`
	RestaurantName string                  `json:"restaurantName"`
	RestaurantLogo string                  `json:"restaurantLogo"`
	MonetaryTotal  *decimal.Decimal        `json:"monetaryTotal,omitempty"`
	CoinsTotal     int64                   `json:"coinsTotal"`
	QRCode         string                  `json:"qrCode"`
	Status         entity.ValidationStatus `json:"validationStatus"`
	Badge          StatusBadge             `json:"badge"`
	CreatedAt      time.Time               `json:"createdAt"`
	Lines          []OrderLineView         `json:"lines"`
}

type HistoryService struct {
	src HistorySource
}

func NewHistoryService(src HistorySource) *HistoryService {
	return &HistoryService{src: src}
}

func (s *HistoryService) ListOrders(ctx context.Context, userID uint) ([]OrderView, error) {
	recs, err := s.src.ListOrders(ctx, userID)
	if err != nil {
		return nil, transient("list orders", err)
	}
	return views(cart.Food, recs), nil
}

func (s *HistoryService) ListRewardOrders(ctx context.Context, userID uint) ([]OrderView, error) {
	recs, err := s.src.ListRewardOrders(ctx, userID)
	if err != nil {
		return nil, transient("list reward orders", err)
	}
	return views(cart.Reward, recs), nil
}

func (s *HistoryService) GetOrder(ctx context.Context, userID, orderID uint) (*OrderView, error) {
	rec, err := s.src.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, notFoundOr(err, "get order")
	}
	v := toView(cart.Food, rec)
	return &v, nil
}

func (s *HistoryService) GetRewardOrder(ctx context.Context, userID, orderID uint) (*OrderView, error) {
	rec, err := s.src.GetRewardOrder(ctx, userID, orderID)
	if err != nil {
		return nil, notFoundOr(err, "get reward order")
	}
	v := toView(cart.Reward, rec)
	return &v, nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	return transient(op, err)
}

func views(kind cart.Kind, recs []repository.OrderRecord) []OrderView {
	out := make([]OrderView, 0, len(recs))
	for i := range recs {
		out = append(out, toView(kind, &recs[i]))
	}
	return out
}

func toView(kind cart.Kind, rec *repository.OrderRecord) OrderView {
	v := OrderView{
		ID:             rec.ID,
		Kind:           kind,
		RestaurantID:   rec.RestaurantID,
		RestaurantName: rec.RestaurantName,
		RestaurantLogo: rec.RestaurantLogo,
		CoinsTotal:     rec.CoinsTotal,
		QRCode:         rec.QRCode,
		Status:         rec.ValidationStatus,
		Badge:          ValidationBadge(rec.ValidationStatus),
		CreatedAt:      rec.CreatedAt,
		Lines:          make([]OrderLineView, 0, len(rec.Lines)),
	}
	if kind == cart.Food {
		total := rec.MonetaryTotal
		v.MonetaryTotal = &total
	}
	for _, l := range rec.Lines {
		lv := OrderLineView{
			ProductID: l.ProductID,
			Name:      l.Product.Name,
			ImageURL:  l.Product.ImageURL,
			UnitPrice: l.Product.Price,
			UnitCoins: l.Product.Coins,
			Quantity:  l.Quantity,
			Available: !l.Product.Missing,
		}
		if l.Product.Missing {
			lv.Name = unavailableProduct
		}
		v.Lines = append(v.Lines, lv)
	}
	return v
}
