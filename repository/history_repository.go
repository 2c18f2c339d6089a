package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexandru1c/refeelv2/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductSnapshot is the product as it reads today. Missing is set when the
// product row no longer exists.
type ProductSnapshot struct {
	ID       uint
	Name     string
	ImageURL string
	Price    decimal.Decimal
	Coins    int64
	Missing  bool
}

type LineRecord struct {
	ProductID uint
	Quantity  int
	Product   ProductSnapshot
}

type OrderRecord struct {
	ID               uint
	RestaurantID     uint
	RestaurantName   string
	RestaurantLogo   string
	MonetaryTotal    decimal.Decimal
	CoinsTotal       int64
	QRCode           string
	ValidationStatus entity.ValidationStatus
	CreatedAt        time.Time
	Lines            []LineRecord
}

// HistoryRepository joins headers, line items, products and restaurants on
// the read side: one query for the headers, then one per header and per
// line. Callers only see the List/Get methods.
type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) ListOrders(ctx context.Context, userID uint) ([]OrderRecord, error) {
	db := r.DB.WithContext(ctx)

	var headers []entity.Order
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&headers).Error; err != nil {
		return nil, err
	}

	out := make([]OrderRecord, 0, len(headers))
	for i := range headers {
		rec, err := r.foodRecord(db, &headers[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *HistoryRepository) GetOrder(ctx context.Context, userID, orderID uint) (*OrderRecord, error) {
	db := r.DB.WithContext(ctx)

	var o entity.Order
	if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return r.foodRecord(db, &o)
}

func (r *HistoryRepository) ListRewardOrders(ctx context.Context, userID uint) ([]OrderRecord, error) {
	db := r.DB.WithContext(ctx)

	var headers []entity.RewardOrder
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&headers).Error; err != nil {
		return nil, err
	}

	out := make([]OrderRecord, 0, len(headers))
	for i := range headers {
		rec, err := r.rewardRecord(db, &headers[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *HistoryRepository) GetRewardOrder(ctx context.Context, userID, orderID uint) (*OrderRecord, error) {
	db := r.DB.WithContext(ctx)

	var o entity.RewardOrder
	if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return r.rewardRecord(db, &o)
}

func (r *HistoryRepository) foodRecord(db *gorm.DB, o *entity.Order) (*OrderRecord, error) {
	rec := &OrderRecord{
		ID:               o.ID,
		RestaurantID:     o.RestaurantID,
		MonetaryTotal:    o.MonetaryTotal,
		CoinsTotal:       o.CoinsTotal,
		QRCode:           o.QRCode,
		ValidationStatus: o.ValidationStatus,
		CreatedAt:        o.CreatedAt,
	}
	if err := r.fillRestaurant(db, rec); err != nil {
		return nil, err
	}

	var items []entity.OrderLineItem
	if err := db.Where("order_id = ?", o.ID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		snap := ProductSnapshot{ID: it.ProductID}
		var p entity.Product
		err := db.Unscoped().First(&p, it.ProductID).Error
		switch {
		case err == nil:
			snap.Name, snap.ImageURL, snap.Price, snap.Coins = p.Name, p.ImageURL, p.Price, p.Coins
		case errors.Is(err, gorm.ErrRecordNotFound):
			snap.Missing = true
		default:
			return nil, err
		}
		rec.Lines = append(rec.Lines, LineRecord{ProductID: it.ProductID, Quantity: it.Quantity, Product: snap})
	}
	return rec, nil
}

func (r *HistoryRepository) rewardRecord(db *gorm.DB, o *entity.RewardOrder) (*OrderRecord, error) {
	rec := &OrderRecord{
		ID:               o.ID,
		RestaurantID:     o.RestaurantID,
		MonetaryTotal:    decimal.Zero,
		CoinsTotal:       o.CoinsTotal,
		QRCode:           o.QRCode,
		ValidationStatus: o.ValidationStatus,
		CreatedAt:        o.CreatedAt,
	}
	if err := r.fillRestaurant(db, rec); err != nil {
		return nil, err
	}

	var items []entity.RewardLineItem
	if err := db.Where("reward_order_id = ?", o.ID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		snap := ProductSnapshot{ID: it.ProductID, Price: decimal.Zero}
		var p entity.RewardProduct
		err := db.Unscoped().First(&p, it.ProductID).Error
		switch {
		case err == nil:
			snap.Name, snap.ImageURL, snap.Coins = p.Name, p.ImageURL, p.Coins
		case errors.Is(err, gorm.ErrRecordNotFound):
			snap.Missing = true
		default:
			return nil, err
		}
		rec.Lines = append(rec.Lines, LineRecord{ProductID: it.ProductID, Quantity: it.Quantity, Product: snap})
	}
	return rec, nil
}

// ร้านที่ถูกลบไปแล้วยังต้องแสดงชื่อได้ จึงใช้ Unscoped
func (r *HistoryRepository) fillRestaurant(db *gorm.DB, rec *OrderRecord) error {
	var rest entity.Restaurant
	err := db.Unscoped().Select("id, display_name, logo_url").First(&rest, rec.RestaurantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	rec.RestaurantName = rest.DisplayName
	rec.RestaurantLogo = rest.LogoURL
	return nil
}
