package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexandru1c/refeelv2/entity"
	"github.com/alexandru1c/refeelv2/pkg/cart"
	"github.com/alexandru1c/refeelv2/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CheckoutStore is the write side used by checkout. The order writes are
// atomic: header and items (and the coin decrement) commit together.
type CheckoutStore interface {
	RestaurantName(ctx context.Context, restaurantID uint) (string, error)
	CoinBalance(ctx context.Context, userID uint) (int64, error)
	CreateFoodOrder(ctx context.Context, o *entity.Order) error
	CreateRewardOrder(ctx context.Context, o *entity.RewardOrder) (remaining int64, err error)
}

// TokenGenerator yields the idempotency token shown to the user as a QR code.
type TokenGenerator func() string

const defaultLockTTL = 30 * time.Second

type Receipt struct {
	OrderID        uint            `json:"orderId"`
	Kind           cart.Kind       `json:"kind"`
	QRCode         string          `json:"qrCode"`
	RestaurantID   uint            `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	MonetaryTotal  decimal.Decimal `json:"monetaryTotal"`
	CoinsTotal     int64           `json:"coinsTotal"`
	// only for reward redemptions
	RemainingBalance *int64 `json:"remainingBalance,omitempty"`
}

type CheckoutService struct {
	store    CheckoutStore
	guard    guard.Guard
	newToken TokenGenerator
	lockTTL  time.Duration
	log      *zap.Logger
}

func NewCheckoutService(store CheckoutStore, g guard.Guard, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:    store,
		guard:    g,
		newToken: uuid.NewString,
		lockTTL:  defaultLockTTL,
		log:      log,
	}
}

func (s *CheckoutService) WithTokenGenerator(gen TokenGenerator) *CheckoutService {
	s.newToken = gen
	return s
}

// PlaceFoodOrder persists the cart as a pending food order and clears the
// cart once the order is committed.
func (s *CheckoutService) PlaceFoodOrder(ctx context.Context, userID uint, c *cart.Cart) (*Receipt, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	coins, err := cart.CheckedTotalCoins(lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTotal, err)
	}

	release, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	restaurantID := lines[0].RestaurantID
	token := s.newToken()

	name, err := s.restaurantName(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		UserID:           userID,
		RestaurantID:     restaurantID,
		MonetaryTotal:    cart.TotalPrice(lines),
		CoinsTotal:       coins,
		QRCode:           token,
		ValidationStatus: entity.ValidationPending,
		Items:            make([]entity.OrderLineItem, 0, len(lines)),
	}
	for _, l := range lines {
		order.Items = append(order.Items, entity.OrderLineItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	if err := s.store.CreateFoodOrder(ctx, order); err != nil {
		s.log.Error("food order failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, transient("create food order", err)
	}

	c.Clear()
	s.log.Info("food order placed",
		zap.Uint("user_id", userID),
		zap.Uint("order_id", order.ID),
		zap.String("total", order.MonetaryTotal.StringFixed(2)),
		zap.Int64("coins", order.CoinsTotal))

	return &Receipt{
		OrderID:        order.ID,
		Kind:           cart.Food,
		QRCode:         token,
		RestaurantID:   restaurantID,
		RestaurantName: name,
		MonetaryTotal:  order.MonetaryTotal,
		CoinsTotal:     order.CoinsTotal,
	}, nil
}

// RedeemReward checks the balance before any write, then commits the
// redemption and the coin decrement together. Spending the whole balance is
// allowed.
func (s *CheckoutService) RedeemReward(ctx context.Context, userID uint, c *cart.Cart) (*Receipt, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// ยอดต้องเป็นบวกเสมอ ไม่งั้น decrement จะกลายเป็นการเติม coins
	coins, err := cart.CheckedTotalCoins(lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTotal, err)
	}
	if coins <= 0 {
		return nil, fmt.Errorf("%w: redemption must cost coins", ErrInvalidTotal)
	}

	release, err := s.lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	balance, err := s.store.CoinBalance(ctx, userID)
	if err != nil {
		return nil, transient("read coin balance", err)
	}
	if coins > balance {
		return nil, fmt.Errorf("%w: need %d coins, have %d", ErrInsufficientBalance, coins, balance)
	}

	restaurantID := lines[0].RestaurantID
	token := s.newToken()

	name, err := s.restaurantName(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	order := &entity.RewardOrder{
		UserID:           userID,
		RestaurantID:     restaurantID,
		CoinsTotal:       coins,
		QRCode:           token,
		ValidationStatus: entity.ValidationPending,
		Items:            make([]entity.RewardLineItem, 0, len(lines)),
	}
	for _, l := range lines {
		order.Items = append(order.Items, entity.RewardLineItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	remaining, err := s.store.CreateRewardOrder(ctx, order)
	if errors.Is(err, ErrInsufficientBalance) {
		// another redemption spent the coins between the read and the write
		s.log.Warn("redemption lost balance race", zap.Uint("user_id", userID), zap.Int64("coins", coins))
		return nil, fmt.Errorf("%w: balance changed during checkout", ErrInsufficientBalance)
	}
	if err != nil {
		s.log.Error("reward redemption failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, transient("create reward order", err)
	}

	c.Clear()
	s.log.Info("reward redeemed",
		zap.Uint("user_id", userID),
		zap.Uint("reward_order_id", order.ID),
		zap.Int64("coins", coins),
		zap.Int64("new_balance", remaining))

	return &Receipt{
		OrderID:          order.ID,
		Kind:             cart.Reward,
		QRCode:           token,
		RestaurantID:     restaurantID,
		RestaurantName:   name,
		MonetaryTotal:    decimal.Zero,
		CoinsTotal:       coins,
		RemainingBalance: &remaining,
	}, nil
}

func (s *CheckoutService) lock(ctx context.Context, userID uint) (func(), error) {
	key := guard.CheckoutKey(userID)
	token, ok, err := s.guard.Acquire(ctx, key, s.lockTTL)
	if err != nil {
		return nil, transient("acquire checkout lock", err)
	}
	if !ok {
		return nil, ErrCheckoutInProgress
	}
	return func() { s.guard.Release(context.WithoutCancel(ctx), key, token) }, nil
}

// ร้านที่ถูกลบแล้วไม่ทำให้ checkout ล้ม แค่ไม่มีชื่อร้านในใบเสร็จ
func (s *CheckoutService) restaurantName(ctx context.Context, restaurantID uint) (string, error) {
	name, err := s.store.RestaurantName(ctx, restaurantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", transient("read restaurant", err)
	}
	return name, nil
}
