package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alexandru1c/refeelv2/pkg/cart"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type checkoutTestContext struct {
	store    *fakeStore
	svc      *CheckoutService
	cart     *cart.Cart
	products map[string]cart.Item
	nextID   uint
	receipt  *Receipt
	err      error
}

func (c *checkoutTestContext) reset() {
	c.store = newFakeStore(0)
	c.svc, _ = newCheckout(c.store)
	c.cart = cart.New()
	c.products = map[string]cart.Item{}
	c.nextID = 0
	c.receipt = nil
	c.err = nil
}

func (c *checkoutTestContext) aRestaurantNamed(id int, name string) error {
	c.store.restaurants[uint(id)] = name
	return nil
}

func (c *checkoutTestContext) aFoodProduct(name string, price, coins int) error {
	c.nextID++
	c.products[name] = cart.Item{
		ProductID: c.nextID, Name: name, UnitPrice: decimal.NewFromInt(int64(price)),
		UnitCoins: int64(coins), RestaurantID: 1,
	}
	return nil
}

func (c *checkoutTestContext) aReward(name string, coins int) error {
	c.nextID++
	c.products[name] = cart.Item{
		ProductID: c.nextID, Name: name, UnitPrice: decimal.Zero,
		UnitCoins: int64(coins), RestaurantID: 1,
	}
	return nil
}

func (c *checkoutTestContext) myCoinBalanceIs(balance int) error {
	c.store.balance = int64(balance)
	return nil
}

func (c *checkoutTestContext) iAddToTheCart(name string, times int) error {
	it, ok := c.products[name]
	if !ok {
		return fmt.Errorf("unknown product %q", name)
	}
	for i := 0; i < times; i++ {
		c.cart.Add(it)
	}
	return nil
}

func (c *checkoutTestContext) theStoreIsFailing() error {
	c.store.foodErr = errors.New("connection refused")
	c.store.rewardErr = errors.New("connection refused")
	return nil
}

func (c *checkoutTestContext) theCartTotalIs(total, coins int) error {
	if !c.cart.TotalPrice().Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("expected total %d, got %s", total, c.cart.TotalPrice())
	}
	if c.cart.TotalCoins() != int64(coins) {
		return fmt.Errorf("expected %d coins, got %d", coins, c.cart.TotalCoins())
	}
	return nil
}

func (c *checkoutTestContext) iPlaceTheFoodOrder() error {
	c.receipt, c.err = c.svc.PlaceFoodOrder(context.Background(), 1, c.cart)
	return nil
}

func (c *checkoutTestContext) iRedeemTheReward() error {
	c.receipt, c.err = c.svc.RedeemReward(context.Background(), 1, c.cart)
	return nil
}

func (c *checkoutTestContext) theCheckoutSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	if c.receipt == nil || c.receipt.QRCode == "" {
		return errors.New("expected a receipt with a token")
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected checkout to fail but it succeeded")
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.err.Error())
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutFailsWithATransientError() error {
	var tio *TransientIOError
	if !errors.As(c.err, &tio) {
		return fmt.Errorf("expected TransientIOError, got %T (%v)", c.err, c.err)
	}
	return nil
}

func (c *checkoutTestContext) theStoreWasNotCalled() error {
	if c.store.calls != 0 {
		return fmt.Errorf("expected 0 store calls, got %d", c.store.calls)
	}
	return nil
}

func (c *checkoutTestContext) nothingWasWritten() error {
	if c.store.writes != 0 {
		return fmt.Errorf("expected 0 writes, got %d", c.store.writes)
	}
	return nil
}

func (c *checkoutTestContext) oneOrderHeaderIsWritten(total, coins int, status string) error {
	if len(c.store.foodOrders) != 1 {
		return fmt.Errorf("expected 1 order, got %d", len(c.store.foodOrders))
	}
	o := c.store.foodOrders[0]
	if !o.MonetaryTotal.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("expected total %d, got %s", total, o.MonetaryTotal)
	}
	if o.CoinsTotal != int64(coins) {
		return fmt.Errorf("expected %d coins, got %d", coins, o.CoinsTotal)
	}
	if string(o.ValidationStatus) != status {
		return fmt.Errorf("expected status %q, got %q", status, o.ValidationStatus)
	}
	return nil
}

func (c *checkoutTestContext) theOrderHasLine(name string, qty int) error {
	it := c.products[name]
	for _, l := range c.store.foodOrders[0].Items {
		if l.ProductID == it.ProductID {
			if l.Quantity != qty {
				return fmt.Errorf("expected %s x %d, got x %d", name, qty, l.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for %s", name)
}

func (c *checkoutTestContext) theCartIsEmpty() error {
	if !c.cart.IsEmpty() {
		return fmt.Errorf("expected empty cart, got %d lines", c.cart.Len())
	}
	return nil
}

func (c *checkoutTestContext) theCartStillHolds(n int) error {
	if got := c.cart.ItemCount(); got != n {
		return fmt.Errorf("expected %d items, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) myRemainingBalanceIs(n int) error {
	if c.receipt == nil || c.receipt.RemainingBalance == nil {
		return errors.New("no remaining balance on receipt")
	}
	if *c.receipt.RemainingBalance != int64(n) {
		return fmt.Errorf("expected balance %d, got %d", n, *c.receipt.RemainingBalance)
	}
	return nil
}

func InitializeCheckoutScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a restaurant (\d+) named "([^"]*)"$`, tc.aRestaurantNamed)
	ctx.Step(`^a food product "([^"]*)" priced (\d+) worth (\d+) coins$`, tc.aFoodProduct)
	ctx.Step(`^a reward "([^"]*)" costing (\d+) coins$`, tc.aReward)
	ctx.Step(`^my coin balance is (\d+)$`, tc.myCoinBalanceIs)
	ctx.Step(`^I add "([^"]*)" to the cart (\d+) times$`, tc.iAddToTheCart)
	ctx.Step(`^the store is failing$`, tc.theStoreIsFailing)

	// When steps
	ctx.Step(`^I place the food order$`, tc.iPlaceTheFoodOrder)
	ctx.Step(`^I redeem the reward$`, tc.iRedeemTheReward)

	// Then steps
	ctx.Step(`^the cart total is (\d+) and (\d+) coins$`, tc.theCartTotalIs)
	ctx.Step(`^the checkout succeeds$`, tc.theCheckoutSucceeds)
	ctx.Step(`^the checkout fails with "([^"]*)"$`, tc.theCheckoutFailsWith)
	ctx.Step(`^the checkout fails with a transient error$`, tc.theCheckoutFailsWithATransientError)
	ctx.Step(`^the store was not called$`, tc.theStoreWasNotCalled)
	ctx.Step(`^nothing was written$`, tc.nothingWasWritten)
	ctx.Step(`^one order header is written with total (\d+), (\d+) coins and status "([^"]*)"$`, tc.oneOrderHeaderIsWritten)
	ctx.Step(`^the order has line "([^"]*)" x (\d+)$`, tc.theOrderHasLine)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the cart still holds (\d+) items$`, tc.theCartStillHolds)
	ctx.Step(`^my remaining balance is (\d+)$`, tc.myRemainingBalanceIs)
}

func TestCheckoutFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeCheckoutScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
