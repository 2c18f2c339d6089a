package repository

import (
	"context"
	"testing"

	"github.com/alexandru1c/refeelv2/configs"
	"github.com/alexandru1c/refeelv2/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := configs.OpenDatabase("sqlite", "file::memory:")
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	// in-memory sqlite is per connection
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, configs.SetupDatabase(database))
	t.Cleanup(func() { sqlDB.Close() })
	return database
}

type fixture struct {
	user    entity.User
	rest    entity.Restaurant
	falafel entity.Product
	soup    entity.Product
	reward  entity.RewardProduct
}

func seedFixture(t *testing.T, db *gorm.DB, balance int64) fixture {
	t.Helper()

	f := fixture{
		user: entity.User{UserUUID: "u-1", Email: "ana@example.com", DisplayName: "Ana", CoinBalance: balance},
		rest: entity.Restaurant{DisplayName: "Bistro Verde", LogoURL: "https://cdn.example.com/verde.png"},
	}
	require.NoError(t, db.Create(&f.user).Error)
	require.NoError(t, db.Create(&f.rest).Error)

	f.falafel = entity.Product{Name: "Falafel", Price: decimal.NewFromInt(10), Coins: 2, RestaurantID: f.rest.ID}
	f.soup = entity.Product{Name: "Soup", Price: decimal.NewFromInt(5), Coins: 1, RestaurantID: f.rest.ID}
	f.reward = entity.RewardProduct{Name: "Free Lemonade", Coins: 10, RestaurantID: f.rest.ID}
	require.NoError(t, db.Create(&f.falafel).Error)
	require.NoError(t, db.Create(&f.soup).Error)
	require.NoError(t, db.Create(&f.reward).Error)
	return f
}

func TestCreateFoodOrderWritesHeaderAndItems(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 0)
	repo := NewOrderRepository(db)

	o := &entity.Order{
		UserID:           f.user.ID,
		RestaurantID:     f.rest.ID,
		MonetaryTotal:    decimal.NewFromInt(25),
		CoinsTotal:       5,
		QRCode:           "7c0b5a1e-0ad4-4b8e-9a51-6a2a8c4e2f10",
		ValidationStatus: entity.ValidationPending,
		Items: []entity.OrderLineItem{
			{ProductID: f.falafel.ID, Quantity: 2},
			{ProductID: f.soup.ID, Quantity: 1},
		},
	}
	require.NoError(t, repo.CreateFoodOrder(context.Background(), o))
	require.NotZero(t, o.ID)

	var items []entity.OrderLineItem
	require.NoError(t, db.Where("order_id = ?", o.ID).Order("id").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, f.falafel.ID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, f.soup.ID, items[1].ProductID)
}

func TestCreateFoodOrderRollsBackOnItemFailure(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 0)
	repo := NewOrderRepository(db)

	first := &entity.Order{UserID: f.user.ID, RestaurantID: f.rest.ID, QRCode: "dup", MonetaryTotal: decimal.Zero}
	require.NoError(t, repo.CreateFoodOrder(context.Background(), first))

	// QR ซ้ำ → header insert fails
	second := &entity.Order{
		UserID: f.user.ID, RestaurantID: f.rest.ID, QRCode: "dup", MonetaryTotal: decimal.Zero,
		Items: []entity.OrderLineItem{{ProductID: f.soup.ID, Quantity: 1}},
	}
	require.Error(t, repo.CreateFoodOrder(context.Background(), second))

	var n int64
	db.Model(&entity.OrderLineItem{}).Count(&n)
	assert.Zero(t, n)
}

func TestCreateRewardOrder(t *testing.T) {
	t.Run("exact balance reaches zero", func(t *testing.T) {
		db := newTestDB(t)
		f := seedFixture(t, db, 20)
		repo := NewOrderRepository(db)

		o := &entity.RewardOrder{
			UserID: f.user.ID, RestaurantID: f.rest.ID, CoinsTotal: 20, QRCode: "r-1",
			ValidationStatus: entity.ValidationPending,
			Items:            []entity.RewardLineItem{{ProductID: f.reward.ID, Quantity: 2}},
		}
		remaining, err := repo.CreateRewardOrder(context.Background(), o)
		require.NoError(t, err)
		assert.Zero(t, remaining)

		bal, err := repo.CoinBalance(context.Background(), f.user.ID)
		require.NoError(t, err)
		assert.Zero(t, bal)
	})

	t.Run("insufficient balance rolls back everything", func(t *testing.T) {
		db := newTestDB(t)
		f := seedFixture(t, db, 5)
		repo := NewOrderRepository(db)

		o := &entity.RewardOrder{
			UserID: f.user.ID, RestaurantID: f.rest.ID, CoinsTotal: 10, QRCode: "r-2",
			Items: []entity.RewardLineItem{{ProductID: f.reward.ID, Quantity: 1}},
		}
		_, err := repo.CreateRewardOrder(context.Background(), o)
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		var headers, items int64
		db.Model(&entity.RewardOrder{}).Count(&headers)
		db.Model(&entity.RewardLineItem{}).Count(&items)
		assert.Zero(t, headers)
		assert.Zero(t, items)

		bal, _ := repo.CoinBalance(context.Background(), f.user.ID)
		assert.Equal(t, int64(5), bal)
	})
}

func TestHistoryListsNewestFirstWithSnapshots(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 100)
	orders := NewOrderRepository(db)
	history := NewHistoryRepository(db)
	ctx := context.Background()

	older := &entity.Order{
		UserID: f.user.ID, RestaurantID: f.rest.ID, MonetaryTotal: decimal.NewFromInt(10), CoinsTotal: 2,
		QRCode: "old", ValidationStatus: entity.ValidationSuccessful,
		Items: []entity.OrderLineItem{{ProductID: f.falafel.ID, Quantity: 1}},
	}
	newer := &entity.Order{
		UserID: f.user.ID, RestaurantID: f.rest.ID, MonetaryTotal: decimal.NewFromInt(5), CoinsTotal: 1,
		QRCode: "new", ValidationStatus: entity.ValidationPending,
		Items: []entity.OrderLineItem{{ProductID: f.soup.ID, Quantity: 1}},
	}
	require.NoError(t, orders.CreateFoodOrder(ctx, older))
	require.NoError(t, orders.CreateFoodOrder(ctx, newer))

	// order ของคนอื่นต้องไม่ติดมา
	other := entity.User{UserUUID: "u-2"}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, orders.CreateFoodOrder(ctx, &entity.Order{UserID: other.ID, RestaurantID: f.rest.ID, QRCode: "x", MonetaryTotal: decimal.Zero}))

	recs, err := history.ListOrders(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "new", recs[0].QRCode)
	assert.Equal(t, "old", recs[1].QRCode)
	assert.Equal(t, "Bistro Verde", recs[0].RestaurantName)
	assert.Equal(t, "https://cdn.example.com/verde.png", recs[0].RestaurantLogo)
	require.Len(t, recs[1].Lines, 1)
	assert.Equal(t, "Falafel", recs[1].Lines[0].Product.Name)
	assert.True(t, decimal.NewFromInt(10).Equal(recs[1].Lines[0].Product.Price))
}

func TestHistoryKeepsDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 100)
	orders := NewOrderRepository(db)
	history := NewHistoryRepository(db)
	ctx := context.Background()

	o := &entity.RewardOrder{
		UserID: f.user.ID, RestaurantID: f.rest.ID, CoinsTotal: 10, QRCode: "r",
		Items: []entity.RewardLineItem{{ProductID: f.reward.ID, Quantity: 1}, {ProductID: 9999, Quantity: 1}},
	}
	_, err := orders.CreateRewardOrder(ctx, o)
	require.NoError(t, err)
	require.NoError(t, db.Delete(&f.reward).Error)

	rec, err := history.GetRewardOrder(ctx, f.user.ID, o.ID)
	require.NoError(t, err)
	require.Len(t, rec.Lines, 2)
	assert.Equal(t, "Free Lemonade", rec.Lines[0].Product.Name)
	assert.False(t, rec.Lines[0].Product.Missing)
	assert.True(t, rec.Lines[1].Product.Missing)

	_, err = history.GetRewardOrder(ctx, f.user.ID+1, o.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindOrProvision(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u, err := repo.FindOrProvision(ctx, "oidc|abc", "b@example.com", "Bogdan")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Zero(t, u.CoinBalance)

	again, err := repo.FindOrProvision(ctx, "oidc|abc", "other@example.com", "Other")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "b@example.com", again.Email)
}

func TestCatalog(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 0)
	repo := NewRestaurantRepository(db)

	rests, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, rests, 1)

	products, err := repo.Products(f.rest.ID)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	rewards, err := repo.RewardProducts(f.rest.ID)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, int64(10), rewards[0].Coins)

	_, err = repo.FindProduct(12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
