package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 書き込みを1コネクションに直列化したインメモリDB
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	))

	return db
}

type orderTestEnv struct {
	db       *gorm.DB
	orders   repo.OrderRepository
	items    repo.OrderItemRepository
	products repo.ProductRepository
	users    repo.UserRepository
	uc       *OrderUsecase
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()

	db := newTestDB(t)
	orders := infraRepo.NewOrderGormRepository(db)
	items := infraRepo.NewOrderItemGormRepository(db)
	products := infraRepo.NewProductGormRepository(db)
	users := infraRepo.NewUserGormRepository(db)

	return &orderTestEnv{
		db:       db,
		orders:   orders,
		items:    items,
		products: products,
		users:    users,
		uc:       NewOrderUsecase(orders, items, products, users),
	}
}

func (e *orderTestEnv) seedUser(t *testing.T, name string) model.User {
	t.Helper()
	u := model.User{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, e.db.Create(&u).Error)
	return u
}

func (e *orderTestEnv) seedProduct(t *testing.T, name string, price int64) model.Product {
	t.Helper()

	c := model.Category{Name: name + " category"}
	require.NoError(t, e.db.Create(&c).Error)

	p := model.Product{Name: name, Price: price, CategoryID: c.ID, Image: "http://img"}
	require.NoError(t, e.db.Create(&p).Error)
	return p
}

func shippingInput(items []OrderItemInput) CreateOrderInput {
	return CreateOrderInput{
		Items:            items,
		ShippingAddress1: "1-2-3 Chuo",
		City:             "Tokyo",
		Zip:              "100-0001",
		Country:          "JP",
		Phone:            "090-0000-0000",
	}
}

func TestOrderCreate_ComputesTotalFromResolvedPrices(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "alice")
	p1 := env.seedProduct(t, "p1", 1000) // $10.00
	p2 := env.seedProduct(t, "p2", 550)  // $5.50

	out, err := env.uc.Create(ctx, user.ID, shippingInput([]OrderItemInput{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 1},
	}))
	require.NoError(t, err)

	assert.Equal(t, int64(2550), out.TotalPrice)
	assert.Len(t, out.OrderItems, 2)
	assert.Equal(t, model.OrderStatusPending, out.Status)
	require.NotNil(t, out.User)
	assert.Equal(t, "alice", out.User.Name)

	//明細は商品とカテゴリまで展開される
	require.NotNil(t, out.OrderItems[0].Product)
	assert.Equal(t, "p1", out.OrderItems[0].Product.Name)
	require.NotNil(t, out.OrderItems[0].Product.Category)

	//永続化されていること
	saved, err := env.orders.FindByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2550), saved.TotalPrice)
}

func TestOrderCreate_TotalIsSnapshot(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "alice")
	p := env.seedProduct(t, "p1", 1000)

	out, err := env.uc.Create(ctx, user.ID, shippingInput([]OrderItemInput{
		{ProductID: p.ID, Quantity: 1},
	}))
	require.NoError(t, err)

	//後から価格が変わっても合計は作成時点のまま
	require.NoError(t, env.db.Model(&model.Product{}).Where("id = ?", p.ID).Update("price", 9999).Error)

	saved, err := env.orders.FindByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), saved.TotalPrice)
}

func TestOrderCreate_EmptyItems(t *testing.T) {
	env := newOrderTestEnv(t)
	user := env.seedUser(t, "alice")

	_, err := env.uc.Create(context.Background(), user.ID, shippingInput(nil))
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestOrderCreate_NonPositiveQuantity(t *testing.T) {
	env := newOrderTestEnv(t)
	user := env.seedUser(t, "alice")
	p := env.seedProduct(t, "p1", 1000)

	for _, qty := range []int64{0, -1} {
		_, err := env.uc.Create(context.Background(), user.ID, shippingInput([]OrderItemInput{
			{ProductID: p.ID, Quantity: qty},
		}))
		require.Error(t, err)

		he, ok := AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}
}

func TestOrderCreate_UnknownProductAbortsOrder(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "alice")

	_, err := env.uc.Create(ctx, user.ID, shippingInput([]OrderItemInput{
		{ProductID: 999, Quantity: 1},
	}))
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//注文本体は作られない
	count, err := env.orders.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

//Createだけ失敗するOrderRepository
type failingOrderRepo struct {
	repo.OrderRepository
}

func (r *failingOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	return 0, errors.New("insert failed")
}

//Createだけ失敗するOrderItemRepository
type failingOrderItemRepo struct {
	repo.OrderItemRepository
}

func (r *failingOrderItemRepo) Create(ctx context.Context, item model.OrderItem) (int64, error) {
	return 0, errors.New("insert failed")
}

func TestOrderCreate_OrderPersistFailureLeavesOrphanItems(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "alice")
	p := env.seedProduct(t, "p1", 1000)

	uc := NewOrderUsecase(&failingOrderRepo{env.orders}, env.items, env.products, env.users)

	_, err := uc.Create(ctx, user.ID, shippingInput([]OrderItemInput{
		{ProductID: p.ID, Quantity: 1},
	}))
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)

	//注文本体は残らない
	count, err := env.orders.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	//明細は未紐付けのまま残る（補償しない）
	var items []model.OrderItem
	require.NoError(t, env.db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, int64(0), items[0].OrderID)
	assert.Equal(t, p.ID, items[0].ProductID)
}

func TestOrderCreate_ItemPersistFailureAbortsOrder(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "alice")
	p := env.seedProduct(t, "p1", 1000)

	uc := NewOrderUsecase(env.orders, &failingOrderItemRepo{env.items}, env.products, env.users)

	_, err := uc.Create(ctx, user.ID, shippingInput([]OrderItemInput{
		{ProductID: p.ID, Quantity: 1},
	}))
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)

	//注文本体は作られない
	count, err := env.orders.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestOrderCreate_QuantityOverCap(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "alice")
	p := env.seedProduct(t, "p1", 1000)

	_, err := env.uc.Create(ctx, user.ID, shippingInput([]OrderItemInput{
		{ProductID: p.ID, Quantity: maxOrderItemQuantity + 1},
	}))
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//上限ちょうどは通る
	out, err := env.uc.Create(ctx, user.ID, shippingInput([]OrderItemInput{
		{ProductID: p.ID, Quantity: maxOrderItemQuantity},
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(1000*maxOrderItemQuantity), out.TotalPrice)
}

func TestTotalSales_EmptyStoreIsZeroNotError(t *testing.T) {
	env := newOrderTestEnv(t)

	total, err := env.uc.TotalSales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestTotalSales_SumsAllOrders(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "alice")

	for _, total := range []int64{1000, 2000, 3000} {
		_, err := env.orders.Create(ctx, model.Order{
			ShippingAddress1: "x",
			Status:           model.OrderStatusPending,
			TotalPrice:       total,
			UserID:           user.ID,
			DateOrdered:      time.Now(),
		})
		require.NoError(t, err)
	}

	total, err := env.uc.TotalSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), total)
}

func TestCount_EmptyStoreIsZeroNotError(t *testing.T) {
	env := newOrderTestEnv(t)

	count, err := env.uc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.uc.UpdateStatus(context.Background(), 42, model.OrderStatusShipped)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestUpdateStatus_ChangesOnlyStatus(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "alice")
	p := env.seedProduct(t, "p1", 1000)

	created, err := env.uc.Create(ctx, user.ID, shippingInput([]OrderItemInput{
		{ProductID: p.ID, Quantity: 2},
	}))
	require.NoError(t, err)

	out, err := env.uc.UpdateStatus(ctx, created.ID, model.OrderStatusShipped)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusShipped, out.Status)
	assert.Equal(t, created.TotalPrice, out.TotalPrice)
	assert.Equal(t, created.ShippingAddress1, out.ShippingAddress1)
	assert.Equal(t, created.City, out.City)
	assert.Equal(t, created.Zip, out.Zip)
	assert.Equal(t, created.Country, out.Country)
	assert.Equal(t, created.Phone, out.Phone)
	assert.Len(t, out.OrderItems, 1)
}

func TestListByUser_FiltersAndSortsDescending(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seed := func(userID int64, total int64, at time.Time) {
		_, err := env.orders.Create(ctx, model.Order{
			ShippingAddress1: "x",
			Status:           model.OrderStatusPending,
			TotalPrice:       total,
			UserID:           userID,
			DateOrdered:      at,
		})
		require.NoError(t, err)
	}

	seed(alice.ID, 100, base)
	seed(bob.ID, 200, base.Add(1*time.Hour))
	seed(alice.ID, 300, base.Add(2*time.Hour))
	seed(alice.ID, 400, base.Add(3*time.Hour))

	out, err := env.uc.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, out, 3)

	//新しい順
	assert.Equal(t, int64(400), out[0].TotalPrice)
	assert.Equal(t, int64(300), out[1].TotalPrice)
	assert.Equal(t, int64(100), out[2].TotalPrice)

	for _, o := range out {
		require.NotNil(t, o.User)
		assert.Equal(t, alice.ID, o.User.ID)
	}
}

func TestListAll_ExpandsUserNameAndSortsDescending(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	alice := env.seedUser(t, "alice")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, total := range []int64{100, 200} {
		_, err := env.orders.Create(ctx, model.Order{
			ShippingAddress1: "x",
			Status:           model.OrderStatusPending,
			TotalPrice:       total,
			UserID:           alice.ID,
			DateOrdered:      base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	out, err := env.uc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, int64(200), out[0].TotalPrice)
	require.NotNil(t, out[0].User)
	assert.Equal(t, "alice", out[0].User.Name)
}

func TestDelete_NotFound(t *testing.T) {
	env := newOrderTestEnv(t)

	err := env.uc.Delete(context.Background(), 42)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestDelete_DoesNotCascadeToLineItems(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "alice")
	p := env.seedProduct(t, "p1", 1000)

	created, err := env.uc.Create(ctx, user.ID, shippingInput([]OrderItemInput{
		{ProductID: p.ID, Quantity: 1},
	}))
	require.NoError(t, err)

	require.NoError(t, env.uc.Delete(ctx, created.ID))

	_, err = env.uc.GetByID(ctx, created.ID)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	//明細は残る
	items, err := env.items.ListByOrderID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestGetByID_NotFound(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.uc.GetByID(context.Background(), 42)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
