package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/sync/errgroup"
)

type OrderUsecase struct {
	orderRepo   repo.OrderRepository
	itemRepo    repo.OrderItemRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
}

// DI
func NewOrderUsecase(
	orderRepo repo.OrderRepository,
	itemRepo repo.OrderItemRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

//1明細あたりの数量の上限
const maxOrderItemQuantity = 10000

type OrderItemInput struct {
	ProductID int64 `json:"product"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderInput struct {
	Items            []OrderItemInput
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           string
}

type ProductOutput struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    int64           `json:"price"`
	Category *model.Category `json:"category,omitempty"`
}

type OrderItemOutput struct {
	ID        int64          `json:"id"`
	ProductID int64          `json:"product_id"`
	Quantity  int64          `json:"quantity"`
	Product   *ProductOutput `json:"product,omitempty"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type OrderOutput struct {
	ID               int64             `json:"id"`
	OrderItems       []OrderItemOutput `json:"order_items"`
	User             *UserRef          `json:"user,omitempty"`
	ShippingAddress1 string            `json:"shipping_address1"`
	ShippingAddress2 string            `json:"shipping_address2"`
	City             string            `json:"city"`
	Zip              string            `json:"zip"`
	Country          string            `json:"country"`
	Phone            string            `json:"phone"`
	Status           string            `json:"status"`
	TotalPrice       int64             `json:"total_price"`
	DateOrdered      time.Time         `json:"date_ordered"`
}

// Createは注文の組み立て全体。
// 明細の作成と価格解決は明細ごとに独立なので並行で行い、
// 全件そろってから合計する（fan-out/fan-in）。
func (u *OrderUsecase) Create(ctx context.Context, userID int64, in CreateOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order items required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		if it.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}
		if it.Quantity > maxOrderItemQuantity {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity too large")
		}
	}

	//明細を並行で作成
	itemIDs := make([]int64, len(in.Items))
	g, gctx := errgroup.WithContext(ctx)
	for i, it := range in.Items {
		i, it := i, it
		g.Go(func() error {
			id, err := u.itemRepo.Create(gctx, model.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			itemIDs[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return OrderOutput{}, err
	}

	//作成済みの明細ごとに、商品の現在価格を並行で解決する。
	//商品が消えていたら注文全体を中止。
	subtotals := make([]int64, len(itemIDs))
	g, gctx = errgroup.WithContext(ctx)
	for i, itemID := range itemIDs {
		i, itemID := i, itemID
		g.Go(func() error {
			item, err := u.itemRepo.FindByID(gctx, itemID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			p, err := u.productRepo.FindByID(gctx, item.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "invalid product")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			subtotals[i] = p.Price * item.Quantity
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return OrderOutput{}, err
	}

	//合計は全明細がそろってからの純粋な畳み込み
	var total int64
	for _, s := range subtotals {
		total += s
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = model.OrderStatusPending
	}

	orderID, err := u.orderRepo.Create(ctx, model.Order{
		ShippingAddress1: in.ShippingAddress1,
		ShippingAddress2: in.ShippingAddress2,
		City:             in.City,
		Zip:              in.Zip,
		Country:          in.Country,
		Phone:            in.Phone,
		Status:           status,
		TotalPrice:       total,
		UserID:           userID,
		DateOrdered:      time.Now(),
	})
	if err != nil {
		//作成済みの明細はそのまま残る（補償はしない）
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "the order cannot be created")
	}

	if err := u.itemRepo.AttachToOrder(ctx, orderID, itemIDs); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetByID(ctx, orderID)
}

// GetByIDは注文を取得し、ユーザー名と明細（商品・カテゴリ込み）を展開する。
func (u *OrderUsecase) GetByID(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := toOrderOutput(o)

	//ユーザーは表示名だけ
	if usr, err := u.userRepo.FindByID(ctx, o.UserID); err == nil && usr != nil {
		out.User = &UserRef{ID: usr.ID, Name: usr.Name}
	}

	items, err := u.expandItems(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, err
	}
	out.OrderItems = items

	return out, nil
}

// ListAllは全注文。ユーザーは表示名だけ展開し、明細は参照のまま返す。
func (u *OrderUsecase) ListAll(ctx context.Context) ([]OrderOutput, error) {
	orders, err := u.orderRepo.ListAll(ctx)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out := toOrderOutput(o)

		if usr, err := u.userRepo.FindByID(ctx, o.UserID); err == nil && usr != nil {
			out.User = &UserRef{ID: usr.ID, Name: usr.Name}
		}

		items, err := u.itemRepo.ListByOrderID(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		for _, it := range items {
			out.OrderItems = append(out.OrderItems, OrderItemOutput{
				ID:        it.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			})
		}

		outs = append(outs, out)
	}
	return outs, nil
}

// ListByUserは1ユーザーの注文を、明細（商品・カテゴリ込み）を展開して返す。
func (u *OrderUsecase) ListByUser(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out := toOrderOutput(o)
		out.User = &UserRef{ID: o.UserID}

		items, err := u.expandItems(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, err
		}
		out.OrderItems = items

		outs = append(outs, out)
	}
	return outs, nil
}

// UpdateStatusはstatusだけを差し替えて、更新後の注文を返す。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(status) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "status required")
	}

	err := u.orderRepo.UpdateStatus(ctx, orderID, strings.TrimSpace(status))
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "the order cannot be updated")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetByID(ctx, orderID)
}

// Deleteは注文本体だけ消す。明細は残る（カスケードしない）。
func (u *OrderUsecase) Delete(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.orderRepo.Delete(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "the order cannot be deleted")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// TotalSalesは全注文のtotal_priceの合計。0件なら0。
func (u *OrderUsecase) TotalSales(ctx context.Context) (int64, error) {
	total, err := u.orderRepo.SumTotalPrice(ctx)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return total, nil
}

// Countは注文件数。0件なら0（エラーではない）。
func (u *OrderUsecase) Count(ctx context.Context) (int64, error) {
	total, err := u.orderRepo.Count(ctx)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return total, nil
}

// 明細→商品→カテゴリまで展開する
func (u *OrderUsecase) expandItems(ctx context.Context, orderID int64) ([]OrderItemOutput, error) {
	items, err := u.itemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		out := OrderItemOutput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}

		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err == nil {
			out.Product = &ProductOutput{
				ID:       p.ID,
				Name:     p.Name,
				Price:    p.Price,
				Category: p.Category,
			}
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = append(outs, out)
	}
	return outs, nil
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:               o.ID,
		OrderItems:       []OrderItemOutput{},
		ShippingAddress1: o.ShippingAddress1,
		ShippingAddress2: o.ShippingAddress2,
		City:             o.City,
		Zip:              o.Zip,
		Country:          o.Country,
		Phone:            o.Phone,
		Status:           o.Status,
		TotalPrice:       o.TotalPrice,
		DateOrdered:      o.DateOrdered,
	}
}
