package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "app/internal/repository"
)

type CheckoutUsecase struct {
	productRepo repo.ProductRepository
	gateway     repo.PaymentGateway
}

// DI
func NewCheckoutUsecase(productRepo repo.ProductRepository, gateway repo.PaymentGateway) *CheckoutUsecase {
	return &CheckoutUsecase{
		productRepo: productRepo,
		gateway:     gateway,
	}
}

type CheckoutItemInput struct {
	ProductID int64 `json:"product"`
	Quantity  int64 `json:"quantity"`
}

type CheckoutOutput struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url,omitempty"`
}

// CreateSessionは(商品, 数量)の一覧から決済セッションを作る。
// プロバイダの失敗はそのまま呼び出し元へ伝える。
func (u *CheckoutUsecase) CreateSession(ctx context.Context, items []CheckoutItemInput) (CheckoutOutput, error) {
	if len(items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "order items required")
	}

	lineItems := make([]repo.CheckoutLineItem, 0, len(items))
	for _, it := range items {
		if it.ProductID <= 0 {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		if it.Quantity <= 0 {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}

		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product")
		}
		if err != nil {
			return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		lineItems = append(lineItems, repo.CheckoutLineItem{
			Name:       p.Name,
			UnitAmount: p.Price,
			Quantity:   it.Quantity,
		})
	}

	session, err := u.gateway.CreateSession(ctx, lineItems)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "payment session failed")
	}

	return CheckoutOutput{SessionID: session.ID, URL: session.URL}, nil
}
