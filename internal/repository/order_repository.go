package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// 新しい注文から順（date_ordered desc）
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	// statusだけを更新する。対象なしはErrNotFound。
	UpdateStatus(ctx context.Context, orderID int64, status string) error
	Delete(ctx context.Context, orderID int64) error

	// どちらも0件は0を返す（エラーと区別する）
	SumTotalPrice(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}
