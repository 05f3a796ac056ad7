package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item model.OrderItem) (int64, error)
	FindByID(ctx context.Context, itemID int64) (model.OrderItem, error)

	// 保存済みの注文に明細を紐付ける
	AttachToOrder(ctx context.Context, orderID int64, itemIDs []int64) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
