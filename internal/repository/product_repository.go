package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// categoryIDsが空なら全件。Categoryを展開して返す。
	List(ctx context.Context, categoryIDs []int64) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	UpdateImages(ctx context.Context, id int64, images []string) error
	Delete(ctx context.Context, id int64) error

	// 0件は正常値（エラーではない）
	Count(ctx context.Context) (int64, error)
}
