package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type productTestEnv struct {
	db *gorm.DB
	uc *ProductUsecase
}

func newProductTestEnv(t *testing.T) *productTestEnv {
	t.Helper()
	db := newTestDB(t)
	return &productTestEnv{
		db: db,
		uc: NewProductUsecase(infraRepo.NewProductGormRepository(db), infraRepo.NewCategoryGormRepository(db)),
	}
}

func (e *productTestEnv) seedCategory(t *testing.T, name string) model.Category {
	t.Helper()
	c := model.Category{Name: name}
	require.NoError(t, e.db.Create(&c).Error)
	return c
}

func TestProductCreate_InvalidCategory(t *testing.T) {
	env := newProductTestEnv(t)

	_, err := env.uc.Create(context.Background(), ProductInput{
		Name:       "widget",
		Price:      1000,
		CategoryID: 999,
		Image:      "http://img",
	})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid category", he.Message)
}

func TestProductCreate_RequiresImage(t *testing.T) {
	env := newProductTestEnv(t)
	c := env.seedCategory(t, "tools")

	_, err := env.uc.Create(context.Background(), ProductInput{
		Name:       "widget",
		Price:      1000,
		CategoryID: c.ID,
	})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestProductList_FiltersByCategories(t *testing.T) {
	env := newProductTestEnv(t)
	ctx := context.Background()

	tools := env.seedCategory(t, "tools")
	toys := env.seedCategory(t, "toys")

	for _, seed := range []struct {
		name string
		cat  int64
	}{
		{"hammer", tools.ID},
		{"saw", tools.ID},
		{"ball", toys.ID},
	} {
		_, err := env.uc.Create(ctx, ProductInput{
			Name:       seed.name,
			Price:      100,
			CategoryID: seed.cat,
			Image:      "http://img",
		})
		require.NoError(t, err)
	}

	all, err := env.uc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := env.uc.List(ctx, []int64{tools.ID})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, p := range filtered {
		assert.Equal(t, tools.ID, p.CategoryID)
		//カテゴリも展開される
		require.NotNil(t, p.Category)
		assert.Equal(t, "tools", p.Category.Name)
	}
}

func TestProductListFeatured_RespectsLimit(t *testing.T) {
	env := newProductTestEnv(t)
	ctx := context.Background()
	c := env.seedCategory(t, "tools")

	for i := 0; i < 3; i++ {
		_, err := env.uc.Create(ctx, ProductInput{
			Name:       "featured",
			Price:      100,
			CategoryID: c.ID,
			Image:      "http://img",
			IsFeatured: true,
		})
		require.NoError(t, err)
	}
	_, err := env.uc.Create(ctx, ProductInput{
		Name:       "plain",
		Price:      100,
		CategoryID: c.ID,
		Image:      "http://img",
	})
	require.NoError(t, err)

	out, err := env.uc.ListFeatured(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	//0は無制限
	out, err = env.uc.ListFeatured(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestProductUpdate_KeepsImageWhenEmpty(t *testing.T) {
	env := newProductTestEnv(t)
	ctx := context.Background()
	c := env.seedCategory(t, "tools")

	created, err := env.uc.Create(ctx, ProductInput{
		Name:       "widget",
		Price:      1000,
		CategoryID: c.ID,
		Image:      "http://img/original.png",
	})
	require.NoError(t, err)

	updated, err := env.uc.Update(ctx, created.ID, ProductInput{
		Name:       "widget v2",
		Price:      1200,
		CategoryID: c.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "widget v2", updated.Name)
	assert.Equal(t, int64(1200), updated.Price)
	assert.Equal(t, "http://img/original.png", updated.Image)
}

func TestProductCount_ZeroIsNotError(t *testing.T) {
	env := newProductTestEnv(t)

	count, err := env.uc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestProductDelete_NotFound(t *testing.T) {
	env := newProductTestEnv(t)

	err := env.uc.Delete(context.Background(), 42)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
