package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"app/internal/upload"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// multipartフォームからProductInputを組み立てる（画像は別扱い）
func bindProductForm(c echo.Context) (usecase.ProductInput, error) {
	price, err := formInt64(c, "price")
	if err != nil {
		return usecase.ProductInput{}, err
	}
	categoryID, err := formInt64(c, "category")
	if err != nil {
		return usecase.ProductInput{}, err
	}
	countInStock, err := formInt64(c, "count_in_stock")
	if err != nil {
		return usecase.ProductInput{}, err
	}
	numReviews, err := formInt64(c, "num_reviews")
	if err != nil {
		return usecase.ProductInput{}, err
	}

	rating := 0.0
	if v := c.FormValue("rating"); v != "" {
		rating, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return usecase.ProductInput{}, err
		}
	}

	isFeatured := false
	if v := c.FormValue("is_featured"); v != "" {
		isFeatured, err = strconv.ParseBool(v)
		if err != nil {
			return usecase.ProductInput{}, err
		}
	}

	return usecase.ProductInput{
		Name:            c.FormValue("name"),
		Description:     c.FormValue("description"),
		RichDescription: c.FormValue("rich_description"),
		Brand:           c.FormValue("brand"),
		Price:           price,
		CategoryID:      categoryID,
		CountInStock:    countInStock,
		Rating:          rating,
		NumReviews:      numReviews,
		IsFeatured:      isFeatured,
	}, nil
}

func formInt64(c echo.Context, key string) (int64, error) {
	v := c.FormValue(key)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// アップロードを保存して公開URLを返す。画像タイプ不正は400。
func (h *ProductHandler) saveImage(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", usecase.NewHTTPError(http.StatusBadRequest, "invalid image")
	}
	defer src.Close()

	url, err := h.storage.Save(fh.Filename, fh.Header.Get("Content-Type"), src)
	if errors.Is(err, upload.ErrInvalidImageType) {
		return "", usecase.NewHTTPError(http.StatusBadRequest, "invalid image type")
	}
	if err != nil {
		return "", usecase.NewHTTPError(http.StatusInternalServerError, "cannot save image")
	}
	return url, nil
}
