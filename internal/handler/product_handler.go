package handler

import (
	"net/http"
	"strconv"
	"strings"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/upload"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

func isAdminFromContext(c echo.Context) bool {
	isAdmin, ok := c.Get(middleware.CtxIsAdminKey).(bool)
	return ok && isAdmin
}

// /products の公開＋管理API
type ProductHandler struct {
	uc      *usecase.ProductUsecase
	storage *upload.DiskStorage
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, storage *upload.DiskStorage) *ProductHandler {
	return &ProductHandler{uc: uc, storage: storage}
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	auth := middleware.AuthJWT(cfg)
	admin := middleware.AdminOnly()

	p := g.Group("/products")

	//閲覧は公開
	p.GET("", h.list)
	p.GET("/get/count", h.count, auth, admin)
	p.GET("/get/featured/:count", h.featured)
	p.GET("/:id", h.get)

	//変更は管理者のみ
	p.POST("", h.create, auth, admin)
	p.PUT("/gallery-images/:id", h.updateGallery, auth, admin)
	p.PUT("/:id", h.update, auth, admin)
	p.DELETE("/:id", h.delete, auth, admin)
}

func (h *ProductHandler) list(c echo.Context) error {
	//categories=1,2,3 で絞り込み
	var categoryIDs []int64
	if raw := c.QueryParam("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid categories"})
			}
			categoryIDs = append(categoryIDs, id)
		}
	}

	out, err := h.uc.List(c.Request().Context(), categoryIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) featured(c echo.Context) error {
	limit := 0
	if v := c.Param("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid count"})
		}
		limit = n
	}

	out, err := h.uc.ListFeatured(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) count(c echo.Context) error {
	total, err := h.uc.Count(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"productCount": total})
}

func (h *ProductHandler) create(c echo.Context) error {
	in, err := bindProductForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//画像は必須（multipartのimageフィールド）
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no image in the request"})
	}

	url, err := h.saveImage(file)
	if err != nil {
		return writeError(c, err)
	}
	in.Image = url

	out, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	in, err := bindProductForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//画像の差し替えは任意
	if file, ferr := c.FormFile("image"); ferr == nil {
		url, err := h.saveImage(file)
		if err != nil {
			return writeError(c, err)
		}
		in.Image = url
	}

	out, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) updateGallery(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	files := form.File["images"]
	if len(files) > 10 {
		files = files[:10]
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.saveImage(file)
		if err != nil {
			return writeError(c, err)
		}
		urls = append(urls, url)
	}

	out, err := h.uc.UpdateGallery(c.Request().Context(), id, urls)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "the product is deleted",
	})
}
