package server

import (
	"log/slog"
	"time"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/logging"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Users      *handler.UserHandler
	Orders     *handler.OrderHandler
	Checkout   *handler.CheckoutHandler
}

func New(cfg config.Config, logger *slog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(logging.RequestLogger(logger))
	//クライアントがリクエストを開きっぱなしにしても打ち切る
	e.Use(echomw.ContextTimeout(30 * time.Second))

	//アップロード画像の配信
	e.Static("/public/uploads", cfg.UploadDir)

	RegisterRoutes(e, cfg, h)

	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	return e.Start(":" + cfg.Port)
}
