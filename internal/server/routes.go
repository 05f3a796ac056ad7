package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	api := e.Group("/api/v1")

	h.Products.RegisterRoutes(api, cfg)
	h.Categories.RegisterRoutes(api, cfg)
	h.Users.RegisterRoutes(api, cfg)
	h.Orders.RegisterRoutes(api, cfg)
	h.Checkout.RegisterRoutes(api, cfg)
}
