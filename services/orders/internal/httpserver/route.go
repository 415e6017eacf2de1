package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	OrderHandler *OrderHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	orders := e.Group("/orders")
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/user/:user_id", d.OrderHandler.ListUserOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.PUT("/:id/status", d.OrderHandler.UpdateStatus)
}
