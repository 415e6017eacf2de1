package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	UsersURL    string
	ProductsURL string
	OrdersURL   string
}

func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	hc := NewHealthChecker(map[string]string{
		"users":    d.UsersURL,
		"products": d.ProductsURL,
		"orders":   d.OrdersURL,
	})

	e.GET("/health", func(c echo.Context) error {
		statuses, allUp := hc.Check(c.Request().Context())
		code := http.StatusOK
		if !allUp {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, map[string]any{"services": statuses})
	})

	usersProxy, err := newProxy(d.UsersURL)
	if err != nil {
		return err
	}

	productsProxy, err := newProxy(d.ProductsURL)
	if err != nil {
		return err
	}

	ordersProxy, err := newProxy(d.OrdersURL)
	if err != nil {
		return err
	}

	e.Any("/users", usersProxy)
	e.Any("/users/*", usersProxy)
	e.Any("/products", productsProxy)
	e.Any("/products/*", productsProxy)
	e.Any("/orders", ordersProxy)
	e.Any("/orders/*", ordersProxy)

	return nil
}
