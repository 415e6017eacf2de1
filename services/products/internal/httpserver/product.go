package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kmazurek/capstone-shop/pkg/events"
	"github.com/kmazurek/capstone-shop/pkg/logging"
	"github.com/kmazurek/capstone-shop/services/products/internal/service"
	"github.com/kmazurek/capstone-shop/services/products/internal/transport"
)

type ProductHTTP struct {
	Svc    *service.ProductService
	Events *events.Producer
}

func errJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, transport.ErrorResponse{Error: msg})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id not an integer", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_error", "status", 404, "reason", "product not found")
			return errJSON(c, http.StatusNotFound, "product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_products")

	products, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_products_error", "status", 400, "reason", "missing query")
		return errJSON(c, http.StatusBadRequest, "missing search query")
	}

	products, err := h.Svc.SearchProducts(ctx, q)
	if err != nil {
		l.Error("search_products_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "reason", "invalid payload", "error", err)
			return errJSON(c, http.StatusBadRequest, "invalid payload")
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, "product_created", product.ID, product)

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "id not an integer", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid product id")
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}

	product, err := h.Svc.UpdateProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_product_error", "status", 404, "reason", "product not found")
			return errJSON(c, http.StatusNotFound, "product not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_product_error", "status", 400, "reason", "invalid payload", "error", err)
			return errJSON(c, http.StatusBadRequest, "invalid payload")
		}
		l.Error("update_product_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, "product_updated", product.ID, product)

	l.Info("update_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "id not an integer", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_product_error", "status", 404, "reason", "product not found")
			return errJSON(c, http.StatusNotFound, "product not found")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	h.publish(c, "product_deleted", id, map[string]uint{"id": id})

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *ProductHTTP) publish(c echo.Context, eventType string, id uint, payload any) {
	ctx := c.Request().Context()
	if err := h.Events.Publish(ctx, eventType, strconv.FormatUint(uint64(id), 10), payload); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", eventType, "error", err)
	}
}
