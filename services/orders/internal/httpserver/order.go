package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kmazurek/capstone-shop/pkg/events"
	"github.com/kmazurek/capstone-shop/pkg/logging"
	"github.com/kmazurek/capstone-shop/services/orders/internal/service"
	"github.com/kmazurek/capstone-shop/services/orders/internal/transport"
)

type OrderHTTP struct {
	Svc    *service.OrderService
	Events *events.Producer
}

func errJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, transport.ErrorResponse{Error: msg})
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPayload), errors.Is(err, service.ErrInvalidQuantity):
			l.Warn("create_order_error", "status", 400, "reason", "validation", "error", err)
			return errJSON(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrProductNotFound):
			l.Warn("create_order_error", "status", 404, "reason", "unresolved reference", "error", err)
			return errJSON(c, http.StatusNotFound, err.Error())
		default:
			l.Error("create_order_error", "status", 500, "error", err)
			return errJSON(c, http.StatusInternalServerError, err.Error())
		}
	}

	h.publish(c, "order_created", order.ID, order)

	l.Info("create_order_success", "order_id", order.ID, "total_price", order.TotalPrice)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "id not an integer", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid order id")
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.Svc.UpdateStatus(ctx, id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			l.Warn("update_status_error", "status", 400, "reason", "invalid status", "error", err)
			return errJSON(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrOrderNotFound):
			l.Warn("update_status_error", "status", 404, "reason", "order not found")
			return errJSON(c, http.StatusNotFound, err.Error())
		default:
			l.Error("update_status_error", "status", 500, "error", err)
			return errJSON(c, http.StatusInternalServerError, err.Error())
		}
	}

	h.publish(c, "order_status_changed", id, map[string]any{"id": id, "status": req.Status})

	l.Info("update_status_success", "order_id", id, "new_status", req.Status)
	return c.JSON(http.StatusOK, transport.StatusUpdateResponse{
		Message: "order status updated",
		Status:  req.Status,
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "id not an integer", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid order id")
	}

	detail, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found")
			return errJSON(c, http.StatusNotFound, err.Error())
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, detail)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) ListUserOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_user_orders")

	userID, err := parseID(c, "user_id")
	if err != nil {
		l.Warn("list_user_orders_error", "status", 400, "reason", "user_id not an integer", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid user id")
	}

	orders, err := h.Svc.ListUserOrders(ctx, userID)
	if err != nil {
		l.Error("list_user_orders_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) publish(c echo.Context, eventType string, id uint, payload any) {
	ctx := c.Request().Context()
	if err := h.Events.Publish(ctx, eventType, strconv.FormatUint(uint64(id), 10), payload); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", eventType, "error", err)
	}
}
