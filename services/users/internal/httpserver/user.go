package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kmazurek/capstone-shop/pkg/logging"
	"github.com/kmazurek/capstone-shop/services/users/internal/service"
	"github.com/kmazurek/capstone-shop/services/users/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func errJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, transport.ErrorResponse{Error: msg})
}

func (h *UserHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create_user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}

	user, err := h.Svc.CreateUser(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_user_error", "status", 400, "reason", "invalid payload", "error", err)
			return errJSON(c, http.StatusBadRequest, "invalid payload")
		}
		l.Error("create_user_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_user")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("get_user_error", "status", 400, "reason", "id not an integer", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid user id")
	}

	user, err := h.Svc.GetUser(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_user_error", "status", 404, "reason", "user not found")
			return errJSON(c, http.StatusNotFound, "user not found")
		}
		l.Error("get_user_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list_users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		l.Error("list_users_error", "status", 500, "error", err)
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, users)
}
