package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/kmazurek/capstone-shop/services/orders/internal/models"
	"github.com/kmazurek/capstone-shop/services/orders/internal/repo"
	"github.com/kmazurek/capstone-shop/services/orders/internal/transport"
)

var (
	ErrInvalidPayload  = errors.New("invalid payload")   // 400
	ErrInvalidQuantity = errors.New("invalid quantity")  // 400
	ErrInvalidStatus   = errors.New("invalid status")    // 400
	ErrUserNotFound    = errors.New("User not found")    // 404
	ErrProductNotFound = errors.New("Product not found") // 404
	ErrOrderNotFound   = errors.New("Order not found")   // 404
)

type OrderService struct {
	Repo *repo.GormRepo
}

// CreateOrder validates the request, snapshots the price and persists
// the order. The reference checks and the insert run as separate
// statements, outside a transaction; status updates are a single
// statement, so only creation has this window.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.UserID == nil || req.ProductID == nil {
		return nil, fmt.Errorf("%w: user_id and product_id are required", ErrInvalidPayload)
	}

	quantity := 1
	if req.Quantity != nil {
		// The upper bound keeps the float-to-int conversion below from
		// overflowing on any platform.
		if *req.Quantity != math.Trunc(*req.Quantity) || *req.Quantity < 1 || *req.Quantity > math.MaxInt32 {
			return nil, fmt.Errorf("%w: quantity must be an integer >= 1", ErrInvalidQuantity)
		}
		quantity = int(*req.Quantity)
	}

	exists, err := s.Repo.UserExists(ctx, *req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	product, err := s.Repo.GetProduct(ctx, *req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	order := &models.Order{
		UserID:     *req.UserID,
		ProductID:  *req.ProductID,
		Quantity:   quantity,
		Status:     models.StatusCreated,
		TotalPrice: product.Price * float64(quantity),
	}

	return s.Repo.CreateOrder(ctx, order)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: must be one of %s", ErrInvalidStatus, strings.Join(models.Statuses, ", "))
	}

	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*transport.OrderDetail, error) {
	detail, err := s.Repo.GetOrderDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return detail, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]transport.OrderDetail, error) {
	return s.Repo.ListOrderDetails(ctx)
}

// ListUserOrders returns an empty slice, never an error, for a user
// with no orders.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]transport.UserOrder, error) {
	return s.Repo.ListUserOrders(ctx, userID)
}
