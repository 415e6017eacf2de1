package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kmazurek/capstone-shop/services/orders/internal/models"
	"github.com/kmazurek/capstone-shop/services/orders/internal/transport"
)

type GormRepo struct {
	DB *gorm.DB
}

// Products can be deleted after an order references them, so the
// product join is a LEFT JOIN and the projected columns are coalesced;
// the order itself must stay readable either way.
const detailSelect = "orders.id, orders.user_id, orders.product_id, orders.quantity, " +
	"orders.status, orders.total_price, orders.created_at, " +
	"users.name AS user_name, COALESCE(products.name, '') AS product_name"

const userOrderSelect = "orders.id, orders.user_id, orders.product_id, orders.quantity, " +
	"orders.status, orders.total_price, orders.created_at, " +
	"COALESCE(products.name, '') AS product_name, COALESCE(products.price, 0) AS product_price"

func (r *GormRepo) UserExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus is a single unconditional statement; a missing order
// shows up as zero affected rows, not as a separate existence check.
func (r *GormRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetOrderDetail(ctx context.Context, id uint) (*transport.OrderDetail, error) {
	var row transport.OrderDetail
	err := r.DB.WithContext(ctx).Table("orders").
		Select(detailSelect).
		Joins("JOIN users ON users.id = orders.user_id").
		Joins("LEFT JOIN products ON products.id = orders.product_id").
		Where("orders.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) ListOrderDetails(ctx context.Context) ([]transport.OrderDetail, error) {
	rows := make([]transport.OrderDetail, 0)
	err := r.DB.WithContext(ctx).Table("orders").
		Select(detailSelect).
		Joins("JOIN users ON users.id = orders.user_id").
		Joins("LEFT JOIN products ON products.id = orders.product_id").
		Order("orders.created_at DESC, orders.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) ListUserOrders(ctx context.Context, userID uint) ([]transport.UserOrder, error) {
	rows := make([]transport.UserOrder, 0)
	err := r.DB.WithContext(ctx).Table("orders").
		Select(userOrderSelect).
		Joins("LEFT JOIN products ON products.id = orders.product_id").
		Where("orders.user_id = ?", userID).
		Order("orders.created_at DESC, orders.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
