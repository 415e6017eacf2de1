package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/kmazurek/capstone-shop/services/users/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

const listLimit = 100

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Limit(listLimit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
