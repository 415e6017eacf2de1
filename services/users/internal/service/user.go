package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmazurek/capstone-shop/services/users/internal/models"
	"github.com/kmazurek/capstone-shop/services/users/internal/repo"
	"github.com/kmazurek/capstone-shop/services/users/internal/transport"
)

var ErrValidation = errors.New("invalid payload") // 400

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Email == nil || *req.Email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}

	user := &models.User{
		Name:  *req.Name,
		Email: *req.Email,
	}

	return s.Repo.CreateUser(ctx, user)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.Repo.GetUser(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}
