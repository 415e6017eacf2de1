package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmazurek/capstone-shop/pkg/logging"
	"github.com/kmazurek/capstone-shop/services/products/internal/models"
	"github.com/kmazurek/capstone-shop/services/products/internal/repo"
	"github.com/kmazurek/capstone-shop/services/products/internal/search"
	"github.com/kmazurek/capstone-shop/services/products/internal/transport"
)

var ErrValidation = errors.New("invalid payload") // 400

const searchLimit = 50

type ProductService struct {
	Repo   *repo.GormRepo
	Search *search.Client // nil when ES is not configured
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price == nil {
		return nil, fmt.Errorf("%w: price required", ErrValidation)
	}
	if *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	prod := &models.Product{
		Name:  *req.Name,
		Price: *req.Price,
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}

	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, created)
	return created, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *ProductService) UpdateProduct(ctx context.Context, req transport.UpdateProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	updated, err := s.Repo.UpdateProduct(ctx, req, id)
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, updated)
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	if s.Search != nil {
		if err := s.Search.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_deindex_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *ProductService) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	if s.Search != nil {
		return s.Search.Search(ctx, q, searchLimit)
	}
	return s.Repo.SearchProducts(ctx, q, searchLimit)
}

// Index errors never fail the write; the store row is the source of truth.
func (s *ProductService) reindex(ctx context.Context, prod *models.Product) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "product_id", prod.ID, "error", err)
	}
}
