package category

import (
	"context"

	"jobcore/backend/internal/apperr"
	"jobcore/backend/internal/models"
	"jobcore/backend/internal/storage"
)

type Service struct {
	storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{storage: s}
}

func (s *Service) Create(ctx context.Context, name, description string) (*models.Category, error) {
	if name == "" {
		return nil, apperr.New(apperr.CodeValidation, "category name is required")
	}
	c := &models.Category{Name: name, Description: description}
	if err := s.storage.SaveCategory(ctx, c); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create category", err)
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.storage.GetCategoryByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	return s.storage.ListCategories(ctx)
}
