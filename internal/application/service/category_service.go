package service

import (
	"context"
	"strings"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput represents the create and update category input
type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// ListCategories lists all categories
func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "is required"}})
	}
	return s.categoryRepo.Create(ctx, &repository.CategoryInput{
		Name:        trimmed(input.Name),
		Description: input.Description,
		IsActive:    input.IsActive,
	})
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input *CategoryInput) (*entity.Category, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "cannot be empty"}})
	}
	return s.categoryRepo.Update(ctx, id, &repository.CategoryInput{
		Name:        trimmed(input.Name),
		Description: input.Description,
		IsActive:    input.IsActive,
	})
}

// DeleteCategory deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.categoryRepo.Delete(ctx, id)
}
