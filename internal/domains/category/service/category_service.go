package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/category"
)

type categoryService struct {
	repo  category.Repository
	books category.BookIndex
}

func NewCategoryService(repo category.Repository, books category.BookIndex) category.Service {
	return &categoryService{
		repo:  repo,
		books: books,
	}
}

func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &category.Category{Name: req.Name})
}

func (s *categoryService) GetAll(ctx context.Context) ([]category.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *category.UpdateCategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.UpdateName(ctx, id, req.Name)
}

// Delete cascades first, deletes second: the category id is pulled from every
// referencing book's categories list, then the category row is removed. The
// steps are not atomic; see the concurrency notes in the service contract.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if _, err := s.books.RemoveCategory(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
