package service

import (
	"context"
	"strings"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"github.com/shopspring/decimal"
)

type CategoryInput struct {
	Name        string
	Description string
	PricePerKg  *decimal.Decimal
	PointsPerKg *int64
}

type CategoryService interface {
	Create(ctx context.Context, p Principal, in CategoryInput) (*model.WasteCategory, error)
	Get(ctx context.Context, id uint64) (*model.WasteCategory, error)
	List(ctx context.Context) ([]model.WasteCategory, error)
	Update(ctx context.Context, p Principal, id uint64, in CategoryInput) (*model.WasteCategory, error)
	Delete(ctx context.Context, p Principal, id uint64) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (in *CategoryInput) apply(c *model.WasteCategory) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 120 {
		return wrap(ErrValidation, "invalid name")
	}
	if in.PricePerKg != nil && in.PricePerKg.IsNegative() {
		return wrap(ErrValidation, "price_per_kg must not be negative")
	}
	if in.PointsPerKg != nil && *in.PointsPerKg < 0 {
		return wrap(ErrValidation, "points_per_kg must not be negative")
	}
	c.Name = name
	c.Description = strings.TrimSpace(in.Description)
	c.PricePerKg = decimal.NullDecimal{}
	if in.PricePerKg != nil {
		c.PricePerKg = decimal.NewNullDecimal(in.PricePerKg.Round(2))
	}
	c.PointsPerKg = in.PointsPerKg
	return nil
}

func (s *categoryService) Create(ctx context.Context, p Principal, in CategoryInput) (*model.WasteCategory, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	c := &model.WasteCategory{}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Get(ctx context.Context, id uint64) (*model.WasteCategory, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category not found")
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.WasteCategory, error) {
	return s.repo.List(ctx)
}

// Update changes the rates used by future pricing. Past transactions keep
// the rates stored on their items.
func (s *categoryService) Update(ctx context.Context, p Principal, id uint64, in CategoryInput) (*model.WasteCategory, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category not found")
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, p Principal, id uint64) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return notFound(err, "category not found")
	}
	return nil
}
