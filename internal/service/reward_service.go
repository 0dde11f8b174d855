package service

import (
	"context"
	"strings"
	"time"

	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
)

type RewardInput struct {
	Name           string
	Description    string
	PointsRequired int64
	Stock          int64
	IsActive       *bool
	ExpiryDate     *time.Time
}

type RewardService interface {
	Create(ctx context.Context, p Principal, in RewardInput) (*model.Reward, error)
	Get(ctx context.Context, p Principal, id uint64) (*model.Reward, error)
	List(ctx context.Context, p Principal) ([]model.Reward, error)
	Update(ctx context.Context, p Principal, id uint64, in RewardInput) (*model.Reward, error)
}

type rewardService struct {
	repo repository.RewardRepository
}

func NewRewardService(repo repository.RewardRepository) RewardService {
	return &rewardService{repo: repo}
}

func (in *RewardInput) apply(r *model.Reward) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 120 {
		return wrap(ErrValidation, "invalid name")
	}
	if in.PointsRequired <= 0 {
		return wrap(ErrValidation, "points_required must be positive")
	}
	if in.Stock < 0 {
		return wrap(ErrValidation, "stock must not be negative")
	}
	r.Name = name
	r.Description = strings.TrimSpace(in.Description)
	r.PointsRequired = in.PointsRequired
	r.Stock = in.Stock
	r.ExpiryDate = in.ExpiryDate
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	return nil
}

func (s *rewardService) Create(ctx context.Context, p Principal, in RewardInput) (*model.Reward, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	r := &model.Reward{IsActive: true}
	if err := in.apply(r); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *rewardService) Get(ctx context.Context, p Principal, id uint64) (*model.Reward, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "reward not found")
	}
	if !r.IsActive && !p.IsAdmin() {
		return nil, wrap(ErrNotFound, "reward not found")
	}
	return r, nil
}

// List shows customers the active catalog only; admins see everything.
func (s *rewardService) List(ctx context.Context, p Principal) ([]model.Reward, error) {
	return s.repo.List(ctx, !p.IsAdmin())
}

func (s *rewardService) Update(ctx context.Context, p Principal, id uint64, in RewardInput) (*model.Reward, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "reward not found")
	}
	if err := in.apply(r); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
