package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rivalscott04/wastebank-sub000/internal/auth"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"gorm.io/gorm"
)

var validate = validator.New()

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Role     model.Role
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	Get(ctx context.Context, p Principal, id uint64) (*model.User, error)
	List(ctx context.Context, p Principal, role string, limit, offset int) ([]model.User, int64, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. Public sign-up always yields a nasabah;
// admins are created by the seeder.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 120 {
		return nil, wrap(ErrValidation, "invalid name")
	}
	email := normalizeEmail(in.Email)
	if err := validate.Var(email, "required,email,max=191"); err != nil {
		return nil, wrap(ErrValidation, "invalid email")
	}
	if len(in.Password) < 8 {
		return nil, wrap(ErrValidation, "password must be at least 8 characters")
	}
	role := in.Role
	if role == "" {
		role = model.RoleNasabah
	}
	if !role.Valid() {
		return nil, wrap(ErrValidation, fmt.Sprintf("unknown role %q", in.Role))
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, wrap(ErrConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Rank:         model.RankFor(0),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, wrap(ErrConflict, "email already registered")
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, p Principal, id uint64) (*model.User, error) {
	if !p.owns(id) {
		return nil, ErrForbidden
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, p Principal, role string, limit, offset int) ([]model.User, int64, error) {
	if !p.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	r := model.Role(role)
	if role != "" && !r.Valid() {
		return nil, 0, wrap(ErrValidation, fmt.Sprintf("unknown role %q", role))
	}
	return s.repo.List(ctx, r, limit, offset)
}
