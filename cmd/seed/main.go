package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rivalscott04/wastebank-sub000/internal/config"
	"github.com/rivalscott04/wastebank-sub000/internal/db"
	"github.com/rivalscott04/wastebank-sub000/internal/model"
	"github.com/rivalscott04/wastebank-sub000/internal/repository"
	"github.com/rivalscott04/wastebank-sub000/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type seedFile struct {
	Admin      seedAdmin      `yaml:"admin"`
	Categories []seedCategory `yaml:"categories"`
	Rewards    []seedReward   `yaml:"rewards"`
}

type seedAdmin struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Phone    string `yaml:"phone"`
}

type seedCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	PricePerKg  string `yaml:"price_per_kg"`
	PointsPerKg *int64 `yaml:"points_per_kg"`
}

type seedReward struct {
	Name           string     `yaml:"name"`
	Description    string     `yaml:"description"`
	PointsRequired int64      `yaml:"points_required"`
	Stock          int64      `yaml:"stock"`
	ExpiryDate     *time.Time `yaml:"expiry_date"`
}

func main() {
	path := flag.String("file", "cmd/seed/seed.yaml", "seed fixture file")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(*path); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func loadSeed(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if pw := os.Getenv("SEED_ADMIN_PASSWORD"); pw != "" {
		f.Admin.Password = pw
	}
	return &f, nil
}

func run(path string) error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	f, err := loadSeed(path)
	if err != nil {
		return err
	}

	store := repository.NewStore(gdb)
	if err := seedAdminUser(ctx, store, f.Admin); err != nil {
		return err
	}
	// Existing rows are matched by name so reruns only add what is missing.
	return store.Transaction(ctx, func(tx *repository.Store) error {
		for _, sc := range f.Categories {
			if err := seedCategoryRow(ctx, tx, sc); err != nil {
				return err
			}
		}
		for _, sr := range f.Rewards {
			if err := seedRewardRow(ctx, tx, sr); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedAdminUser(ctx context.Context, store *repository.Store, a seedAdmin) error {
	if a.Email == "" {
		return nil
	}
	users := service.NewUserService(store.Users)
	_, err := users.Register(ctx, service.RegisterInput{
		Name:     a.Name,
		Email:    a.Email,
		Password: a.Password,
		Phone:    a.Phone,
		Role:     model.RoleAdmin,
	})
	if errors.Is(err, service.ErrConflict) {
		zap.L().Info("admin already present", zap.String("email", a.Email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	zap.L().Info("admin created", zap.String("email", a.Email))
	return nil
}

func seedCategoryRow(ctx context.Context, tx *repository.Store, sc seedCategory) error {
	var existing model.WasteCategory
	err := tx.DB().WithContext(ctx).Where("name = ? AND is_deleted = ?", sc.Name, false).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup category %q: %w", sc.Name, err)
	}
	cat := &model.WasteCategory{
		Name:        sc.Name,
		Description: sc.Description,
		PointsPerKg: sc.PointsPerKg,
	}
	if sc.PricePerKg != "" {
		price, err := decimal.NewFromString(sc.PricePerKg)
		if err != nil {
			return fmt.Errorf("category %q price: %w", sc.Name, err)
		}
		cat.PricePerKg = decimal.NewNullDecimal(price)
	}
	if err := tx.Categories.Create(ctx, cat); err != nil {
		return fmt.Errorf("create category %q: %w", sc.Name, err)
	}
	zap.L().Info("category created", zap.String("name", sc.Name), zap.Uint64("id", cat.ID))
	return nil
}

func seedRewardRow(ctx context.Context, tx *repository.Store, sr seedReward) error {
	var existing model.Reward
	err := tx.DB().WithContext(ctx).Where("name = ?", sr.Name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup reward %q: %w", sr.Name, err)
	}
	r := &model.Reward{
		Name:           sr.Name,
		Description:    sr.Description,
		PointsRequired: sr.PointsRequired,
		Stock:          sr.Stock,
		IsActive:       true,
		ExpiryDate:     sr.ExpiryDate,
	}
	if err := tx.Rewards.Create(ctx, r); err != nil {
		return fmt.Errorf("create reward %q: %w", sr.Name, err)
	}
	zap.L().Info("reward created", zap.String("name", sr.Name), zap.Uint64("id", r.ID))
	return nil
}
