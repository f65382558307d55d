package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/shops-admin/internal/models"
	"github.com/mmeshcher/shops-admin/internal/repository"
	"github.com/mmeshcher/shops-admin/internal/validation"
)

const (
	DefaultPerPage = 25
	MaxPerPage     = 100
	DefaultPath    = "/shops"
)

var shopRules = validation.RuleSet[models.Shop]{
	{
		Name: "title",
		Rule: "required",
		Get:  func(s *models.Shop) string { return s.Title },
		Set:  func(s *models.Shop, v string) { s.Title = strings.TrimSpace(v) },
	},
	{
		Name: "url",
		Rule: "required",
		Get:  func(s *models.Shop) string { return s.URL },
		Set:  func(s *models.Shop, v string) { s.URL = strings.TrimSpace(v) },
	},
}

type ListParams struct {
	// Role is part of the list contract but shops carry no role, so it is
	// never applied.
	Role        string
	SearchQuery string
	PerPage     int
	Page        int
	Path        string
	LinksQuery  url.Values
}

type ShopService struct {
	repo   repository.ShopRepository
	logger *zap.Logger
}

func NewShopService(repo repository.ShopRepository, logger *zap.Logger) *ShopService {
	return &ShopService{
		repo:   repo,
		logger: logger,
	}
}

func (s *ShopService) GetByID(ctx context.Context, id int64) (models.ShopDto, error) {
	shop, err := s.find(ctx, id)
	if err != nil {
		return models.ShopDto{}, err
	}

	return models.NewShopDto(*shop), nil
}

func (s *ShopService) List(ctx context.Context, params ListParams) (models.PaginatedList[models.ShopDto], error) {
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	// keeps (page-1)*perPage inside int
	if page > math.MaxInt/perPage {
		page = math.MaxInt / perPage
	}

	path := params.Path
	if path == "" {
		path = DefaultPath
	}

	if params.Role != "" {
		s.logger.Debug("Role filter ignored for shops", zap.String("role", params.Role))
	}

	shops, total, err := s.repo.Find(ctx, repository.ListFilter{
		Search: params.SearchQuery,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		s.logger.Error("Failed to list shops", zap.Error(err))
		return models.PaginatedList[models.ShopDto]{}, fmt.Errorf("list shops: %w", err)
	}

	items := make([]models.ShopDto, 0, len(shops))
	for _, shop := range shops {
		items = append(items, models.NewShopDto(shop))
	}

	return models.NewPaginatedList(items, total, perPage, page, path, params.LinksQuery), nil
}

// GetTeamUserNames returns id to title for every shop. Shops have no role
// column, so there is no team restriction to apply.
func (s *ShopService) GetTeamUserNames(ctx context.Context) (map[int64]string, error) {
	titles, err := s.repo.Titles(ctx)
	if err != nil {
		s.logger.Error("Failed to load shop titles", zap.Error(err))
		return nil, fmt.Errorf("load shop titles: %w", err)
	}

	return titles, nil
}

func (s *ShopService) Create(ctx context.Context, title, shopURL string) (models.ShopDto, error) {
	shop := &models.Shop{}
	if err := shopRules.ValidateAndFill(shop, map[string]*string{
		"title": &title,
		"url":   &shopURL,
	}); err != nil {
		return models.ShopDto{}, err
	}

	if err := s.repo.Create(ctx, shop); err != nil {
		s.logger.Error("Failed to create shop", zap.String("title", shop.Title), zap.Error(err))
		return models.ShopDto{}, fmt.Errorf("%w: %w", ErrNotCreated, err)
	}

	s.logger.Info("Shop created", zap.Int64("id", shop.ID))
	return models.NewShopDto(*shop), nil
}

func (s *ShopService) Update(ctx context.Context, id int64, title, shopURL *string) (models.ShopDto, error) {
	shop, err := s.find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.ShopDto{}, err
		}
		return models.ShopDto{}, fmt.Errorf("%w: %w", ErrNotUpdated, err)
	}

	if err := shopRules.ValidateAndFill(shop, map[string]*string{
		"title": title,
		"url":   shopURL,
	}); err != nil {
		return models.ShopDto{}, err
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.ShopDto{}, ErrNotFound
		}
		s.logger.Error("Failed to update shop", zap.Int64("id", id), zap.Error(err))
		return models.ShopDto{}, fmt.Errorf("%w: %w", ErrNotUpdated, err)
	}

	s.logger.Info("Shop updated", zap.Int64("id", id))
	return models.NewShopDto(*shop), nil
}

func (s *ShopService) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrNotDeleted, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("Failed to delete shop", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNotDeleted, err)
	}

	s.logger.Info("Shop deleted", zap.Int64("id", id))
	return nil
}

func (s *ShopService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *ShopService) find(ctx context.Context, id int64) (*models.Shop, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to load shop", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("load shop %d: %w", id, err)
	}

	return shop, nil
}
