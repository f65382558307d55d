package repository

import (
	"context"
	"errors"

	"github.com/mmeshcher/shops-admin/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrNegativeOffset = errors.New("negative offset")
)

type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

// ShopRepository owns persisted shop rows. Lists are ordered by id.
type ShopRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Shop, error)
	Find(ctx context.Context, filter ListFilter) ([]models.Shop, int, error)
	Titles(ctx context.Context) (map[int64]string, error)
	Create(ctx context.Context, shop *models.Shop) error
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}
