package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmeshcher/shops-admin/internal/models"
)

// MemoryRepository keeps shops in process memory. It is used when no
// database is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	data   map[int64]models.Shop
	nextID int64
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data:   make(map[int64]models.Shop),
		nextID: 1,
		now:    time.Now,
	}
}

func (m *MemoryRepository) FindByID(_ context.Context, id int64) (*models.Shop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shop, exists := m.data[id]
	if !exists {
		return nil, ErrNotFound
	}

	return &shop, nil
}

func (m *MemoryRepository) Find(_ context.Context, filter ListFilter) ([]models.Shop, int, error) {
	if filter.Offset < 0 {
		return nil, 0, ErrNegativeOffset
	}

	m.mu.RLock()
	matched := make([]models.Shop, 0, len(m.data))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, shop := range m.data {
		if search != "" && !strings.Contains(strings.ToLower(shop.Title), search) {
			continue
		}
		matched = append(matched, shop)
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if filter.Offset >= total {
		return []models.Shop{}, total, nil
	}

	end := total
	if filter.Limit > 0 && filter.Offset+filter.Limit < total {
		end = filter.Offset + filter.Limit
	}

	return matched[filter.Offset:end], total, nil
}

func (m *MemoryRepository) Titles(_ context.Context) (map[int64]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	titles := make(map[int64]string, len(m.data))
	for id, shop := range m.data {
		titles[id] = shop.Title
	}

	return titles, nil
}

func (m *MemoryRepository) Create(_ context.Context, shop *models.Shop) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	shop.ID = m.nextID
	shop.CreatedAt = now
	shop.UpdatedAt = now
	m.nextID++

	m.data[shop.ID] = *shop
	return nil
}

func (m *MemoryRepository) Update(_ context.Context, shop *models.Shop) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, exists := m.data[shop.ID]
	if !exists {
		return ErrNotFound
	}

	shop.CreatedAt = stored.CreatedAt
	shop.UpdatedAt = m.now()
	m.data[shop.ID] = *shop
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[id]; !exists {
		return ErrNotFound
	}

	delete(m.data, id)
	return nil
}

func (m *MemoryRepository) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryRepository) Close() error {
	return nil
}
