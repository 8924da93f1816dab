package memory

import (
	"context"
	"fmt"
	"sync"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
)

type itemRepository struct {
	mu    sync.RWMutex
	items table[string, *domain.Item]
}

func NewItemRepository() repository.ItemRepository {
	return &itemRepository{items: newTable[string, *domain.Item]()}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	logger.StoreCall("items.create", item.ID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items.rows[item.ID]; ok {
		err := fmt.Errorf("item %s already exists", item.ID)
		logger.StoreResult("items.create", err)
		return err
	}
	r.items.put(item.ID, item.Clone())
	logger.StoreResult("items.create", nil)
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items.rows[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrItemNotFound)
	}
	return item.Clone(), nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	logger.StoreCall("items.update", item.ID, "status", item.Status)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items.rows[item.ID]; !ok {
		err := fmt.Errorf("item %s: %w", item.ID, domain.ErrItemNotFound)
		logger.StoreResult("items.update", err)
		return err
	}
	r.items.put(item.ID, item.Clone())
	logger.StoreResult("items.update", nil)
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items.rows[id]; !ok {
		return fmt.Errorf("item %s: %w", id, domain.ErrItemNotFound)
	}
	r.items.remove(id)
	return nil
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Item, 0, len(r.items.order))
	r.items.each(func(i *domain.Item) {
		out = append(out, *i.Clone())
	})
	return out, nil
}
