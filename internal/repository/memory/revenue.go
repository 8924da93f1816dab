package memory

import (
	"context"
	"sync"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/repository"
)

type revenueRepository struct {
	mu      sync.RWMutex
	entries []domain.RevenueEntry
}

func NewRevenueRepository() repository.RevenueRepository {
	return &revenueRepository{}
}

func (r *revenueRepository) Append(ctx context.Context, entry *domain.RevenueEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *revenueRepository) List(ctx context.Context) ([]domain.RevenueEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.RevenueEntry{}, r.entries...), nil
}

func (r *revenueRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}
