package memory

import (
	"context"
	"fmt"
	"sync"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
)

type rentalRepository struct {
	mu      sync.RWMutex
	rentals table[string, *domain.Rental]
}

func NewRentalRepository() repository.RentalRepository {
	return &rentalRepository{rentals: newTable[string, *domain.Rental]()}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	logger.StoreCall("rentals.create", rt.ID, "item_id", rt.ItemID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rentals.rows[rt.ID]; ok {
		err := fmt.Errorf("rental %s already exists", rt.ID)
		logger.StoreResult("rentals.create", err)
		return err
	}
	r.rentals.put(rt.ID, rt.Clone())
	logger.StoreResult("rentals.create", nil)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.rentals.rows[id]
	if !ok {
		return nil, fmt.Errorf("rental %s: %w", id, domain.ErrRentalNotFound)
	}
	return rt.Clone(), nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	logger.StoreCall("rentals.update", rt.ID, "status", rt.Status)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rentals.rows[rt.ID]; !ok {
		err := fmt.Errorf("rental %s: %w", rt.ID, domain.ErrRentalNotFound)
		logger.StoreResult("rentals.update", err)
		return err
	}
	r.rentals.put(rt.ID, rt.Clone())
	logger.StoreResult("rentals.update", nil)
	return nil
}

// Delete removes a rental record. The ledger uses it to undo a failed Create.
func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rentals.rows[id]; !ok {
		return fmt.Errorf("rental %s: %w", id, domain.ErrRentalNotFound)
	}
	r.rentals.remove(id)
	return nil
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	return r.filter(func(*domain.Rental) bool { return true }), nil
}

func (r *rentalRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.Rental, error) {
	return r.filter(func(rt *domain.Rental) bool { return rt.MemberID == memberID }), nil
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return r.filter(func(rt *domain.Rental) bool { return rt.Status == status }), nil
}

func (r *rentalRepository) filter(keep func(*domain.Rental) bool) []domain.Rental {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Rental{}
	r.rentals.each(func(rt *domain.Rental) {
		if keep(rt) {
			out = append(out, *rt.Clone())
		}
	})
	return out
}
