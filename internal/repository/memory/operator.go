package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/repository"
)

// operatorRepository keys accounts by lower-cased username
type operatorRepository struct {
	mu        sync.RWMutex
	operators table[string, domain.Operator]
}

func NewOperatorRepository() repository.OperatorRepository {
	return &operatorRepository{operators: newTable[string, domain.Operator]()}
}

func (r *operatorRepository) Create(ctx context.Context, op *domain.Operator) error {
	key := strings.ToLower(op.Username)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.operators.rows[key]; ok {
		return fmt.Errorf("operator %s: %w", op.Username, domain.ErrOperatorExists)
	}
	r.operators.put(key, *op)
	return nil
}

func (r *operatorRepository) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.operators.rows[strings.ToLower(username)]
	if !ok {
		return nil, fmt.Errorf("operator %s not found", username)
	}
	return &op, nil
}

func (r *operatorRepository) List(ctx context.Context) ([]domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Operator, 0, len(r.operators.order))
	r.operators.each(func(op domain.Operator) {
		out = append(out, op)
	})
	return out, nil
}
