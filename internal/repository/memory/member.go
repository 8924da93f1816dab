package memory

import (
	"context"
	"fmt"
	"sync"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
)

type memberRepository struct {
	mu      sync.RWMutex
	members table[int32, *domain.Member]
}

func NewMemberRepository() repository.MemberRepository {
	return &memberRepository{members: newTable[int32, *domain.Member]()}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members.rows[member.ID]; ok {
		return fmt.Errorf("member %d already exists", member.ID)
	}
	r.members.put(member.ID, member.Clone())
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members.rows[id]
	if !ok {
		return nil, fmt.Errorf("member %d: %w", id, domain.ErrMemberNotFound)
	}
	return m.Clone(), nil
}

// Update replaces the member's profile fields. History is kept as stored so
// it can only grow through AppendHistory.
func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.members.rows[member.ID]
	if !ok {
		return fmt.Errorf("member %d: %w", member.ID, domain.ErrMemberNotFound)
	}
	next := member.Clone()
	next.History = cur.History
	r.members.put(member.ID, next)
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members.rows[id]; !ok {
		return fmt.Errorf("member %d: %w", id, domain.ErrMemberNotFound)
	}
	r.members.remove(id)
	return nil
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Member, 0, len(r.members.order))
	r.members.each(func(m *domain.Member) {
		out = append(out, *m.Clone())
	})
	return out, nil
}

func (r *memberRepository) AppendHistory(ctx context.Context, memberID int32, rentalID string) error {
	logger.StoreCall("members.append_history", rentalID, "member_id", memberID)
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members.rows[memberID]
	if !ok {
		err := fmt.Errorf("member %d: %w", memberID, domain.ErrMemberNotFound)
		logger.StoreResult("members.append_history", err)
		return err
	}
	m.History = append(m.History, rentalID)
	logger.StoreResult("members.append_history", nil, "history_len", len(m.History))
	return nil
}
