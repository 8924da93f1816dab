package repository

import (
	"context"

	"memberclub-rental/internal/domain"
)

// Lookups return domain.ErrItemNotFound, domain.ErrMemberNotFound or
// domain.ErrRentalNotFound when the key is unknown. Returned values are copies;
// callers persist changes with Update.

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Item, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Member, error)
	AppendHistory(ctx context.Context, memberID int32, rentalID string) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Rental, error)
	ListByMember(ctx context.Context, memberID int32) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
}

type RevenueRepository interface {
	Append(ctx context.Context, entry *domain.RevenueEntry) error
	List(ctx context.Context) ([]domain.RevenueEntry, error)
	Clear(ctx context.Context) error
}

type OperatorRepository interface {
	Create(ctx context.Context, op *domain.Operator) error
	GetByUsername(ctx context.Context, username string) (*domain.Operator, error)
	List(ctx context.Context) ([]domain.Operator, error)
}
