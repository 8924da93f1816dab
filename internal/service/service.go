package service

import (
	"context"

	"github.com/shopspring/decimal"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/security"
)

// RentalLedger is the single source of truth for rental records and the only
// component that flips items between AVAILABLE and RENTED.
type RentalLedger interface {
	Create(ctx context.Context, memberID int32, itemID string, duration int, unit domain.RentalUnit) (*domain.Rental, error)
	Complete(ctx context.Context, rentalID string) (*domain.Rental, error)
	Cancel(ctx context.Context, rentalID string) (*domain.Rental, error)
	ByID(ctx context.Context, rentalID string) (*domain.Rental, error)
	Active(ctx context.Context) ([]domain.Rental, error)
	All(ctx context.Context) ([]domain.Rental, error)
	ListByMember(ctx context.Context, memberID int32) ([]domain.Rental, error)
	Overdue(ctx context.Context, asOf domain.Date) ([]domain.Rental, error)
}

type CheckoutService interface {
	NewCart(ctx context.Context, memberID int32) (*Cart, error)
	Stage(ctx context.Context, cart *Cart, itemID string, duration int, unit domain.RentalUnit) (*CartLine, error)
	StageAll(ctx context.Context, cart *Cart, itemIDs []string, duration int, unit domain.RentalUnit) error
	Checkout(ctx context.Context, cart *Cart, confirm ConfirmFunc) (*Receipt, error)
}

type ReturnService interface {
	Assess(ctx context.Context, rentalID string) (*LateFee, error)
	Return(ctx context.Context, rentalID string) (*ReturnResult, error)
	ReturnBulk(ctx context.Context, rentalIDs []string) (*BulkReturnResult, error)
	ReturnAllForMember(ctx context.Context, memberID int32) (*BulkReturnResult, error)
}

type RevenueLedger interface {
	// Add credits a positive amount. Zero and negative amounts are ignored and report false.
	Add(ctx context.Context, source domain.RevenueSource, amount decimal.Decimal, reference string) (bool, error)
	Total(ctx context.Context) (decimal.Decimal, error)
	Entries(ctx context.Context) ([]domain.RevenueEntry, error)
	Summary(ctx context.Context) (*RevenueSummary, error)
	Reset(ctx context.Context) error
}

type InventoryService interface {
	AddItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	RemoveItem(ctx context.Context, itemID string) error
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]domain.Item, error)
	SearchItems(ctx context.Context, query string) ([]domain.Item, error)
	UpdatePrices(ctx context.Context, itemID string, perHour, perDay decimal.Decimal) (*domain.Item, error)
	MarkBroken(ctx context.Context, itemID string) (*domain.Item, error)
	MarkRepaired(ctx context.Context, itemID string) (*domain.Item, error)
}

type MembershipService interface {
	AddMember(ctx context.Context, name, email string, tier domain.MembershipTier) (*domain.Member, error)
	RemoveMember(ctx context.Context, memberID int32) error
	GetMember(ctx context.Context, memberID int32) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
	UpdateTier(ctx context.Context, memberID int32, tier domain.MembershipTier) (*domain.Member, error)
	SearchByName(ctx context.Context, query string) ([]domain.Member, error)
	History(ctx context.Context, memberID int32) ([]domain.Rental, error)
}

type AuthService interface {
	Register(ctx context.Context, username, fullName, password string) (*domain.Operator, error)
	Login(ctx context.Context, username, password string) (string, *domain.Operator, error)
	ValidateSession(ctx context.Context, token string) (*security.OperatorClaims, error)
}
