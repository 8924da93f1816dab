package service

import (
	"context"
	"fmt"
	"sync"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/idgen"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
	"memberclub-rental/internal/utils"
)

type rentalLedger struct {
	// mu serializes every check-and-flip of item availability
	mu         sync.Mutex
	rentalRepo repository.RentalRepository
	itemRepo   repository.ItemRepository
	memberRepo repository.MemberRepository
	ids        idgen.RentalIDs
	clock      utils.Clock
}

func NewRentalLedger(
	rentalRepo repository.RentalRepository,
	itemRepo repository.ItemRepository,
	memberRepo repository.MemberRepository,
	ids idgen.RentalIDs,
	clock utils.Clock,
) RentalLedger {
	return &rentalLedger{
		rentalRepo: rentalRepo,
		itemRepo:   itemRepo,
		memberRepo: memberRepo,
		ids:        ids,
		clock:      clock,
	}
}

func (s *rentalLedger) Create(ctx context.Context, memberID int32, itemID string, duration int, unit domain.RentalUnit) (*domain.Rental, error) {
	logger.EnterMethod("rentalLedger.Create", "memberID", memberID, "itemID", itemID, "duration", duration, "unit", unit)

	if duration < 1 {
		logger.ExitMethodWithError("rentalLedger.Create", domain.ErrInvalidDuration, "duration", duration)
		return nil, domain.ErrInvalidDuration
	}
	if !unit.Valid() {
		err := fmt.Errorf("%w: %q", domain.ErrInvalidUnit, unit)
		logger.ExitMethodWithError("rentalLedger.Create", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		logger.ExitMethodWithError("rentalLedger.Create", err, "memberID", memberID)
		return nil, err
	}
	policy, err := utils.PolicyFor(member.Tier)
	if err != nil {
		logger.ExitMethodWithError("rentalLedger.Create", err, "memberID", memberID)
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		logger.ExitMethodWithError("rentalLedger.Create", err, "itemID", itemID)
		return nil, err
	}
	if !item.IsAvailable() {
		err := fmt.Errorf("item %s is %s: %w", item.ID, item.Status, domain.ErrItemNotAvailable)
		logger.ExitMethodWithError("rentalLedger.Create", err, "itemID", itemID)
		return nil, err
	}

	// Preconditions hold, so the id is drawn only now and rejected attempts consume none.
	now := s.clock.Now()
	today := domain.DateOf(now)
	rental := &domain.Rental{
		ID:                 s.ids.NextRentalID(),
		MemberID:           member.ID,
		ItemID:             item.ID,
		Unit:               unit,
		Duration:           duration,
		Tier:               policy.Tier,
		StartDate:          today,
		ExpectedReturnDate: utils.ExpectedReturnDate(today, duration, unit),
		ReturnBy:           utils.ReturnBy(now, duration, unit),
		TotalCost:          utils.Price(item, policy.Tier, duration, unit),
		Status:             domain.RentalStatusActive,
	}

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		logger.ExitMethodWithError("rentalLedger.Create", err, "rentalID", rental.ID)
		return nil, fmt.Errorf("failed to store rental: %w", err)
	}

	item.Status = domain.ItemStatusRented
	if err := s.itemRepo.Update(ctx, item); err != nil {
		s.undoCreate(ctx, rental.ID, nil)
		logger.ExitMethodWithError("rentalLedger.Create", err, "rentalID", rental.ID)
		return nil, fmt.Errorf("failed to mark item rented: %w", err)
	}

	if err := s.memberRepo.AppendHistory(ctx, member.ID, rental.ID); err != nil {
		s.undoCreate(ctx, rental.ID, item)
		logger.ExitMethodWithError("rentalLedger.Create", err, "rentalID", rental.ID)
		return nil, fmt.Errorf("failed to record member history: %w", err)
	}

	logger.Transition("rental", rental.ID, "", string(domain.RentalStatusActive),
		"itemID", item.ID, "memberID", member.ID, "totalCost", rental.TotalCost.String())
	logger.ExitMethod("rentalLedger.Create", "rentalID", rental.ID)
	return rental.Clone(), nil
}

// undoCreate rolls back the stored rental and, when given, the item flip
func (s *rentalLedger) undoCreate(ctx context.Context, rentalID string, rented *domain.Item) {
	if rented != nil {
		rented.Status = domain.ItemStatusAvailable
		if err := s.itemRepo.Update(ctx, rented); err != nil {
			logger.Error("Failed to restore item after aborted rental", "itemID", rented.ID, "error", err)
		}
	}
	if err := s.rentalRepo.Delete(ctx, rentalID); err != nil {
		logger.Error("Failed to remove aborted rental", "rentalID", rentalID, "error", err)
	}
}

func (s *rentalLedger) Complete(ctx context.Context, rentalID string) (*domain.Rental, error) {
	logger.EnterMethod("rentalLedger.Complete", "rentalID", rentalID)
	s.mu.Lock()
	defer s.mu.Unlock()

	end := utils.Today(s.clock)
	rental, err := s.finish(ctx, rentalID, domain.RentalStatusCompleted, &end)
	if err != nil {
		logger.ExitMethodWithError("rentalLedger.Complete", err, "rentalID", rentalID)
		return nil, err
	}
	logger.ExitMethod("rentalLedger.Complete", "rentalID", rentalID, "endDate", end.String())
	return rental, nil
}

// Cancel ends an active rental without an end date and frees the item
func (s *rentalLedger) Cancel(ctx context.Context, rentalID string) (*domain.Rental, error) {
	logger.EnterMethod("rentalLedger.Cancel", "rentalID", rentalID)
	s.mu.Lock()
	defer s.mu.Unlock()

	rental, err := s.finish(ctx, rentalID, domain.RentalStatusCancelled, nil)
	if err != nil {
		logger.ExitMethodWithError("rentalLedger.Cancel", err, "rentalID", rentalID)
		return nil, err
	}
	logger.ExitMethod("rentalLedger.Cancel", "rentalID", rentalID)
	return rental, nil
}

// finish moves an ACTIVE rental to a terminal status and releases its item.
// Callers hold s.mu.
func (s *rentalLedger) finish(ctx context.Context, rentalID string, to domain.RentalStatus, end *domain.Date) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.IsActive() {
		return nil, fmt.Errorf("rental %s is %s: %w", rental.ID, rental.Status, domain.ErrRentalNotActive)
	}
	item, err := s.itemRepo.GetByID(ctx, rental.ItemID)
	if err != nil {
		return nil, err
	}

	before := *rental.Clone()
	rental.Status = to
	rental.EndDate = end
	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, fmt.Errorf("failed to update rental: %w", err)
	}

	item.Status = domain.ItemStatusAvailable
	if err := s.itemRepo.Update(ctx, item); err != nil {
		if rbErr := s.rentalRepo.Update(ctx, &before); rbErr != nil {
			logger.Error("Failed to restore rental after item update failure", "rentalID", rental.ID, "error", rbErr)
		}
		return nil, fmt.Errorf("failed to release item: %w", err)
	}

	logger.Transition("rental", rental.ID, string(domain.RentalStatusActive), string(to), "itemID", item.ID)
	return rental, nil
}

func (s *rentalLedger) ByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, rentalID)
}

func (s *rentalLedger) Active(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.ListByStatus(ctx, domain.RentalStatusActive)
}

func (s *rentalLedger) All(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx)
}

func (s *rentalLedger) ListByMember(ctx context.Context, memberID int32) ([]domain.Rental, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.rentalRepo.ListByMember(ctx, memberID)
}

// Overdue lists active rentals whose expected return date lies before asOf
func (s *rentalLedger) Overdue(ctx context.Context, asOf domain.Date) ([]domain.Rental, error) {
	active, err := s.rentalRepo.ListByStatus(ctx, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	var overdue []domain.Rental
	for _, r := range active {
		if r.ExpectedReturnDate.Before(asOf) {
			overdue = append(overdue, r)
		}
	}
	return overdue, nil
}
