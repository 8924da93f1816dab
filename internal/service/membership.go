package service

import (
	"context"
	"fmt"
	"strings"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/idgen"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
)

type membershipService struct {
	memberRepo repository.MemberRepository
	rentalRepo repository.RentalRepository
	ids        *idgen.Generator
}

func NewMembershipService(memberRepo repository.MemberRepository, rentalRepo repository.RentalRepository, ids *idgen.Generator) MembershipService {
	return &membershipService{
		memberRepo: memberRepo,
		rentalRepo: rentalRepo,
		ids:        ids,
	}
}

func (s *membershipService) AddMember(ctx context.Context, name, email string, tier domain.MembershipTier) (*domain.Member, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidMember)
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTier, tier)
	}
	member := &domain.Member{
		ID:    s.ids.NextMemberID(),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Tier:  tier,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	logger.Info("Member added", "memberID", member.ID, "tier", member.Tier)
	return member, nil
}

func (s *membershipService) RemoveMember(ctx context.Context, memberID int32) error {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return err
	}
	rentals, err := s.rentalRepo.ListByMember(ctx, memberID)
	if err != nil {
		return err
	}
	for _, r := range rentals {
		if r.IsActive() {
			return fmt.Errorf("member %d holds %s: %w", memberID, r.ID, domain.ErrMemberHasActiveRentals)
		}
	}
	return s.memberRepo.Delete(ctx, memberID)
}

func (s *membershipService) GetMember(ctx context.Context, memberID int32) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, memberID)
}

func (s *membershipService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return s.memberRepo.List(ctx)
}

// UpdateTier affects future pricing and late-fee assessment. Stored rental costs never change.
func (s *membershipService) UpdateTier(ctx context.Context, memberID int32, tier domain.MembershipTier) (*domain.Member, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTier, tier)
	}
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	from := member.Tier
	member.Tier = tier
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	logger.Info("Member tier changed", "memberID", memberID, "from", from, "to", tier)
	return member, nil
}

func (s *membershipService) SearchByName(ctx context.Context, query string) ([]domain.Member, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Member{}
	for _, m := range members {
		if containsFold(query, m.Name) {
			out = append(out, m)
		}
	}
	return out, nil
}

// History returns the member's rentals in the order they were created
func (s *membershipService) History(ctx context.Context, memberID int32) ([]domain.Rental, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Rental, 0, len(member.History))
	for _, id := range member.History {
		r, err := s.rentalRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}
