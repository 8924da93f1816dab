package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/repository"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

var _ repository.MemberRepository = (*MockMemberRepo)(nil)

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) AppendHistory(ctx context.Context, memberID int32, rentalID string) error {
	args := m.Called(ctx, memberID, rentalID)
	return args.Error(0)
}

// MockRevenueRepo
type MockRevenueRepo struct {
	mock.Mock
}

var _ repository.RevenueRepository = (*MockRevenueRepo)(nil)

func (m *MockRevenueRepo) Append(ctx context.Context, entry *domain.RevenueEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockRevenueRepo) List(ctx context.Context) ([]domain.RevenueEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RevenueEntry), args.Error(1)
}
func (m *MockRevenueRepo) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRentalIDs
type MockRentalIDs struct {
	mock.Mock
}

func (m *MockRentalIDs) NextRentalID() string {
	args := m.Called()
	return args.String(0)
}
