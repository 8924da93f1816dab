package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/idgen"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
)

// ItemFilter narrows ListItems. Zero fields match everything.
type ItemFilter struct {
	Category domain.ItemCategory
	Kind     domain.ItemKind
	Status   domain.ItemStatus
}

func (f ItemFilter) matches(i *domain.Item) bool {
	if f.Category != "" && i.Category() != f.Category {
		return false
	}
	if f.Kind != "" && i.Kind != f.Kind {
		return false
	}
	if f.Status != "" && i.Status != f.Status {
		return false
	}
	return true
}

type inventoryService struct {
	itemRepo repository.ItemRepository
	ids      *idgen.Generator
}

func NewInventoryService(itemRepo repository.ItemRepository, ids *idgen.Generator) InventoryService {
	return &inventoryService{
		itemRepo: itemRepo,
		ids:      ids,
	}
}

func validateItem(item *domain.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidItem)
	}
	if !item.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidItem, item.Kind)
	}
	if item.PricePerHour.IsNegative() || item.PricePerDay.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", domain.ErrInvalidItem)
	}
	if !item.Attributes.MatchesKind(item.Kind) {
		return fmt.Errorf("%w: attributes do not match kind %s", domain.ErrInvalidItem, item.Kind)
	}
	return nil
}

// AddItem registers a new item as AVAILABLE under a generated kind-prefixed id
func (s *inventoryService) AddItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}
	id, err := s.ids.NextItemID(item.Kind)
	if err != nil {
		return nil, err
	}
	created := item.Clone()
	created.ID = id
	created.Status = domain.ItemStatusAvailable
	if err := s.itemRepo.Create(ctx, created); err != nil {
		return nil, err
	}
	logger.Info("Item added", "itemID", created.ID, "kind", created.Kind, "name", created.Name)
	return created, nil
}

func (s *inventoryService) RemoveItem(ctx context.Context, itemID string) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.Status == domain.ItemStatusRented {
		return fmt.Errorf("cannot remove rented item %s: %w", itemID, domain.ErrItemNotAvailable)
	}
	return s.itemRepo.Delete(ctx, itemID)
}

func (s *inventoryService) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, itemID)
}

func (s *inventoryService) ListItems(ctx context.Context, filter ItemFilter) ([]domain.Item, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Item{}
	for i := range items {
		if filter.matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out, nil
}

// SearchItems matches the query against name and brand, ignoring case
func (s *inventoryService) SearchItems(ctx context.Context, query string) ([]domain.Item, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Item{}
	for _, item := range items {
		if containsFold(query, item.Name, item.Brand) {
			out = append(out, item)
		}
	}
	return out, nil
}

// UpdatePrices changes future pricing only. Existing rentals keep their total cost.
func (s *inventoryService) UpdatePrices(ctx context.Context, itemID string, perHour, perDay decimal.Decimal) (*domain.Item, error) {
	if perHour.IsNegative() || perDay.IsNegative() {
		return nil, fmt.Errorf("%w: prices must not be negative", domain.ErrInvalidItem)
	}
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.PricePerHour = perHour
	item.PricePerDay = perDay
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) MarkBroken(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.setStatus(ctx, itemID, domain.ItemStatusAvailable, domain.ItemStatusBroken)
}

func (s *inventoryService) MarkRepaired(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.setStatus(ctx, itemID, domain.ItemStatusBroken, domain.ItemStatusAvailable)
}

// setStatus never touches RENTED, which is owned by the rental ledger
func (s *inventoryService) setStatus(ctx context.Context, itemID string, from, to domain.ItemStatus) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != from {
		return nil, fmt.Errorf("item %s is %s, expected %s: %w", itemID, item.Status, from, domain.ErrItemNotAvailable)
	}
	item.Status = to
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	logger.Transition("item", item.ID, string(from), string(to))
	return item, nil
}
