package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/idgen"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
	"memberclub-rental/internal/utils"
)

// CartLine is one staged rental. Price is already tier-adjusted.
type CartLine struct {
	Item     domain.Item       `json:"item"`
	Duration int               `json:"duration"`
	Unit     domain.RentalUnit `json:"unit"`
	Price    decimal.Decimal   `json:"price"`
}

// Cart stages prospective rentals for one member. It is not safe for
// concurrent use and lives only for one checkout session.
type Cart struct {
	member domain.Member
	lines  []CartLine
}

func NewCart(member *domain.Member) *Cart {
	return &Cart{member: *member.Clone()}
}

// Member returns the member snapshot the cart was opened for
func (c *Cart) Member() domain.Member {
	return c.member
}

// AddLine prices the item with the member's tier and stages it
func (c *Cart) AddLine(item *domain.Item, duration int, unit domain.RentalUnit) (*CartLine, error) {
	if err := c.checkLine(item, duration, unit); err != nil {
		return nil, err
	}
	line := CartLine{
		Item:     *item.Clone(),
		Duration: duration,
		Unit:     unit,
		Price:    utils.Price(item, c.member.Tier, duration, unit),
	}
	c.lines = append(c.lines, line)
	return &line, nil
}

// AddLines stages several items with one duration and unit. Nothing is
// staged if any item is rejected.
func (c *Cart) AddLines(items []*domain.Item, duration int, unit domain.RentalUnit) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if err := c.checkLine(item, duration, unit); err != nil {
			return err
		}
		if seen[item.ID] {
			return fmt.Errorf("item %s: %w", item.ID, domain.ErrDuplicateLine)
		}
		seen[item.ID] = true
	}
	for _, item := range items {
		if _, err := c.AddLine(item, duration, unit); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cart) checkLine(item *domain.Item, duration int, unit domain.RentalUnit) error {
	if duration < 1 {
		return domain.ErrInvalidDuration
	}
	if !unit.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidUnit, unit)
	}
	if !item.IsAvailable() {
		return fmt.Errorf("item %s is %s: %w", item.ID, item.Status, domain.ErrItemNotAvailable)
	}
	for _, l := range c.lines {
		if l.Item.ID == item.ID {
			return fmt.Errorf("item %s: %w", item.ID, domain.ErrDuplicateLine)
		}
	}
	return nil
}

// RemoveLine drops the line at index (zero based)
func (c *Cart) RemoveLine(index int) (CartLine, error) {
	if index < 0 || index >= len(c.lines) {
		return CartLine{}, fmt.Errorf("line %d: %w", index, domain.ErrLineNotFound)
	}
	line := c.lines[index]
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return line, nil
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

// TotalBeforeDiscount sums the line prices, which already carry the tier discount
func (c *Cart) TotalBeforeDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Price)
	}
	return total
}

// TotalAfterDiscount applies the tier discount to the cart total a second time.
// Members are charged this amount.
func (c *Cart) TotalAfterDiscount() decimal.Decimal {
	return utils.ApplyDiscount(c.TotalBeforeDiscount(), c.member.Tier)
}

// Quote is what the operator confirms before the cart is committed
type Quote struct {
	Member              domain.Member   `json:"member"`
	Lines               []CartLine      `json:"lines"`
	TotalBeforeDiscount decimal.Decimal `json:"total_before_discount"`
	Discount            decimal.Decimal `json:"discount"`
	TotalAfterDiscount  decimal.Decimal `json:"total_after_discount"`
}

func (c *Cart) Quote() Quote {
	return Quote{
		Member:              c.member,
		Lines:               c.Lines(),
		TotalBeforeDiscount: c.TotalBeforeDiscount(),
		Discount:            utils.TierDiscount(c.member.Tier),
		TotalAfterDiscount:  c.TotalAfterDiscount(),
	}
}

// ConfirmFunc asks the operator to accept a quote
type ConfirmFunc func(Quote) bool

type FailedLine struct {
	Line CartLine `json:"line"`
	Err  error    `json:"-"`
}

type Receipt struct {
	ID                  string          `json:"id"`
	IssuedAt            time.Time       `json:"issued_at"`
	Member              domain.Member   `json:"member"`
	Rentals             []domain.Rental `json:"rentals"`
	Failed              []FailedLine    `json:"failed,omitempty"`
	TotalBeforeDiscount decimal.Decimal `json:"total_before_discount"`
	TotalAfterDiscount  decimal.Decimal `json:"total_after_discount"`
	Charged             decimal.Decimal `json:"charged"`
}

type checkoutService struct {
	ledger     RentalLedger
	revenue    RevenueLedger
	memberRepo repository.MemberRepository
	itemRepo   repository.ItemRepository
	ids        *idgen.Generator
	clock      utils.Clock
}

func NewCheckoutService(
	ledger RentalLedger,
	revenue RevenueLedger,
	memberRepo repository.MemberRepository,
	itemRepo repository.ItemRepository,
	ids *idgen.Generator,
	clock utils.Clock,
) CheckoutService {
	return &checkoutService{
		ledger:     ledger,
		revenue:    revenue,
		memberRepo: memberRepo,
		itemRepo:   itemRepo,
		ids:        ids,
		clock:      clock,
	}
}

func (s *checkoutService) NewCart(ctx context.Context, memberID int32) (*Cart, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return NewCart(member), nil
}

func (s *checkoutService) Stage(ctx context.Context, cart *Cart, itemID string, duration int, unit domain.RentalUnit) (*CartLine, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return cart.AddLine(item, duration, unit)
}

func (s *checkoutService) StageAll(ctx context.Context, cart *Cart, itemIDs []string, duration int, unit domain.RentalUnit) error {
	items := make([]*domain.Item, 0, len(itemIDs))
	for _, id := range itemIDs {
		item, err := s.itemRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	return cart.AddLines(items, duration, unit)
}

// Checkout commits every line as an independent rental. The cart is emptied
// whatever the outcome. Revenue is credited once with the cart's discounted
// total as soon as one rental was created, even when other lines failed.
func (s *checkoutService) Checkout(ctx context.Context, cart *Cart, confirm ConfirmFunc) (*Receipt, error) {
	member := cart.Member()
	logger.EnterMethod("checkoutService.Checkout", "memberID", member.ID, "lines", cart.Len())

	if cart.Len() == 0 {
		logger.ExitMethodWithError("checkoutService.Checkout", domain.ErrEmptyCart, "memberID", member.ID)
		return nil, domain.ErrEmptyCart
	}
	defer cart.Clear()

	quote := cart.Quote()
	if confirm != nil && !confirm(quote) {
		logger.ExitMethodWithError("checkoutService.Checkout", domain.ErrCheckoutDeclined, "memberID", member.ID)
		return nil, domain.ErrCheckoutDeclined
	}

	now := s.clock.Now()
	receipt := &Receipt{
		ID:                  s.ids.NextReceiptID(now),
		IssuedAt:            now,
		Member:              member,
		TotalBeforeDiscount: quote.TotalBeforeDiscount,
		TotalAfterDiscount:  quote.TotalAfterDiscount,
		Charged:             decimal.Zero,
	}

	for _, line := range quote.Lines {
		rental, err := s.ledger.Create(ctx, member.ID, line.Item.ID, line.Duration, line.Unit)
		if err != nil {
			logger.Warn("Cart line not committed", "receiptID", receipt.ID, "itemID", line.Item.ID, "error", err)
			receipt.Failed = append(receipt.Failed, FailedLine{Line: line, Err: err})
			continue
		}
		receipt.Rentals = append(receipt.Rentals, *rental)
	}

	if len(receipt.Rentals) > 0 {
		credited, err := s.revenue.Add(ctx, domain.RevenueSourceRental, quote.TotalAfterDiscount, receipt.ID)
		if err != nil {
			logger.ExitMethodWithError("checkoutService.Checkout", err, "receiptID", receipt.ID)
			return receipt, fmt.Errorf("failed to record revenue: %w", err)
		}
		if credited {
			receipt.Charged = quote.TotalAfterDiscount
		}
	}

	logger.ExitMethod("checkoutService.Checkout", "receiptID", receipt.ID,
		"created", len(receipt.Rentals), "failed", len(receipt.Failed), "charged", receipt.Charged.String())
	return receipt, nil
}
