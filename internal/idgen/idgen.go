package idgen

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"memberclub-rental/internal/domain"
)

// RentalIDs hands out rental identifiers. IDs are never reused within a process.
type RentalIDs interface {
	NextRentalID() string
}

var itemPrefixes = map[domain.ItemKind]string{
	domain.ItemKindBackpack:     "BACK",
	domain.ItemKindLantern:      "LANT",
	domain.ItemKindSleepingBag:  "SLEEP",
	domain.ItemKindTent:         "TENT",
	domain.ItemKindTrangia:      "TRANG",
	domain.ItemKindBait:         "BAIT",
	domain.ItemKindNet:          "NET",
	domain.ItemKindRod:          "ROD",
	domain.ItemKindKayak:        "KAY",
	domain.ItemKindElectricBoat: "EBOAT",
	domain.ItemKindMotorBoat:    "MBOAT",
	domain.ItemKindRowBoat:      "RBOAT",
}

// Generator holds the process-lifetime counters. Zero value is not usable, call New.
type Generator struct {
	mu      sync.Mutex
	rentals int
	members int32
	items   map[domain.ItemKind]int
	entropy *ulid.MonotonicEntropy
}

func New() *Generator {
	return &Generator{
		items:   make(map[domain.ItemKind]int),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NextRentalID returns RENT-001, RENT-002, ...
func (g *Generator) NextRentalID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rentals++
	return fmt.Sprintf("RENT-%03d", g.rentals)
}

// NextItemID returns a kind-prefixed id such as TENT-001
func (g *Generator) NextItemID(kind domain.ItemKind) (string, error) {
	prefix, ok := itemPrefixes[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidItem, kind)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items[kind]++
	return fmt.Sprintf("%s-%03d", prefix, g.items[kind]), nil
}

// NextMemberID returns 1, 2, 3, ...
func (g *Generator) NextMemberID() int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members++
	return g.members
}

// NextReceiptID returns a time-ordered ULID for receipts issued at t
func (g *Generator) NextReceiptID(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// NewEntryID returns a random identifier for ledger entries
func NewEntryID() string {
	return uuid.NewString()
}
