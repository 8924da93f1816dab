// Package seed populates a fresh store with a catalogue and members read from YAML.
package seed

import (
	"context"
	_ "embed"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/service"
)

//go:embed sample.yaml
var sample []byte

// Sample returns the built-in catalogue
func Sample() []byte {
	return append([]byte(nil), sample...)
}

type Item struct {
	Kind         domain.ItemKind       `yaml:"kind"`
	Name         string                `yaml:"name"`
	Brand        string                `yaml:"brand"`
	Year         int                   `yaml:"year"`
	Color        string                `yaml:"color"`
	Material     string                `yaml:"material"`
	WeightKg     float64               `yaml:"weight_kg"`
	PricePerHour string                `yaml:"price_per_hour"`
	PricePerDay  string                `yaml:"price_per_day"`
	Attributes   domain.ItemAttributes `yaml:"attributes"`
}

type Member struct {
	Name  string                `yaml:"name"`
	Email string                `yaml:"email"`
	Tier  domain.MembershipTier `yaml:"tier"`
}

type Data struct {
	Items   []Item   `yaml:"items"`
	Members []Member `yaml:"members"`
}

// Result holds what was created, in file order
type Result struct {
	Items   []domain.Item
	Members []domain.Member
}

func Parse(data []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "failed to parse seed data")
	}
	return &d, nil
}

func (i Item) toDomain() (*domain.Item, error) {
	perHour, err := decimal.NewFromString(i.PricePerHour)
	if err != nil {
		return nil, errors.Wrapf(err, "item %q: bad hourly price", i.Name)
	}
	perDay, err := decimal.NewFromString(i.PricePerDay)
	if err != nil {
		return nil, errors.Wrapf(err, "item %q: bad daily price", i.Name)
	}
	return &domain.Item{
		Kind:         i.Kind,
		Name:         i.Name,
		Brand:        i.Brand,
		Year:         i.Year,
		Color:        i.Color,
		Material:     i.Material,
		WeightKg:     i.WeightKg,
		PricePerHour: perHour,
		PricePerDay:  perDay,
		Attributes:   i.Attributes,
	}, nil
}

// Load registers every item and member through the services so ids and
// validation follow the normal paths. It stops at the first rejected record.
func Load(ctx context.Context, inventory service.InventoryService, members service.MembershipService, data []byte) (*Result, error) {
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for n, raw := range d.Items {
		item, err := raw.toDomain()
		if err != nil {
			return res, err
		}
		created, err := inventory.AddItem(ctx, item)
		if err != nil {
			return res, errors.Wrapf(err, "seed item %d (%s)", n+1, raw.Name)
		}
		res.Items = append(res.Items, *created)
	}

	for n, m := range d.Members {
		created, err := members.AddMember(ctx, m.Name, m.Email, m.Tier)
		if err != nil {
			return res, errors.Wrapf(err, "seed member %d (%s)", n+1, m.Name)
		}
		res.Members = append(res.Members, *created)
	}

	logger.Info("Seed data loaded", "items", len(res.Items), "members", len(res.Members))
	return res, nil
}
