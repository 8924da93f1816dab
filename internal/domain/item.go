package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "AVAILABLE"
	ItemStatusRented    ItemStatus = "RENTED"
	ItemStatusBroken    ItemStatus = "BROKEN"
)

// ItemKind is the discriminator of the item attribute payload
type ItemKind string

const (
	ItemKindBackpack     ItemKind = "BACKPACK"
	ItemKindLantern      ItemKind = "LANTERN"
	ItemKindSleepingBag  ItemKind = "SLEEPING_BAG"
	ItemKindTent         ItemKind = "TENT"
	ItemKindTrangia      ItemKind = "TRANGIA"
	ItemKindBait         ItemKind = "BAIT"
	ItemKindNet          ItemKind = "NET"
	ItemKindRod          ItemKind = "ROD"
	ItemKindKayak        ItemKind = "KAYAK"
	ItemKindElectricBoat ItemKind = "ELECTRIC_BOAT"
	ItemKindMotorBoat    ItemKind = "MOTOR_BOAT"
	ItemKindRowBoat      ItemKind = "ROW_BOAT"
)

// AllItemKinds lists every kind in catalogue order
var AllItemKinds = []ItemKind{
	ItemKindBackpack, ItemKindLantern, ItemKindSleepingBag, ItemKindTent, ItemKindTrangia,
	ItemKindBait, ItemKindNet, ItemKindRod,
	ItemKindKayak, ItemKindElectricBoat, ItemKindMotorBoat, ItemKindRowBoat,
}

type ItemCategory string

const (
	ItemCategoryCamping    ItemCategory = "CAMPING"
	ItemCategoryFishing    ItemCategory = "FISHING"
	ItemCategoryWatercraft ItemCategory = "WATERCRAFT"
)

// Valid reports whether k is a known kind
func (k ItemKind) Valid() bool {
	return k.Category() != ""
}

// Category groups the kind into its equipment category. Empty for unknown kinds.
func (k ItemKind) Category() ItemCategory {
	switch k {
	case ItemKindBackpack, ItemKindLantern, ItemKindSleepingBag, ItemKindTent, ItemKindTrangia:
		return ItemCategoryCamping
	case ItemKindBait, ItemKindNet, ItemKindRod:
		return ItemCategoryFishing
	case ItemKindKayak, ItemKindElectricBoat, ItemKindMotorBoat, ItemKindRowBoat:
		return ItemCategoryWatercraft
	default:
		return ""
	}
}

type TentAttributes struct {
	Capacity int    `json:"capacity" yaml:"capacity"`
	Season   string `json:"season" yaml:"season"`
	Type     string `json:"type" yaml:"type"`
}

type TrangiaAttributes struct {
	Burners  int    `json:"burners" yaml:"burners"`
	FuelType string `json:"fuel_type" yaml:"fuel_type"`
}

type RodAttributes struct {
	LengthM float64 `json:"length_m" yaml:"length_m"`
	Type    string  `json:"type" yaml:"type"`
}

type NetAttributes struct {
	Size string `json:"size" yaml:"size"`
}

type BaitAttributes struct {
	Type     string `json:"type" yaml:"type"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

type BackpackAttributes struct {
	VolumeL int    `json:"volume_l" yaml:"volume_l"`
	Type    string `json:"type" yaml:"type"`
}

type LanternAttributes struct {
	Lumens      int    `json:"lumens" yaml:"lumens"`
	PowerSource string `json:"power_source" yaml:"power_source"`
}

type SleepingBagAttributes struct {
	ComfortTempC int    `json:"comfort_temp_c" yaml:"comfort_temp_c"`
	Season       string `json:"season" yaml:"season"`
}

// BoatAttributes covers kayaks and the three boat kinds
type BoatAttributes struct {
	Type       string  `json:"type,omitempty" yaml:"type"`
	Seats      int     `json:"seats" yaml:"seats"`
	LengthM    float64 `json:"length_m" yaml:"length_m"`
	Horsepower int     `json:"horsepower,omitempty" yaml:"horsepower"`
	BatteryKWh float64 `json:"battery_kwh,omitempty" yaml:"battery_kwh"`
}

// ItemAttributes is a tagged union keyed by Item.Kind. Exactly one field is set.
type ItemAttributes struct {
	Backpack    *BackpackAttributes    `json:"backpack,omitempty" yaml:"backpack"`
	Lantern     *LanternAttributes     `json:"lantern,omitempty" yaml:"lantern"`
	SleepingBag *SleepingBagAttributes `json:"sleeping_bag,omitempty" yaml:"sleeping_bag"`
	Tent        *TentAttributes        `json:"tent,omitempty" yaml:"tent"`
	Trangia     *TrangiaAttributes     `json:"trangia,omitempty" yaml:"trangia"`
	Bait        *BaitAttributes        `json:"bait,omitempty" yaml:"bait"`
	Net         *NetAttributes         `json:"net,omitempty" yaml:"net"`
	Rod         *RodAttributes         `json:"rod,omitempty" yaml:"rod"`
	Boat        *BoatAttributes        `json:"boat,omitempty" yaml:"boat"`
}

func (a ItemAttributes) set() int {
	n := 0
	for _, p := range []bool{
		a.Backpack != nil, a.Lantern != nil, a.SleepingBag != nil, a.Tent != nil, a.Trangia != nil,
		a.Bait != nil, a.Net != nil, a.Rod != nil, a.Boat != nil,
	} {
		if p {
			n++
		}
	}
	return n
}

// MatchesKind reports whether the populated payload belongs to kind.
// An empty payload matches every kind.
func (a ItemAttributes) MatchesKind(kind ItemKind) bool {
	switch a.set() {
	case 0:
		return true
	case 1:
	default:
		return false
	}
	switch kind {
	case ItemKindBackpack:
		return a.Backpack != nil
	case ItemKindLantern:
		return a.Lantern != nil
	case ItemKindSleepingBag:
		return a.SleepingBag != nil
	case ItemKindTent:
		return a.Tent != nil
	case ItemKindTrangia:
		return a.Trangia != nil
	case ItemKindBait:
		return a.Bait != nil
	case ItemKindNet:
		return a.Net != nil
	case ItemKindRod:
		return a.Rod != nil
	case ItemKindKayak, ItemKindElectricBoat, ItemKindMotorBoat, ItemKindRowBoat:
		return a.Boat != nil
	default:
		return false
	}
}

type Item struct {
	ID           string          `json:"id"`
	Kind         ItemKind        `json:"kind"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Year         int             `json:"year"`
	Color        string          `json:"color"`
	Material     string          `json:"material"`
	WeightKg     float64         `json:"weight_kg"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	PricePerDay  decimal.Decimal `json:"price_per_day"`
	Status       ItemStatus      `json:"status"`
	Attributes   ItemAttributes  `json:"attributes"`
}

func (i *Item) Category() ItemCategory {
	return i.Kind.Category()
}

func (i *Item) IsAvailable() bool {
	return i.Status == ItemStatusAvailable
}

// Describe renders a one-line summary including the kind-specific attributes
func (i *Item) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s", i.ID, i.Name, i.Brand)
	if i.Year > 0 {
		fmt.Fprintf(&b, ", %d", i.Year)
	}
	b.WriteString(")")

	a := i.Attributes
	switch i.Kind {
	case ItemKindTent:
		if a.Tent != nil {
			fmt.Fprintf(&b, " %d persons, %s, %s", a.Tent.Capacity, a.Tent.Season, a.Tent.Type)
		}
	case ItemKindTrangia:
		if a.Trangia != nil {
			fmt.Fprintf(&b, " %d burners, %s", a.Trangia.Burners, a.Trangia.FuelType)
		}
	case ItemKindRod:
		if a.Rod != nil {
			fmt.Fprintf(&b, " %.1fm %s", a.Rod.LengthM, a.Rod.Type)
		}
	case ItemKindNet:
		if a.Net != nil {
			fmt.Fprintf(&b, " size %s", a.Net.Size)
		}
	case ItemKindBait:
		if a.Bait != nil {
			fmt.Fprintf(&b, " %s x%d", a.Bait.Type, a.Bait.Quantity)
		}
	case ItemKindBackpack:
		if a.Backpack != nil {
			fmt.Fprintf(&b, " %dL %s", a.Backpack.VolumeL, a.Backpack.Type)
		}
	case ItemKindLantern:
		if a.Lantern != nil {
			fmt.Fprintf(&b, " %d lm, %s", a.Lantern.Lumens, a.Lantern.PowerSource)
		}
	case ItemKindSleepingBag:
		if a.SleepingBag != nil {
			fmt.Fprintf(&b, " %s, comfort %d°C", a.SleepingBag.Season, a.SleepingBag.ComfortTempC)
		}
	case ItemKindKayak, ItemKindRowBoat:
		if a.Boat != nil {
			fmt.Fprintf(&b, " %d seats, %.1fm", a.Boat.Seats, a.Boat.LengthM)
		}
	case ItemKindMotorBoat:
		if a.Boat != nil {
			fmt.Fprintf(&b, " %d seats, %d hp", a.Boat.Seats, a.Boat.Horsepower)
		}
	case ItemKindElectricBoat:
		if a.Boat != nil {
			fmt.Fprintf(&b, " %d seats, %.1f kWh", a.Boat.Seats, a.Boat.BatteryKWh)
		}
	}
	fmt.Fprintf(&b, " [%s] %s/h %s/day", i.Status, i.PricePerHour.StringFixed(2), i.PricePerDay.StringFixed(2))
	return b.String()
}

// Clone returns a deep copy so stored items never share attribute payloads with callers
func (i *Item) Clone() *Item {
	c := *i
	a := i.Attributes
	if a.Backpack != nil {
		v := *a.Backpack
		c.Attributes.Backpack = &v
	}
	if a.Lantern != nil {
		v := *a.Lantern
		c.Attributes.Lantern = &v
	}
	if a.SleepingBag != nil {
		v := *a.SleepingBag
		c.Attributes.SleepingBag = &v
	}
	if a.Tent != nil {
		v := *a.Tent
		c.Attributes.Tent = &v
	}
	if a.Trangia != nil {
		v := *a.Trangia
		c.Attributes.Trangia = &v
	}
	if a.Bait != nil {
		v := *a.Bait
		c.Attributes.Bait = &v
	}
	if a.Net != nil {
		v := *a.Net
		c.Attributes.Net = &v
	}
	if a.Rod != nil {
		v := *a.Rod
		c.Attributes.Rod = &v
	}
	if a.Boat != nil {
		v := *a.Boat
		c.Attributes.Boat = &v
	}
	return &c
}
