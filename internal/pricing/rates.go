package pricing

// DiscountType identifies which concession was applied to a ticket.
type DiscountType string

const (
	DiscountNone    DiscountType = "none"
	DiscountChild   DiscountType = "child"
	DiscountSenior  DiscountType = "senior"
	DiscountGroup   DiscountType = "group"
	DiscountLoyalty DiscountType = "loyalty"
)

// Discount pairs a discount type with its rate in [0,1).
type Discount struct {
	Type DiscountType `json:"type"`
	Rate float64      `json:"rate"`
}

// Category is a ticket age category.
type Category string

const (
	CategoryChild  Category = "child"
	CategorySenior Category = "senior"
	CategoryAdult  Category = "adult"
)

// IsValid reports whether the category is one of child/senior/adult.
func (c Category) IsValid() bool {
	switch c {
	case CategoryChild, CategorySenior, CategoryAdult:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Mode selects where a ticket's full price comes from.
type Mode string

const (
	// ModeSeat uses the seat's own base cost, falling back to
	// FallbackBasePrice when the request carries none.
	ModeSeat Mode = "seat"
	// ModeZone multiplies the base cost by a per-section multiplier.
	ModeZone Mode = "zone"
)

// Rates is the discount rate table. It is injected into the engine rather
// than read from a package variable so tests can vary it.
type Rates struct {
	Child   float64
	Senior  float64
	Group   float64
	Loyalty float64

	// GroupThreshold is the party size a booking must exceed for the
	// group discount to apply.
	GroupThreshold int
}

// Config is the full, immutable pricing configuration.
type Config struct {
	Rates             Rates
	Mode              Mode
	FallbackBasePrice float64
	ZoneMultipliers   map[string]float64
}

// DefaultRates returns the house rate table.
func DefaultRates() Rates {
	return Rates{
		Child:          0.20,
		Senior:         0.15,
		Group:          0.10,
		Loyalty:        0.10,
		GroupThreshold: 9,
	}
}

// DefaultZoneMultipliers returns the hall's section price multipliers.
// Sections not listed price at 1.0.
func DefaultZoneMultipliers() map[string]float64 {
	return map[string]float64{
		"STALLS": 1.0,
		"LBAL":   0.8,
		"RBAL":   0.8,
		"SBALC":  0.7,
	}
}

// DefaultConfig returns the production pricing configuration: seat-supplied
// base cost mode with a flat fallback price.
func DefaultConfig() Config {
	return Config{
		Rates:             DefaultRates(),
		Mode:              ModeSeat,
		FallbackBasePrice: 50,
		ZoneMultipliers:   DefaultZoneMultipliers(),
	}
}
