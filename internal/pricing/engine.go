package pricing

import (
	"math"
	"strings"

	"boxoffice/internal/shared/errs"
)

// TicketRequest is one requested seat before pricing.
type TicketRequest struct {
	Section  string  `json:"section"`
	Row      string  `json:"row"`
	Seat     int     `json:"seat"`
	Category string  `json:"category"`
	BaseCost float64 `json:"base_cost"`
}

// PricedTicket is a ticket after discount resolution. FinalPrice is always
// FullPrice rounded down by exactly one discount, never a sum of rates.
type PricedTicket struct {
	Section             string       `json:"section"`
	Row                 string       `json:"row"`
	Seat                int          `json:"seat"`
	Category            Category     `json:"category"`
	BaseCost            float64      `json:"base_cost"`
	FullPrice           float64      `json:"full_price"`
	AppliedDiscountRate float64      `json:"applied_discount_rate"`
	AppliedDiscountType DiscountType `json:"applied_discount_type"`
	FinalPrice          float64      `json:"final_price"`
}

// Discount returns the applied discount as a summary pair.
func (t PricedTicket) Discount() Discount {
	return Discount{Type: t.AppliedDiscountType, Rate: t.AppliedDiscountRate}
}

// Engine prices tickets against an immutable configuration.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.Mode == "" {
		cfg.Mode = ModeSeat
	}
	return &Engine{cfg: cfg}
}

// Round2 rounds a monetary value half-up to 2 decimal places. Sums are
// computed over already-rounded per-ticket values, so rounding happens at
// every step rather than only at output.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FullPrice computes a ticket's pre-discount price. In seat mode the seat's
// own base cost is used when positive, otherwise the configured fallback.
// In zone mode the base cost is scaled by the section multiplier; unknown
// sections price at 1.0.
func (e *Engine) FullPrice(baseCost float64, section string) float64 {
	switch e.cfg.Mode {
	case ModeZone:
		mult, ok := e.cfg.ZoneMultipliers[strings.ToUpper(strings.TrimSpace(section))]
		if !ok {
			mult = 1.0
		}
		if baseCost <= 0 {
			baseCost = e.cfg.FallbackBasePrice
		}
		return Round2(baseCost * mult)
	default:
		if baseCost <= 0 {
			return Round2(e.cfg.FallbackBasePrice)
		}
		return Round2(baseCost)
	}
}

// PriceTicket prices one ticket: resolves the full price, selects the best
// applicable discount for the booking context, and applies it.
func (e *Engine) PriceTicket(req TicketRequest, pctx Context) (PricedTicket, error) {
	category := Category(strings.ToLower(strings.TrimSpace(req.Category)))
	if !category.IsValid() {
		return PricedTicket{}, errs.BadRequest("invalid category (child/senior/adult)")
	}

	fullPrice := e.FullPrice(req.BaseCost, req.Section)

	best := SelectBestDiscount(e.cfg.Rates.BuildCandidates(category, pctx))
	finalPrice := Round2(fullPrice * (1 - best.Rate))

	baseCost := req.BaseCost
	if baseCost <= 0 {
		baseCost = e.cfg.FallbackBasePrice
	}

	return PricedTicket{
		Section:             strings.ToUpper(strings.TrimSpace(req.Section)),
		Row:                 strings.ToUpper(strings.TrimSpace(req.Row)),
		Seat:                req.Seat,
		Category:            category,
		BaseCost:            Round2(baseCost),
		FullPrice:           fullPrice,
		AppliedDiscountRate: best.Rate,
		AppliedDiscountType: best.Type,
		FinalPrice:          finalPrice,
	}, nil
}

// BestTicket returns the priced ticket with the highest applied discount
// rate; on a tie a loyalty-discounted ticket is preferred. It is a summary
// label for the booking, not a recomputation. Returns false for an empty slice.
func BestTicket(tickets []PricedTicket) (PricedTicket, bool) {
	if len(tickets) == 0 {
		return PricedTicket{}, false
	}

	best := tickets[0]
	for _, cur := range tickets[1:] {
		if cur.AppliedDiscountRate > best.AppliedDiscountRate {
			best = cur
			continue
		}
		if cur.AppliedDiscountRate == best.AppliedDiscountRate &&
			cur.AppliedDiscountType == DiscountLoyalty {
			best = cur
		}
	}
	return best, true
}
