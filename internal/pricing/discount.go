package pricing

// Context carries the booking-wide facts that influence a ticket's discount.
// PartySize is the total ticket count of the booking; HasLoyalty is the
// purchasing user's persisted loyalty membership, never a client claim.
type Context struct {
	PartySize  int
	HasLoyalty bool
}

// BuildCandidates assembles the discount candidates for one ticket in
// construction order: the implicit none baseline, the age-category
// concession, the group discount, then loyalty. Adult tickets contribute no
// category candidate. The group candidate is a property of the whole booking,
// so it appears once per ticket regardless of how many tickets qualify.
func (r Rates) BuildCandidates(category Category, pctx Context) []Discount {
	candidates := []Discount{{Type: DiscountNone, Rate: 0}}

	switch category {
	case CategoryChild:
		candidates = append(candidates, Discount{Type: DiscountChild, Rate: r.Child})
	case CategorySenior:
		candidates = append(candidates, Discount{Type: DiscountSenior, Rate: r.Senior})
	}

	if pctx.PartySize > r.GroupThreshold {
		candidates = append(candidates, Discount{Type: DiscountGroup, Rate: r.Group})
	}

	if pctx.HasLoyalty {
		candidates = append(candidates, Discount{Type: DiscountLoyalty, Rate: r.Loyalty})
	}

	return candidates
}

// SelectBestDiscount picks the single candidate with the highest rate.
// On a rate tie a loyalty candidate wins; otherwise the first-seen maximum
// is kept. Discounts never compound. With no candidates it returns {none, 0}.
func SelectBestDiscount(candidates []Discount) Discount {
	best := Discount{Type: DiscountNone, Rate: 0}
	if len(candidates) == 0 {
		return best
	}

	best = candidates[0]
	for _, cur := range candidates[1:] {
		if cur.Rate > best.Rate {
			best = cur
			continue
		}
		if cur.Rate == best.Rate && cur.Type == DiscountLoyalty {
			best = cur
		}
	}
	return best
}
