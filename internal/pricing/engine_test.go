package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 50.0, Round2(50))
	assert.Equal(t, 33.33, Round2(99.99/3))
}

func TestEngine_FullPrice(t *testing.T) {
	t.Run("seat mode uses the supplied base cost", func(t *testing.T) {
		engine := NewEngine(DefaultConfig())

		assert.Equal(t, 42.5, engine.FullPrice(42.5, "STALLS"))
	})

	t.Run("seat mode falls back when base cost is missing", func(t *testing.T) {
		engine := NewEngine(DefaultConfig())

		assert.Equal(t, 50.0, engine.FullPrice(0, "STALLS"))
		assert.Equal(t, 50.0, engine.FullPrice(-1, "STALLS"))
	})

	t.Run("zone mode scales by the section multiplier", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Mode = ModeZone
		engine := NewEngine(cfg)

		assert.Equal(t, 50.0, engine.FullPrice(50, "STALLS"))
		assert.Equal(t, 40.0, engine.FullPrice(50, "LBAL"))
		assert.Equal(t, 40.0, engine.FullPrice(50, "RBAL"))
		assert.Equal(t, 35.0, engine.FullPrice(50, "SBALC"))
	})

	t.Run("zone mode prices unknown sections at full multiplier", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Mode = ModeZone
		engine := NewEngine(cfg)

		assert.Equal(t, 50.0, engine.FullPrice(50, "PIT"))
	})

	t.Run("zone mode normalizes the section name", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Mode = ModeZone
		engine := NewEngine(cfg)

		assert.Equal(t, 40.0, engine.FullPrice(50, "  lbal "))
	})
}

func TestEngine_PriceTicket(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("rejects an unknown category", func(t *testing.T) {
		_, err := engine.PriceTicket(TicketRequest{Category: "infant"}, Context{PartySize: 1})

		require.Error(t, err)
	})

	t.Run("adult ticket with no context prices at full", func(t *testing.T) {
		ticket, err := engine.PriceTicket(TicketRequest{
			Section:  "stalls",
			Row:      "d",
			Seat:     7,
			Category: "Adult",
			BaseCost: 60,
		}, Context{PartySize: 2})
		require.NoError(t, err)

		assert.Equal(t, "STALLS", ticket.Section)
		assert.Equal(t, "D", ticket.Row)
		assert.Equal(t, CategoryAdult, ticket.Category)
		assert.Equal(t, 60.0, ticket.FullPrice)
		assert.Equal(t, DiscountNone, ticket.AppliedDiscountType)
		assert.Equal(t, 60.0, ticket.FinalPrice)
	})

	t.Run("child rate applied and rounded per ticket", func(t *testing.T) {
		ticket, err := engine.PriceTicket(TicketRequest{
			Section:  "STALLS",
			Row:      "A",
			Seat:     1,
			Category: "child",
			BaseCost: 33.33,
		}, Context{PartySize: 2})
		require.NoError(t, err)

		assert.Equal(t, DiscountChild, ticket.AppliedDiscountType)
		assert.Equal(t, 0.20, ticket.AppliedDiscountRate)
		assert.Equal(t, 26.66, ticket.FinalPrice) // 33.33 * 0.8 = 26.664
	})

	t.Run("loyalty beats group on the tie for an adult in a large party", func(t *testing.T) {
		ticket, err := engine.PriceTicket(TicketRequest{
			Section:  "STALLS",
			Row:      "B",
			Seat:     3,
			Category: "adult",
			BaseCost: 50,
		}, Context{PartySize: 10, HasLoyalty: true})
		require.NoError(t, err)

		assert.Equal(t, DiscountLoyalty, ticket.AppliedDiscountType)
		assert.Equal(t, 45.0, ticket.FinalPrice)
	})

	t.Run("senior beats loyalty and group outright", func(t *testing.T) {
		ticket, err := engine.PriceTicket(TicketRequest{
			Section:  "STALLS",
			Row:      "B",
			Seat:     4,
			Category: "senior",
			BaseCost: 50,
		}, Context{PartySize: 10, HasLoyalty: true})
		require.NoError(t, err)

		assert.Equal(t, DiscountSenior, ticket.AppliedDiscountType)
		assert.Equal(t, 42.5, ticket.FinalPrice)
	})

	t.Run("missing base cost uses the fallback before discounting", func(t *testing.T) {
		ticket, err := engine.PriceTicket(TicketRequest{
			Section:  "STALLS",
			Row:      "C",
			Seat:     9,
			Category: "child",
		}, Context{PartySize: 1})
		require.NoError(t, err)

		assert.Equal(t, 50.0, ticket.BaseCost)
		assert.Equal(t, 50.0, ticket.FullPrice)
		assert.Equal(t, 40.0, ticket.FinalPrice)
	})

	t.Run("injected rate table overrides the house rates", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rates.Child = 0.50
		custom := NewEngine(cfg)

		ticket, err := custom.PriceTicket(TicketRequest{
			Section:  "STALLS",
			Row:      "A",
			Seat:     1,
			Category: "child",
			BaseCost: 40,
		}, Context{PartySize: 1})
		require.NoError(t, err)

		assert.Equal(t, 20.0, ticket.FinalPrice)
	})
}

func TestBestTicket(t *testing.T) {
	t.Run("empty slice reports no best", func(t *testing.T) {
		_, ok := BestTicket(nil)

		assert.False(t, ok)
	})

	t.Run("highest applied rate wins", func(t *testing.T) {
		best, ok := BestTicket([]PricedTicket{
			{Seat: 1, AppliedDiscountType: DiscountGroup, AppliedDiscountRate: 0.10},
			{Seat: 2, AppliedDiscountType: DiscountChild, AppliedDiscountRate: 0.20},
			{Seat: 3, AppliedDiscountType: DiscountNone, AppliedDiscountRate: 0},
		})
		require.True(t, ok)

		assert.Equal(t, 2, best.Seat)
	})

	t.Run("loyalty preferred on a tie", func(t *testing.T) {
		best, ok := BestTicket([]PricedTicket{
			{Seat: 1, AppliedDiscountType: DiscountGroup, AppliedDiscountRate: 0.10},
			{Seat: 2, AppliedDiscountType: DiscountLoyalty, AppliedDiscountRate: 0.10},
		})
		require.True(t, ok)

		assert.Equal(t, 2, best.Seat)
	})
}
