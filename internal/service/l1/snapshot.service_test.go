package l1_service

import (
	"testing"

	"github.com/amp1re/tinkoff-invest-bot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_snapshotServiceHandler_Assemble(t *testing.T) {
	handler := NewSnapshotService()

	instruments := []domain.Instrument{
		{FIGI: "figi-sber", Ticker: "SBER", Lot: 10},
		{FIGI: "figi-gazp", Ticker: "GAZP", Lot: 100},
	}

	t.Run("joins positions and prices on figi", func(t *testing.T) {
		rows, err := handler.Assemble(
			instruments,
			[]domain.Position{{FIGI: "figi-sber", Balance: 20}},
			[]domain.PriceQuote{
				{FIGI: "figi-sber", Price: decimal.NewFromInt(310)},
				{FIGI: "figi-gazp", Price: decimal.NewFromInt(128)},
			},
		)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		require.Equal(t, int64(20), rows[0].Balance)
		require.True(t, rows[0].HasPrice)
		require.True(t, rows[0].Price.Equal(decimal.NewFromInt(310)))
	})

	t.Run("missing balance defaults to zero", func(t *testing.T) {
		rows, err := handler.Assemble(instruments, nil, []domain.PriceQuote{
			{FIGI: "figi-gazp", Price: decimal.NewFromInt(128)},
		})
		require.NoError(t, err)

		require.Equal(t, int64(0), rows[0].Balance)
		require.Equal(t, int64(0), rows[1].Balance)
	})

	t.Run("missing price flags the row, never zero-prices it", func(t *testing.T) {
		rows, err := handler.Assemble(instruments, nil, []domain.PriceQuote{
			{FIGI: "figi-sber", Price: decimal.NewFromInt(310)},
		})
		require.NoError(t, err)

		require.True(t, rows[0].HasPrice)
		require.False(t, rows[1].HasPrice)
	})

	t.Run("fully empty inputs produce an empty snapshot", func(t *testing.T) {
		rows, err := handler.Assemble(nil, nil, nil)
		require.NoError(t, err)
		require.Empty(t, rows)
	})

	t.Run("duplicate figi in catalog is rejected", func(t *testing.T) {
		_, err := handler.Assemble(
			append(instruments, domain.Instrument{FIGI: "figi-sber", Ticker: "SBER", Lot: 10}),
			nil, nil,
		)
		require.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}
