package l1_service

import (
	"fmt"

	"github.com/amp1re/tinkoff-invest-bot/internal/domain"
)

type SnapshotService interface {
	// Assemble left-joins positions and prices onto the instrument catalog
	// by FIGI, yielding one row per catalog instrument. Missing balance
	// defaults to 0; a missing price leaves the row flagged unpriced rather
	// than priced at zero. A duplicate FIGI in the catalog is rejected.
	Assemble(instruments []domain.Instrument, positions []domain.Position, prices []domain.PriceQuote) ([]domain.PortfolioRow, error)
}

func NewSnapshotService() SnapshotService {
	return snapshotServiceHandler{}
}

type snapshotServiceHandler struct{}

func (h snapshotServiceHandler) Assemble(instruments []domain.Instrument, positions []domain.Position, prices []domain.PriceQuote) ([]domain.PortfolioRow, error) {
	balanceByFIGI := map[string]int64{}
	for _, position := range positions {
		balanceByFIGI[position.FIGI] = position.Balance
	}

	priceByFIGI := map[string]domain.PriceQuote{}
	for _, quote := range prices {
		priceByFIGI[quote.FIGI] = quote
	}

	seen := map[string]bool{}
	rows := make([]domain.PortfolioRow, 0, len(instruments))
	for _, instrument := range instruments {
		if seen[instrument.FIGI] {
			return nil, fmt.Errorf("%w: duplicate instrument id %s in catalog", domain.ErrInvalidRequest, instrument.FIGI)
		}
		seen[instrument.FIGI] = true

		row := domain.PortfolioRow{
			Ticker:  instrument.Ticker,
			FIGI:    instrument.FIGI,
			Lot:     instrument.Lot,
			Balance: balanceByFIGI[instrument.FIGI],
		}
		if quote, ok := priceByFIGI[instrument.FIGI]; ok {
			row.Price = quote.Price
			row.HasPrice = true
		}
		rows = append(rows, row)
	}

	return rows, nil
}
