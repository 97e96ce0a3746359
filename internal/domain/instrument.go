package domain

import "github.com/shopspring/decimal"

// Instrument is one entry of the broker's share catalog. Immutable once
// fetched; FIGI is globally unique, Ticker unique within a snapshot.
type Instrument struct {
	FIGI   string `json:"figi"`
	Ticker string `json:"ticker"`
	// Lot is the number of shares per tradable lot, always >= 1.
	Lot int64 `json:"lot"`
}

// Position is the currently held balance for one instrument.
type Position struct {
	FIGI    string `json:"figi"`
	Balance int64  `json:"balance"`
}

// PriceQuote is the last known price for one instrument, in currency units.
type PriceQuote struct {
	FIGI  string          `json:"figi"`
	Price decimal.Decimal `json:"price"`
}

// TradingDay is one entry of the exchange trading schedule.
type TradingDay struct {
	Date         string `json:"date"`
	IsTradingDay bool   `json:"isTradingDay"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}
