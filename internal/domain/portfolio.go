package domain

import "github.com/shopspring/decimal"

// PortfolioRow is one instrument's view of the merged benchmark/account
// state, plus the metrics the rebalancing engine derives from it. Rows are
// rebuilt from scratch on every computation pass and never mutated outside
// the engine.
type PortfolioRow struct {
	Ticker  string `json:"ticker"`
	FIGI    string `json:"figi"`
	Lot     int64  `json:"lot"`
	Balance int64  `json:"balance"`

	// Price is the last known price. HasPrice=false means the quote fetch
	// had no entry for this FIGI; such rows stay in the snapshot but are
	// excluded from buy eligibility.
	Price    decimal.Decimal `json:"price"`
	HasPrice bool            `json:"hasPrice"`

	// Weight is the benchmark target percentage, present only when the
	// ticker matched a benchmark constituent.
	Weight    decimal.Decimal `json:"weight"`
	HasWeight bool            `json:"hasWeight"`

	// Computed by the rebalancing engine.
	LotPrice       decimal.Decimal `json:"lotPrice"`
	PositionValue  decimal.Decimal `json:"positionValue"`
	PositionWeight decimal.Decimal `json:"positionWeight"`
	IdealValue     decimal.Decimal `json:"idealValue"`
}

// BuyPlan maps FIGI to the number of lots to buy. Entries exist only for
// buy-eligible rows and are always >= 1. Iteration order carries no meaning.
type BuyPlan map[string]int64
