package l3_service

import (
	"fmt"

	"github.com/amp1re/tinkoff-invest-bot/internal/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

type ComputeBuyPlanInput struct {
	// Rows is the assembled portfolio snapshot, one row per catalog
	// instrument.
	Rows []domain.PortfolioRow
	// Weights is the benchmark target weight table, joined onto Rows by
	// ticker.
	Weights []domain.BenchmarkWeight
	// AvailableCash is the uninvested cash for this pass, fetched once and
	// held fixed across all rows.
	AvailableCash decimal.Decimal
}

type ComputeBuyPlanResponse struct {
	Plan domain.BuyPlan
	// Rows carries the enriched per-instrument metrics, including rows for
	// benchmark tickers with no catalog instrument. Useful for inspection;
	// the execution driver only consumes Plan.
	Rows []domain.PortfolioRow
}

// ComputeBuyPlan merges the benchmark weight table with the portfolio
// snapshot, measures every instrument's value deficit against its ideal
// allocation, and derives how many lots of each to buy without over-spending
// the available cash. Pure: no state survives the call and the inputs are
// not mutated, so identical inputs always yield an identical plan.
func ComputeBuyPlan(in ComputeBuyPlanInput) (*ComputeBuyPlanResponse, error) {
	if in.AvailableCash.IsNegative() {
		return nil, fmt.Errorf("%w: available cash is %s", domain.ErrInvalidCashBalance, in.AvailableCash.String())
	}

	rows := joinWeights(in.Rows, in.Weights)

	// Value every priced position. Unpriced rows contribute nothing to the
	// invested total and can never become eligible.
	totalInvested := decimal.Zero
	for i := range rows {
		if !rows[i].HasPrice {
			continue
		}
		rows[i].LotPrice = rows[i].Price.Mul(decimal.NewFromInt(rows[i].Lot))
		rows[i].PositionValue = rows[i].Price.Mul(decimal.NewFromInt(rows[i].Balance))
		totalInvested = totalInvested.Add(rows[i].PositionValue)
	}

	// The capital base is fixed for the whole pass.
	portfolioBase := totalInvested.Add(in.AvailableCash)

	plan := domain.BuyPlan{}
	for i := range rows {
		row := &rows[i]

		if portfolioBase.IsPositive() {
			row.PositionWeight = row.PositionValue.Div(portfolioBase).Mul(oneHundred)
			if row.HasWeight {
				row.IdealValue = row.Weight.Div(oneHundred).Mul(portfolioBase)
			}
		}

		if !row.HasWeight || !row.HasPrice || row.FIGI == "" || row.Lot < 1 {
			continue
		}

		// Fractional surplus is never carried between rows.
		deficit := row.IdealValue.Sub(row.PositionValue).Floor()

		// A single lot's worth of deficit is not enough: the strict
		// deficit > lot_price threshold skips marginal purchases. A zero
		// lot price (quote of 0) can never be bought into either.
		if !row.LotPrice.IsPositive() || !deficit.IsPositive() ||
			row.LotPrice.GreaterThan(in.AvailableCash) || deficit.LessThanOrEqual(row.LotPrice) {
			continue
		}

		lots := deficit.Div(row.LotPrice).Floor().IntPart()
		if lots < 1 {
			// Only reachable at exact boundary values of the division;
			// such rows are excluded rather than ordered at zero lots.
			continue
		}
		plan[row.FIGI] = lots
	}

	return &ComputeBuyPlanResponse{Plan: plan, Rows: rows}, nil
}

// joinWeights left-joins the benchmark weight table onto the snapshot by
// ticker. Benchmark tickers with no catalog instrument are appended as
// weight-only rows so they surface in diagnostics; they carry no lot size or
// price and can never be bought.
func joinWeights(snapshot []domain.PortfolioRow, weights []domain.BenchmarkWeight) []domain.PortfolioRow {
	weightByTicker := map[string]decimal.Decimal{}
	for _, weight := range weights {
		weightByTicker[weight.Ticker] = weight.Weight
	}

	rows := make([]domain.PortfolioRow, len(snapshot))
	copy(rows, snapshot)

	matched := map[string]bool{}
	for i := range rows {
		if weight, ok := weightByTicker[rows[i].Ticker]; ok {
			rows[i].Weight = weight
			rows[i].HasWeight = true
			matched[rows[i].Ticker] = true
		}
	}

	for _, weight := range weights {
		if !matched[weight.Ticker] {
			rows = append(rows, domain.PortfolioRow{
				Ticker:    weight.Ticker,
				Weight:    weight.Weight,
				HasWeight: true,
			})
		}
	}

	return rows
}
