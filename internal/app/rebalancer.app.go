package app

import (
	"context"
	"fmt"
	"time"

	"github.com/amp1re/tinkoff-invest-bot/internal/domain"
	"github.com/amp1re/tinkoff-invest-bot/internal/logger"
	"github.com/amp1re/tinkoff-invest-bot/internal/repository"
	l1_service "github.com/amp1re/tinkoff-invest-bot/internal/service/l1"
	l3_service "github.com/amp1re/tinkoff-invest-bot/internal/service/l3"
)

type RebalancerHandler struct {
	BenchmarkSource   repository.BenchmarkSource
	TinkoffRepository repository.TinkoffRepository
	BenchmarkService  l1_service.BenchmarkService
	SnapshotService   l1_service.SnapshotService
	TradeService      l1_service.TradeService

	// OrderPacing is the delay between successive order submissions, kept
	// above the broker's rate limit.
	OrderPacing time.Duration
}

// ComputePlan runs the data half of one rebalancing pass: fetch the
// benchmark weights and the account state, assemble the snapshot, and derive
// the buy plan. Cash is refetched on every call so a long-running process
// never rebalances against a stale figure.
func (h RebalancerHandler) ComputePlan(ctx context.Context) (*l3_service.ComputeBuyPlanResponse, error) {
	log := logger.FromContext(ctx)

	weights := h.collectWeights(ctx)

	instruments, err := h.TinkoffRepository.ListShares(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	if len(instruments) == 0 {
		return nil, fmt.Errorf("share catalog is empty")
	}

	positions, err := h.TinkoffRepository.GetPositions(ctx)
	if err != nil {
		// A missing positions fetch degrades to an empty account, which
		// only ever under-reports the invested total.
		log.Warnw("failed to get positions, assuming none", "error", err)
		positions = nil
	}

	prices, err := h.TinkoffRepository.GetLastPrices(ctx, instrumentIDs(instruments))
	if err != nil {
		log.Warnw("failed to get last prices, rows stay unpriced", "error", err)
		prices = nil
	}

	cash, err := h.TinkoffRepository.GetCashBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash balance: %w", err)
	}

	snapshot, err := h.SnapshotService.Assemble(instruments, positions, prices)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble portfolio snapshot: %w", err)
	}

	response, err := l3_service.ComputeBuyPlan(l3_service.ComputeBuyPlanInput{
		Rows:          snapshot,
		Weights:       weights,
		AvailableCash: cash,
	})
	if err != nil {
		return nil, err
	}

	log.Infow("computed buy plan",
		"instruments", len(snapshot),
		"benchmarkWeights", len(weights),
		"cash", cash.String(),
		"planSize", len(response.Plan),
	)
	return response, nil
}

// RunPass executes one full pass: compute the plan, then submit one market
// buy per entry with a fixed pacing delay. Order failures are logged and do
// not abort the remaining entries.
func (h RebalancerHandler) RunPass(ctx context.Context) error {
	log := logger.FromContext(ctx)

	response, err := h.ComputePlan(ctx)
	if err != nil {
		return err
	}

	lotByFIGI := map[string]int64{}
	for _, row := range response.Rows {
		if row.FIGI != "" {
			lotByFIGI[row.FIGI] = row.Lot
		}
	}

	submitted := 0
	first := true
	for figi, lots := range response.Plan {
		// pace between submissions only; the last order needs no tail wait
		if !first && h.OrderPacing > 0 {
			time.Sleep(h.OrderPacing)
		}
		first = false

		err := h.TradeService.Buy(ctx, l1_service.BuyInput{
			FIGI: figi,
			Lots: lots,
			Lot:  lotByFIGI[figi],
		})
		if err != nil {
			log.Errorw("buy order failed", "figi", figi, "error", err)
		} else {
			submitted++
		}
	}

	log.Infow("rebalancing pass finished", "orders", len(response.Plan), "submitted", submitted)
	return nil
}

// collectWeights fetches and builds the benchmark weight table. Any failure
// degrades to an empty table: the pass still runs, produces no buys, and the
// next scheduled pass retries.
func (h RebalancerHandler) collectWeights(ctx context.Context) []domain.BenchmarkWeight {
	log := logger.FromContext(ctx)

	index, err := h.BenchmarkSource.FetchIndexTable(ctx)
	if err != nil {
		log.Warnw("failed to fetch index table", "error", err)
		return nil
	}
	tickers, err := h.BenchmarkSource.FetchTickerTable(ctx)
	if err != nil {
		log.Warnw("failed to fetch ticker table", "error", err)
		return nil
	}

	weights, err := h.BenchmarkService.BuildWeightTable(ctx, index, tickers)
	if err != nil {
		log.Warnw("failed to build weight table", "error", err)
		return nil
	}
	return weights
}

func instrumentIDs(instruments []domain.Instrument) []string {
	ids := make([]string, 0, len(instruments))
	for _, instrument := range instruments {
		ids = append(ids, instrument.FIGI)
	}
	return ids
}
