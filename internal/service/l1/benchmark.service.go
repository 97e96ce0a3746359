package l1_service

import (
	"context"
	"fmt"
	"strings"

	"github.com/amp1re/tinkoff-invest-bot/internal/domain"
	"github.com/amp1re/tinkoff-invest-bot/internal/logger"
	"github.com/shopspring/decimal"
)

// TableTrim strips the decorative rows and columns the source page wraps
// around the actual constituent data. Defaults match the smart-lab index
// page layout.
type TableTrim struct {
	SkipRows         int
	SkipStartColumns int
	SkipEndColumns   int
}

func DefaultTableTrim() TableTrim {
	return TableTrim{SkipRows: 1, SkipStartColumns: 1, SkipEndColumns: 2}
}

type BenchmarkService interface {
	// BuildWeightTable turns the raw index table and the raw name-to-ticker
	// table into a clean benchmark weight sequence. Rows with no ticker
	// match or an unparseable weight are dropped with a diagnostic, never
	// failing the batch. Empty input yields an empty result, not an error.
	BuildWeightTable(ctx context.Context, index, tickers domain.RawTable) ([]domain.BenchmarkWeight, error)
}

func NewBenchmarkService(trim TableTrim) BenchmarkService {
	return benchmarkServiceHandler{
		Trim: trim,
		// Column labels on the smart-lab shares listing.
		NameColumn:   "Название",
		TickerColumn: "Тикер",
	}
}

type benchmarkServiceHandler struct {
	Trim         TableTrim
	NameColumn   string
	TickerColumn string
}

func (h benchmarkServiceHandler) BuildWeightTable(ctx context.Context, index, tickers domain.RawTable) ([]domain.BenchmarkWeight, error) {
	log := logger.FromContext(ctx)

	if index.Empty() {
		return []domain.BenchmarkWeight{}, nil
	}

	tickerByName, err := h.tickerIndex(tickers)
	if err != nil {
		return nil, err
	}

	out := []domain.BenchmarkWeight{}
	for i, row := range index.Rows {
		if i < h.Trim.SkipRows {
			continue
		}

		name, weightRaw, ok := h.trimRow(row)
		if !ok {
			log.Warnw("dropping malformed index row", "row", row)
			continue
		}

		ticker, ok := tickerByName[name]
		if !ok {
			log.Warnw("dropping index row with no ticker match", "name", name)
			continue
		}

		weight, err := parseWeight(weightRaw)
		if err != nil {
			log.Warnw("dropping index row", "name", name, "error", err)
			continue
		}

		out = append(out, domain.BenchmarkWeight{Ticker: ticker, Weight: weight})
	}

	return out, nil
}

// trimRow cuts the configured leading/trailing columns and returns the
// display name and raw weight string, the first two surviving columns.
func (h benchmarkServiceHandler) trimRow(row []string) (name, weight string, ok bool) {
	start := h.Trim.SkipStartColumns
	end := len(row) - h.Trim.SkipEndColumns
	if end-start < 2 {
		return "", "", false
	}
	trimmed := row[start:end]
	return trimmed[0], trimmed[1], true
}

// tickerIndex builds the display-name-to-ticker lookup from the shares
// listing table, locating both columns by header label.
func (h benchmarkServiceHandler) tickerIndex(tickers domain.RawTable) (map[string]string, error) {
	nameCol, tickerCol := -1, -1
	for i, header := range tickers.Header {
		switch header {
		case h.NameColumn:
			nameCol = i
		case h.TickerColumn:
			tickerCol = i
		}
	}
	if nameCol == -1 || tickerCol == -1 {
		return nil, fmt.Errorf("ticker table missing %q or %q column", h.NameColumn, h.TickerColumn)
	}

	out := map[string]string{}
	for _, row := range tickers.Rows {
		if len(row) <= nameCol || len(row) <= tickerCol {
			continue
		}
		if row[nameCol] == "" || row[tickerCol] == "" {
			continue
		}
		out[row[nameCol]] = row[tickerCol]
	}
	return out, nil
}

// parseWeight strips the trailing % and parses the remainder as a decimal.
func parseWeight(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasSuffix(trimmed, "%") {
		return decimal.Zero, fmt.Errorf("%w: %q has no %% suffix", domain.ErrMalformedWeight, raw)
	}
	weight, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(trimmed, "%")))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrMalformedWeight, raw)
	}
	if weight.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", domain.ErrMalformedWeight, raw)
	}
	return weight, nil
}
