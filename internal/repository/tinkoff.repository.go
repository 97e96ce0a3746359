package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amp1re/tinkoff-invest-bot/internal/domain"
	"github.com/amp1re/tinkoff-invest-bot/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultTinkoffEndpoint = "https://invest-public-api.tinkoff.ru/rest"

// TinkoffRepository is the brokerage collaborator. One handler serves one
// account; the account id is fixed at construction.
type TinkoffRepository interface {
	ListShares(ctx context.Context) ([]domain.Instrument, error)
	GetPositions(ctx context.Context) ([]domain.Position, error)
	GetLastPrices(ctx context.Context, figis []string) ([]domain.PriceQuote, error)
	GetCashBalance(ctx context.Context) (decimal.Decimal, error)
	PostMarketBuy(ctx context.Context, figi string, quantity int64) (string, error)
	GetTradingSchedule(ctx context.Context, from, to time.Time) ([]domain.TradingDay, error)
}

func NewTinkoffRepository(token, accountID, exchange, endpoint string) TinkoffRepository {
	if endpoint == "" {
		endpoint = DefaultTinkoffEndpoint
	}
	return &tinkoffRepositoryHandler{
		Token:     token,
		AccountID: accountID,
		Exchange:  exchange,
		Endpoint:  endpoint,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type tinkoffRepositoryHandler struct {
	Token     string
	AccountID string
	Exchange  string
	Endpoint  string
	Client    *http.Client
}

// The REST gateway exposes every gRPC method as
// POST {endpoint}/tinkoff.public.invest.api.contract.v1.{Service}/{Method}.
func (h *tinkoffRepositoryHandler) call(ctx context.Context, method string, request, response interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := h.Endpoint + "/tinkoff.public.invest.api.contract.v1." + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+h.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned status %d: %s", method, resp.StatusCode, string(snippet))
	}

	err = json.NewDecoder(resp.Body).Decode(response)
	if err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return nil
}

func (h *tinkoffRepositoryHandler) ListShares(ctx context.Context) ([]domain.Instrument, error) {
	request := struct {
		InstrumentStatus string `json:"instrumentStatus"`
	}{InstrumentStatus: "INSTRUMENT_STATUS_BASE"}

	response := struct {
		Instruments []struct {
			FIGI   string      `json:"figi"`
			Ticker string      `json:"ticker"`
			Lot    json.Number `json:"lot"`
		} `json:"instruments"`
	}{}

	err := h.call(ctx, "InstrumentsService/Shares", request, &response)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	out := make([]domain.Instrument, 0, len(response.Instruments))
	for _, share := range response.Instruments {
		lot, err := share.Lot.Int64()
		if err != nil || lot < 1 {
			log.Warnf("skipping share %s: bad lot size %q", share.FIGI, share.Lot.String())
			continue
		}
		out = append(out, domain.Instrument{
			FIGI:   share.FIGI,
			Ticker: share.Ticker,
			Lot:    lot,
		})
	}
	return out, nil
}

func (h *tinkoffRepositoryHandler) GetPositions(ctx context.Context) ([]domain.Position, error) {
	request := struct {
		AccountID string `json:"accountId"`
	}{AccountID: h.AccountID}

	response := struct {
		Securities []struct {
			FIGI    string      `json:"figi"`
			Balance json.Number `json:"balance"`
		} `json:"securities"`
	}{}

	err := h.call(ctx, "OperationsService/GetPositions", request, &response)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Position, 0, len(response.Securities))
	for _, security := range response.Securities {
		balance, err := security.Balance.Int64()
		if err != nil {
			balance = 0
		}
		out = append(out, domain.Position{FIGI: security.FIGI, Balance: balance})
	}
	return out, nil
}

func (h *tinkoffRepositoryHandler) GetLastPrices(ctx context.Context, figis []string) ([]domain.PriceQuote, error) {
	if len(figis) == 0 {
		return nil, fmt.Errorf("%w: empty instrument id list", domain.ErrInvalidRequest)
	}

	request := struct {
		InstrumentID []string `json:"instrumentId"`
	}{InstrumentID: figis}

	response := struct {
		LastPrices []struct {
			FIGI  string            `json:"figi"`
			Price domain.MoneyValue `json:"price"`
		} `json:"lastPrices"`
	}{}

	err := h.call(ctx, "MarketDataService/GetLastPrices", request, &response)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	out := make([]domain.PriceQuote, 0, len(response.LastPrices))
	for _, lastPrice := range response.LastPrices {
		price, err := lastPrice.Price.ToDecimal()
		if err != nil {
			log.Warnf("skipping price for %s: %v", lastPrice.FIGI, err)
			continue
		}
		out = append(out, domain.PriceQuote{FIGI: lastPrice.FIGI, Price: price})
	}
	return out, nil
}

// GetCashBalance returns the total uninvested currency amount of the account
// portfolio. Fetched fresh on every computation pass.
func (h *tinkoffRepositoryHandler) GetCashBalance(ctx context.Context) (decimal.Decimal, error) {
	request := struct {
		AccountID string `json:"accountId"`
	}{AccountID: h.AccountID}

	response := struct {
		TotalAmountCurrencies domain.MoneyValue `json:"totalAmountCurrencies"`
	}{}

	err := h.call(ctx, "OperationsService/GetPortfolio", request, &response)
	if err != nil {
		return decimal.Zero, err
	}

	return response.TotalAmountCurrencies.ToDecimal()
}

// PostMarketBuy submits a market buy of quantity shares. quantity is the
// absolute share count, not lots. Returns the broker's order id.
func (h *tinkoffRepositoryHandler) PostMarketBuy(ctx context.Context, figi string, quantity int64) (string, error) {
	if figi == "" || quantity < 1 {
		return "", fmt.Errorf("%w: figi=%q quantity=%d", domain.ErrInvalidRequest, figi, quantity)
	}

	request := struct {
		InstrumentID string `json:"instrumentId"`
		Quantity     int64  `json:"quantity"`
		Direction    string `json:"direction"`
		AccountID    string `json:"accountId"`
		OrderType    string `json:"orderType"`
		OrderID      string `json:"orderId"`
	}{
		InstrumentID: figi,
		Quantity:     quantity,
		Direction:    "ORDER_DIRECTION_BUY",
		AccountID:    h.AccountID,
		OrderType:    "ORDER_TYPE_MARKET",
		OrderID:      uuid.NewString(),
	}

	response := struct {
		OrderID               string `json:"orderId"`
		ExecutionReportStatus string `json:"executionReportStatus"`
	}{}

	err := h.call(ctx, "OrdersService/PostOrder", request, &response)
	if err != nil {
		return "", err
	}
	if response.ExecutionReportStatus == "EXECUTION_REPORT_STATUS_REJECTED" {
		return "", fmt.Errorf("order %s for %s rejected by broker", response.OrderID, figi)
	}
	return response.OrderID, nil
}

func (h *tinkoffRepositoryHandler) GetTradingSchedule(ctx context.Context, from, to time.Time) ([]domain.TradingDay, error) {
	request := struct {
		Exchange string `json:"exchange"`
		From     string `json:"from"`
		To       string `json:"to"`
	}{
		Exchange: h.exchange(),
		From:     from.Format(time.RFC3339),
		To:       to.Format(time.RFC3339),
	}

	response := struct {
		Exchanges []struct {
			Exchange string              `json:"exchange"`
			Days     []domain.TradingDay `json:"days"`
		} `json:"exchanges"`
	}{}

	err := h.call(ctx, "InstrumentsService/TradingSchedules", request, &response)
	if err != nil {
		return nil, err
	}

	if len(response.Exchanges) == 0 {
		return nil, fmt.Errorf("no schedule returned for exchange %s", h.exchange())
	}
	return response.Exchanges[0].Days, nil
}

func (h *tinkoffRepositoryHandler) exchange() string {
	if h.Exchange != "" {
		return h.Exchange
	}
	return "MOEX"
}
