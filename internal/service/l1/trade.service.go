package l1_service

import (
	"context"
	"fmt"

	"github.com/amp1re/tinkoff-invest-bot/internal/logger"
	"github.com/amp1re/tinkoff-invest-bot/internal/repository"
)

type TradeService interface {
	Buy(ctx context.Context, input BuyInput) error
}

func NewTradeService(tinkoffRepository repository.TinkoffRepository) TradeService {
	return tradeServiceHandler{
		TinkoffRepository: tinkoffRepository,
	}
}

type tradeServiceHandler struct {
	TinkoffRepository repository.TinkoffRepository
}

type BuyInput struct {
	FIGI string
	// Lots is the plan quantity; Lot is shares per lot. The broker order is
	// placed for Lots * Lot shares.
	Lots int64
	Lot  int64
}

func (h tradeServiceHandler) Buy(ctx context.Context, input BuyInput) error {
	if input.Lots < 1 || input.Lot < 1 {
		return fmt.Errorf("failed to submit buy order for %s: lots=%d lot=%d", input.FIGI, input.Lots, input.Lot)
	}

	quantity := input.Lots * input.Lot
	orderID, err := h.TinkoffRepository.PostMarketBuy(ctx, input.FIGI, quantity)
	if err != nil {
		return fmt.Errorf("failed to submit buy order for %s: %w", input.FIGI, err)
	}

	logger.FromContext(ctx).Infow("submitted market buy",
		"figi", input.FIGI,
		"lots", input.Lots,
		"quantity", quantity,
		"orderId", orderID,
	)
	return nil
}
