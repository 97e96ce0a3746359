package cmd

import (
	"fmt"
	"time"

	"github.com/amp1re/tinkoff-invest-bot/internal"
	"github.com/amp1re/tinkoff-invest-bot/internal/app"
	"github.com/amp1re/tinkoff-invest-bot/internal/repository"
	l1_service "github.com/amp1re/tinkoff-invest-bot/internal/service/l1"
)

type Handler struct {
	Rebalancer app.RebalancerHandler
	Scheduler  *app.Scheduler
}

func InitializeDependencies() (*Handler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	tinkoffRepository := repository.NewTinkoffRepository(
		secrets.Tinkoff.Token,
		secrets.Tinkoff.AccountID,
		secrets.Tinkoff.Exchange,
		repository.DefaultTinkoffEndpoint,
	)
	benchmarkSource := repository.NewSmartlabRepository(
		secrets.Benchmark.IndexURL,
		secrets.Benchmark.TickersURL,
	)

	rebalancer := app.RebalancerHandler{
		BenchmarkSource:   benchmarkSource,
		TinkoffRepository: tinkoffRepository,
		BenchmarkService:  l1_service.NewBenchmarkService(l1_service.DefaultTableTrim()),
		SnapshotService:   l1_service.NewSnapshotService(),
		TradeService:      l1_service.NewTradeService(tinkoffRepository),
		OrderPacing:       time.Duration(secrets.OrderPacingSeconds) * time.Second,
	}

	return &Handler{
		Rebalancer: rebalancer,
		Scheduler:  app.NewScheduler(rebalancer, tinkoffRepository, secrets.Schedule),
	}, nil
}
