package app

import (
	"context"
	"time"

	"github.com/amp1re/tinkoff-invest-bot/internal/logger"
	"github.com/amp1re/tinkoff-invest-bot/internal/repository"
	"github.com/robfig/cron/v3"
)

// Scheduler wakes once per cron entry, checks the exchange calendar, and
// runs one rebalancing pass on trading days. A failed pass is logged and the
// loop waits for the next wake-up; nothing short of process termination
// stops it.
type Scheduler struct {
	Rebalancer        RebalancerHandler
	TinkoffRepository repository.TinkoffRepository
	Schedule          string

	cron *cron.Cron
}

func NewScheduler(rebalancer RebalancerHandler, tinkoffRepository repository.TinkoffRepository, schedule string) *Scheduler {
	return &Scheduler{
		Rebalancer:        rebalancer,
		TinkoffRepository: tinkoffRepository,
		Schedule:          schedule,
		cron:              cron.New(cron.WithSeconds()),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	log := logger.FromContext(ctx)

	_, err := s.cron.AddFunc(s.Schedule, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Infow("scheduler started", "schedule", s.Schedule)
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOnce(ctx context.Context) {
	log := logger.FromContext(ctx)

	// The cron chain does not recover job panics; without this a single
	// bad pass would take the whole process down.
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("rebalancing pass panicked", "panic", r)
		}
	}()

	tradingDay, err := s.isTradingDay(ctx)
	if err != nil {
		log.Errorw("trading schedule check failed, skipping pass", "error", err)
		return
	}
	if !tradingDay {
		log.Infow("not a trading day, skipping pass")
		return
	}

	err = s.Rebalancer.RunPass(ctx)
	if err != nil {
		log.Errorw("rebalancing pass failed", "error", err)
	}
}

func (s *Scheduler) isTradingDay(ctx context.Context) (bool, error) {
	now := time.Now()
	days, err := s.TinkoffRepository.GetTradingSchedule(ctx, now, now)
	if err != nil {
		return false, err
	}
	for _, day := range days {
		if day.IsTradingDay {
			return true, nil
		}
	}
	return false, nil
}
