// Package scheduler runs recurring scans in watch mode.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"StockScan/internal/scanner"
)

// Scheduler triggers a full scan cycle on a cron expression.
type Scheduler struct {
	Cron          *cron.Cron
	Scanner       *scanner.Scanner
	Ctx           context.Context
	WatchlistPath string
	OutputPath    string
	Notify        bool
}

// NewScheduler creates a scheduler bound to one scanner and watchlist.
func NewScheduler(ctx context.Context, s *scanner.Scanner, watchlistPath, outputPath string, notify bool) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Scanner:       s,
		Ctx:           ctx,
		WatchlistPath: watchlistPath,
		OutputPath:    outputPath,
		Notify:        notify,
	}
}

// Register adds the scan task under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

func (s *Scheduler) scanTask() {
	log.Info().Msg("scheduled scan triggered")
	if err := s.Scanner.Run(s.Ctx, s.WatchlistPath, s.OutputPath, s.Notify); err != nil {
		log.Error().Err(err).Msg("scheduled scan failed")
	}
}

// RunNow executes the scan task immediately, outside the schedule.
func (s *Scheduler) RunNow() { s.scanTask() }

func (s *Scheduler) Start() { s.Cron.Start() }

func (s *Scheduler) Stop() {
	ctx := s.Cron.Stop()
	<-ctx.Done()
}
