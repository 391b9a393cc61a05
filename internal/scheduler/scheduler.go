// Package scheduler runs configured watchlists on cron schedules. Each
// watchlist run is one full pipeline batch with its own browser session, so
// concurrent runs never share browser state.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/dipu67/analyzer/internal/config"
	"github.com/dipu67/analyzer/internal/types"
)

// Runner executes one batch for a named watchlist.
type Runner func(ctx context.Context, list config.WatchlistConfig) (types.BatchResult, error)

// jobTimeout bounds one watchlist run end to end.
const jobTimeout = 30 * time.Minute

// Scheduler manages periodic watchlist jobs
type Scheduler struct {
	cron   *cron.Cron
	jobs   map[string]cron.EntryID
	runner Runner
}

// New creates a new scheduler
func New(runner Runner) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		jobs:   make(map[string]cron.EntryID),
		runner: runner,
	}
}

// AddWatchlist schedules a watchlist on its cron expression.
func (s *Scheduler) AddWatchlist(list config.WatchlistConfig) error {
	entryID, err := s.cron.AddFunc(list.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		log.Printf("[scheduler] Starting watchlist: %s", list.Name)
		start := time.Now()

		if _, err := s.runner(ctx, list); err != nil {
			log.Printf("[scheduler] Watchlist %s failed: %v", list.Name, err)
		} else {
			log.Printf("[scheduler] Watchlist %s completed in %v", list.Name, time.Since(start))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule watchlist %s: %w", list.Name, err)
	}

	s.jobs[list.Name] = entryID
	log.Printf("[scheduler] Added watchlist: %s (schedule: %s)", list.Name, list.Schedule)
	return nil
}

// RunAll executes every watchlist immediately, concurrently. Each run opens
// its own browser session; only the analyzer configuration is shared, and it
// is read-only.
func (s *Scheduler) RunAll(ctx context.Context, lists []config.WatchlistConfig) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, list := range lists {
		g.Go(func() error {
			if _, err := s.runner(ctx, list); err != nil {
				return fmt.Errorf("watchlist %s: %w", list.Name, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	log.Println("[scheduler] Starting scheduler")
	s.cron.Start()
}

// Stop halts the scheduler and returns a context that is done once running
// jobs finish.
func (s *Scheduler) Stop() context.Context {
	log.Println("[scheduler] Stopping scheduler")
	return s.cron.Stop()
}
