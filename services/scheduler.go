package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cricboard/league-system/repositories"
)

// defaultDeadlineGrace is how long after the entry deadline the trigger waits
// before generating groups, when no explicit generation time is set. It gives
// operators a review window for late approvals.
const defaultDeadlineGrace = 12 * time.Hour

// ScheduleAutoTrigger periodically generates group schedules for seasons
// whose generation time has arrived. Seasons that already have a schedule are
// skipped, so a tick is safe to repeat.
type ScheduleAutoTrigger struct {
	seasonRepo repositories.SeasonRepository
	schedules  ScheduleService
	clock      clockwork.Clock
	interval   time.Duration
	grace      time.Duration
	logger     *slog.Logger

	// ticking guards against overlapping runs when a tick outlasts the
	// interval.
	ticking sync.Mutex
}

func NewScheduleAutoTrigger(
	seasonRepo repositories.SeasonRepository,
	schedules ScheduleService,
	clock clockwork.Clock,
	interval time.Duration,
	logger *slog.Logger,
) *ScheduleAutoTrigger {
	return &ScheduleAutoTrigger{
		seasonRepo: seasonRepo,
		schedules:  schedules,
		clock:      clock,
		interval:   interval,
		grace:      defaultDeadlineGrace,
		logger:     logger,
	}
}

// Run ticks until the context is cancelled.
func (t *ScheduleAutoTrigger) Run(ctx context.Context) {
	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info("schedule auto-trigger started",
		slog.Duration("interval", t.interval))

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("schedule auto-trigger stopped")
			return
		case <-ticker.Chan():
			t.RunOnce(ctx)
		}
	}
}

// RunOnce processes every due season. A failure on one season is logged and
// does not block the rest.
func (t *ScheduleAutoTrigger) RunOnce(ctx context.Context) {
	if !t.ticking.TryLock() {
		t.logger.Warn("previous auto-trigger run still in progress, skipping tick")
		return
	}
	defer t.ticking.Unlock()

	now := t.clock.Now()
	seasons, err := t.seasonRepo.ListDueForScheduling(ctx, now, t.grace)
	if err != nil {
		t.logger.Error("failed to list seasons due for scheduling",
			slog.Any("error", err))
		return
	}

	for _, season := range seasons {
		generated, err := t.schedules.GenerateGroupsIfMissing(ctx, season.SeasonNumber)
		if err != nil {
			t.logger.Error("auto-trigger failed to generate groups",
				slog.Int("season", season.SeasonNumber),
				slog.Any("error", err))
			continue
		}
		if generated {
			t.logger.Info("auto-trigger generated group schedule",
				slog.Int("season", season.SeasonNumber))
		}
	}
}
