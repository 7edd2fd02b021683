// Package jobs runs scheduled maintenance with robfig/cron.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-booking/internal/config"
	"github.com/iliyamo/studio-booking/internal/schedule"
)

// SlotPruner deletes blocks dated before a cutoff.
type SlotPruner interface {
	DeleteBefore(ctx context.Context, cutoff schedule.Date) (int64, error)
}

// LeadPruner deletes leads created before a cutoff.
type LeadPruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Retention prunes old blocked slots and leads.
type Retention struct {
	Slots SlotPruner
	Leads LeadPruner
	Cfg   config.JobsConfig
	Loc   *time.Location
	Log   *zap.Logger
	Now   func() time.Time
}

func NewRetention(slots SlotPruner, leads LeadPruner, cfg config.JobsConfig, loc *time.Location, log *zap.Logger) *Retention {
	if loc == nil {
		loc = time.Local
	}
	return &Retention{Slots: slots, Leads: leads, Cfg: cfg, Loc: loc, Log: log.Named("retention"), Now: time.Now}
}

// Run performs one sweep.  A non-positive retention disables that half.
func (r *Retention) Run(ctx context.Context) {
	now := r.Now().In(r.Loc)
	if r.Cfg.SlotRetentionDays > 0 && r.Slots != nil {
		cutoff := schedule.DateOf(now).AddDays(-r.Cfg.SlotRetentionDays)
		n, err := r.Slots.DeleteBefore(ctx, cutoff)
		if err != nil {
			r.Log.Error("prune slots failed", zap.Error(err))
		} else {
			r.Log.Info("pruned slots", zap.Int64("rows", n), zap.Stringer("before", cutoff))
		}
	}
	if r.Cfg.LeadRetentionDays > 0 && r.Leads != nil {
		cutoff := now.AddDate(0, 0, -r.Cfg.LeadRetentionDays)
		n, err := r.Leads.DeleteBefore(ctx, cutoff)
		if err != nil {
			r.Log.Error("prune leads failed", zap.Error(err))
		} else {
			r.Log.Info("pruned leads", zap.Int64("rows", n), zap.Time("before", cutoff))
		}
	}
}

// Start schedules Run on cfg.RetentionSpec and returns the running cron,
// which the caller stops on shutdown.
func (r *Retention) Start() (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(r.Loc))
	_, err := c.AddFunc(r.Cfg.RetentionSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		r.Run(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
