package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OrderPurger deletes orders created before a cutoff.
type OrderPurger interface {
	PurgeOlderThan(cutoff time.Time) (int64, error)
}

// StartOrderPurge schedules the removal of orders older than retention. spec
// is a standard five-field cron expression read in loc.
func StartOrderPurge(purger OrderPurger, spec string, retention time.Duration, loc *time.Location, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(spec, purgeJob(purger, retention, time.Now, logger)); err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("[OrderPurge] scheduled", zap.String("spec", spec), zap.Duration("retention", retention))
	return c, nil
}

func purgeJob(purger OrderPurger, retention time.Duration, now func() time.Time, logger *zap.Logger) func() {
	return func() {
		cutoff := now().Add(-retention)
		n, err := purger.PurgeOlderThan(cutoff)
		if err != nil {
			logger.Error("[OrderPurge] failed to delete old orders", zap.Time("cutoff", cutoff), zap.Error(err))
			return
		}
		logger.Info("[OrderPurge] old orders deleted", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	}
}
