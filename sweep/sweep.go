package sweep

import (
	"caseflow/clock"
	"caseflow/domain/workitem"
	"context"

	cron "github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	// BatchSize bounds one scan pass; the sweep loops passes until a pass
	// comes back short.
	BatchSize = 500

	// batchLimiter spaces successive passes so a large backlog does not
	// monopolize the database.
	batchLimiter = rate.NewLimiter(rate.Limit(5), 1)

	SweepOnceFunc = SweepOnce
)

// StartCron schedules the deadline sweep. Work items expire on wall-clock
// deadlines, so this runs continuously rather than on demand.
func StartCron() {
	crontab := cron.New(cron.WithSeconds())
	crontab.AddFunc("*/5 * * * * ?", func() {
		SweepOnceFunc()
	})
	crontab.Start()
}

// SweepOnce expires every overdue work item in bounded batches. Per-item
// failures are handled inside ScanExpired; a failing batch ends the pass
// and the next tick retries.
func SweepOnce() {
	for {
		if err := batchLimiter.Wait(context.Background()); err != nil {
			return
		}

		now := clock.Now()
		expired, err := workitem.ScanExpiredFunc(now, BatchSize)
		if err != nil {
			logrus.Errorf("deadline sweep failed: %v", err)
			return
		}
		if len(expired) > 0 {
			logrus.Infof("deadline sweep expired %d work items", len(expired))
		}
		if len(expired) < BatchSize {
			return
		}
	}
}
