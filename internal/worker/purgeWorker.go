package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// CancelledPurger removes cancelled records whose last update is older than
// the given cutoff and reports how many went away.
type CancelledPurger interface {
	PurgeCancelled(ctx context.Context, before time.Time) (int64, error)
}

// PurgeWorker periodically hard-deletes cancelled records past their
// retention window. Cancellation itself is always a soft status flip; only
// this worker physically removes rows.
type PurgeWorker struct {
	name      string
	purger    CancelledPurger
	interval  time.Duration
	retention time.Duration
}

func NewPurgeWorker(name string, purger CancelledPurger, interval, retention time.Duration) *PurgeWorker {
	return &PurgeWorker{
		name:      name,
		purger:    purger,
		interval:  interval,
		retention: retention,
	}
}

func (w *PurgeWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Infof("Purge worker started: %s", w.name)

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("Purge worker stopped: %s", w.name)
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *PurgeWorker) purge(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)

	purged, err := w.purger.PurgeCancelled(ctx, cutoff)
	if err != nil {
		logrus.Errorf("Purge %s failed: %v", w.name, err)
		return
	}

	if purged > 0 {
		logrus.WithFields(logrus.Fields{
			"worker": w.name,
			"purged": purged,
			"cutoff": cutoff,
		}).Info("Purged cancelled records")
	}
}
