package outbox

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	dispatcher *Dispatcher
	interval   time.Duration
	log        *zap.Logger
}

func NewScheduler(d *Dispatcher, intervalSec int, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		dispatcher: d,
		interval:   time.Duration(intervalSec) * time.Second,
		log:        log.Named("outbox_scheduler"),
	}
}

// Start runs the dispatcher on every tick until ctx is done. The returned
// channel is closed once the loop has stopped.
func (s *Scheduler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info("outbox scheduler stopped")
				return
			case <-ticker.C:
				n, err := s.dispatcher.DispatchOnce(ctx)
				if err != nil {
					s.log.Error("outbox dispatch error", zap.Error(err))
				} else if n > 0 {
					s.log.Debug("outbox dispatch processed messages", zap.Int("count", n))
				}
			}
		}
	}()
	return done
}
