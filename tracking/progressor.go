package tracking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cafe-ordering-api/apperr"
)

// ProgressorActor is recorded as ChangedBy for automatic transitions.
const ProgressorActor = "progressor"

// Progressor advances every active order one step per interval.
type Progressor struct {
	svc      *Service
	interval time.Duration
	log      *slog.Logger
}

func NewProgressor(svc *Service, interval time.Duration, log *slog.Logger) *Progressor {
	return &Progressor{svc: svc, interval: interval, log: log}
}

// Run blocks until ctx is cancelled. A zero interval disables progression.
func (p *Progressor) Run(ctx context.Context) error {
	if p.interval <= 0 {
		p.log.Info("order progressor disabled")
		<-ctx.Done()
		return nil
	}
	p.log.Info("order progressor started", slog.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.log.Info("order progressor stopped")
			return nil
		case <-ticker.C:
			if _, err := p.Tick(ctx); err != nil && ctx.Err() == nil {
				p.log.Error("progress orders", slog.String("error", err.Error()))
			}
		}
	}
}

// Tick advances each active order once and returns how many moved.
func (p *Progressor) Tick(ctx context.Context) (int, error) {
	numbers, err := p.svc.Active(ctx)
	if err != nil {
		return 0, err
	}
	moved := 0
	for _, n := range numbers {
		if ctx.Err() != nil {
			return moved, ctx.Err()
		}
		_, err := p.svc.Advance(ctx, n, ProgressorActor, "")
		switch {
		case err == nil:
			moved++
		case errors.Is(err, apperr.ErrInvalidTransition):
			// a staff member moved it first
		default:
			p.log.Warn("advance order", slog.String("order_id", n), slog.String("error", err.Error()))
		}
	}
	return moved, nil
}
