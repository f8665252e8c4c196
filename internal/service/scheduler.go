package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hance08/walletsync/internal/logx"
)

// RunSweeps starts one sweep loop per registered currency and blocks until
// ctx is done. Sweeps of one currency never overlap; currencies without
// sweep support are left out after their first attempt.
func (s *Service) RunSweeps(ctx context.Context, interval time.Duration, filter SweepFilter) {
	if interval <= 0 {
		interval = time.Minute
	}

	var wg sync.WaitGroup
	for _, name := range s.Registry.Names() {
		adapter, err := s.Registry.Get(name)
		if err != nil {
			continue
		}
		wg.Add(1)
		go func(a Adapter) {
			defer wg.Done()
			sweepLoop(ctx, a, interval, filter)
		}(adapter)
	}
	wg.Wait()
}

func sweepLoop(ctx context.Context, a Adapter, interval time.Duration, filter SweepFilter) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		_, err := a.FixedUpdate(ctx, filter)
		switch {
		case errors.Is(err, ErrUnsupported):
			logx.Info("SCHEDULER", "sweep not supported for ", a.Name())
			return
		case errors.Is(err, ErrSweepIncomplete):
			logx.Warn("SCHEDULER", a.Name(), " sweep hit its deadline, resuming next tick")
		case err != nil:
			logx.Error("SCHEDULER", a.Name(), " sweep failed: ", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
