package browser

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bitdittowit/autoduo/internal/challenge"
	"github.com/bitdittowit/autoduo/internal/config"
)

// Source is where the runner gets exercises from. Satisfied by Scanner;
// tests substitute a fake.
type Source interface {
	Snapshot(ctx context.Context) (*challenge.Context, error)
	Advance(ctx context.Context) error
}

// Dispatcher turns a snapshot into a performed answer. Satisfied by
// solver.Registry.
type Dispatcher interface {
	Solve(c *challenge.Context) (challenge.Result, bool)
}

// Status is a point-in-time view of the loop, published after every
// cycle.
type Status struct {
	Running bool
	Cycles  int
	Solved  int
	Failed  int
	Skipped int
	Last    string
}

// Runner drives the exercise loop: snapshot, dispatch, advance, sleep.
// Stopping is a context cancellation; the loop finishes the cycle in
// flight and returns.
type Runner struct {
	src      Source
	disp     Dispatcher
	cfg      config.RunnerConfig
	logger   *slog.Logger
	onStatus func(Status)

	mu     sync.Mutex
	status Status
}

// NewRunner creates a Runner. onStatus may be nil.
func NewRunner(src Source, disp Dispatcher, cfg config.RunnerConfig, logger *slog.Logger, onStatus func(Status)) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{src: src, disp: disp, cfg: cfg, logger: logger, onStatus: onStatus}
}

// Status returns the current loop counters.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// SetMaxExercises changes the exercise limit. It applies to the run in
// flight: zero means unlimited.
func (r *Runner) SetMaxExercises(n int) {
	r.mu.Lock()
	r.cfg.MaxExercises = n
	r.mu.Unlock()
}

func (r *Runner) maxExercises() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.MaxExercises
}

// Run executes the loop until the context is cancelled or MaxExercises
// is reached. The run carries one id, each cycle another, so log lines
// group cleanly.
func (r *Runner) Run(ctx context.Context) error {
	runID := shortID()
	log := r.logger.With("run", runID)
	log.Info("run started",
		"poll", r.cfg.PollInterval, "max", r.maxExercises())

	r.setRunning(true)
	defer func() {
		r.setRunning(false)
		log.Info("run finished", "status", r.Status())
	}()

	for {
		if err := r.cycle(ctx, log); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if max := r.maxExercises(); max > 0 && r.Status().Solved >= max {
			log.Info("exercise limit reached", "max", max)
			return nil
		}

		if err := sleepCtx(ctx, r.cfg.PollInterval); err != nil {
			return nil
		}
	}
}

func (r *Runner) cycle(ctx context.Context, log *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log = log.With("cycle", shortID())

	snap, err := r.src.Snapshot(ctx)
	if err != nil {
		if errors.Is(err, ErrNoExercise) {
			log.Debug("no exercise on page")
			r.bump(func(s *Status) { s.Cycles++; s.Skipped++; s.Last = "waiting for exercise" })
			return nil
		}
		return err
	}

	res, matched := r.disp.Solve(snap)
	switch {
	case !matched:
		log.Warn("no solver matched", "header", snap.HeaderText)
		r.bump(func(s *Status) { s.Cycles++; s.Skipped++; s.Last = "no solver matched" })
		return nil
	case res.Success:
		r.bump(func(s *Status) { s.Cycles++; s.Solved++; s.Last = res.String() })
	default:
		r.bump(func(s *Status) { s.Cycles++; s.Failed++; s.Last = res.String() })
	}

	if err := sleepCtx(ctx, r.cfg.SettleDelay); err != nil {
		return err
	}
	if err := r.src.Advance(ctx); err != nil {
		log.Warn("advance failed", "error", err)
	}
	return nil
}

func (r *Runner) setRunning(v bool) {
	r.bump(func(s *Status) { s.Running = v })
}

func (r *Runner) bump(f func(*Status)) {
	r.mu.Lock()
	f(&r.status)
	st := r.status
	r.mu.Unlock()
	if r.onStatus != nil {
		r.onStatus(st)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func shortID() string {
	return uuid.NewString()[:8]
}
