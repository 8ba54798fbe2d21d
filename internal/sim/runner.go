package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bullke/DFL---HTL/internal/agent"
	"github.com/Bullke/DFL---HTL/internal/level"
	"github.com/Bullke/DFL---HTL/internal/threading/core"
	"github.com/Bullke/DFL---HTL/internal/threading/monitoring"
	"go.uber.org/zap"
)

// Job is one seeded run of a level.
type Job struct {
	Level *level.Level
	Seed  uint64
}

// Jobs makes runs jobs per level with consecutive seeds starting at seed.
func Jobs(levels []*level.Level, seed uint64, runs int) []Job {
	runs = max(runs, 1)
	jobs := make([]Job, 0, len(levels)*runs)
	for _, l := range levels {
		for k := range runs {
			jobs = append(jobs, Job{Level: l, Seed: seed + uint64(k)})
		}
	}
	return jobs
}

// Options configure the tick loop of every run.
type Options struct {
	TickRate float64
	MaxTicks int
	Params   agent.Params
}

// DefaultOptions ticks 60 times per second for at most ten minutes of
// simulated time.
func DefaultOptions() Options {
	return Options{TickRate: 60, MaxTicks: 36000, Params: agent.DefaultParams()}
}

// Runner runs jobs on a worker pool. Every run gets a fresh copy of its
// level, so jobs sharing a level do not see each other's changes.
type Runner struct {
	pool    *core.WorkerPool
	opts    Options
	monitor *monitoring.PerformanceMonitor
	log     *zap.Logger
}

func NewRunner(pool *core.WorkerPool, opts Options, monitor *monitoring.PerformanceMonitor, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if monitor == nil {
		monitor = monitoring.NewPerformanceMonitor()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultOptions().TickRate
	}
	return &Runner{pool: pool, opts: opts, monitor: monitor, log: log}
}

func (r *Runner) Monitor() *monitoring.PerformanceMonitor { return r.monitor }

// Run executes every job and returns the results in job order. Failed jobs
// leave a zero result and are reported in the joined error.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	errs := make([]error, len(jobs))
	err := r.pool.ParallelFor(ctx, 0, len(jobs), func(k int) {
		results[k], errs[k] = r.runOne(ctx, jobs[k])
	})
	if err != nil {
		return results, err
	}
	return results, errors.Join(errs...)
}

func (r *Runner) runOne(ctx context.Context, job Job) (Result, error) {
	r.monitor.StartRun()
	l, err := job.Level.Reset()
	if err != nil {
		r.monitor.EndRun(err)
		return Result{}, fmt.Errorf("level %s: %w", job.Level.Name, err)
	}

	s := New(l, r.opts.Params, job.Seed, r.log)
	s.SetMonitor(r.monitor)
	res, err := s.Run(ctx, 1/r.opts.TickRate, r.opts.MaxTicks)
	r.monitor.AddAgents(res.Spawned, res.Rescued, res.Exhausted)
	r.monitor.EndRun(err)
	if err != nil {
		return res, err
	}

	r.log.Info("Run finished",
		zap.String("level", res.Level),
		zap.Uint64("seed", res.Seed),
		zap.Int("ticks", res.Ticks),
		zap.Int("spawned", res.Spawned),
		zap.Int("rescued", res.Rescued),
		zap.Int("exhausted", res.Exhausted),
		zap.Int("remaining", res.Remaining))
	return res, nil
}

// Summary totals the results of one level.
type Summary struct {
	Level     string
	Runs      int
	Spawned   int
	Rescued   int
	Exhausted int
	Remaining int
	Ticks     int
}

// RescueRate is the share of spawned agents that were rescued.
func (s Summary) RescueRate() float64 {
	if s.Spawned == 0 {
		return 0
	}
	return float64(s.Rescued) / float64(s.Spawned)
}

// Summarize groups results by level, keeping the order levels first appear.
func Summarize(results []Result) []Summary {
	var out []Summary
	at := make(map[string]int)
	for _, r := range results {
		if r.Level == "" {
			continue
		}
		k, ok := at[r.Level]
		if !ok {
			k = len(out)
			at[r.Level] = k
			out = append(out, Summary{Level: r.Level})
		}
		s := &out[k]
		s.Runs++
		s.Spawned += r.Spawned
		s.Rescued += r.Rescued
		s.Exhausted += r.Exhausted
		s.Remaining += r.Remaining
		s.Ticks += r.Ticks
	}
	return out
}
