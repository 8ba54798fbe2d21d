// Package sim steps levels forward in fixed ticks and runs batches of
// seeded simulations in parallel.
package sim

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/Bullke/DFL---HTL/internal/agent"
	"github.com/Bullke/DFL---HTL/internal/level"
	"github.com/Bullke/DFL---HTL/internal/threading/monitoring"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// agentSpace namespaces the deterministic agent IDs.
var agentSpace = uuid.MustParse("6f1d7f3e-2b9c-4c59-9a0e-1d5b8c7a4e21")

// Result sums up one run.
type Result struct {
	Level     string
	Seed      uint64
	Ticks     int
	Elapsed   float64
	Spawned   int
	Rescued   int
	Exhausted int
	Removed   int
	Remaining int
	Failed    int
}

// Done reports whether every agent left the board.
func (r Result) Done() bool { return r.Remaining == 0 }

// Simulation owns one level and the agents on it.
type Simulation struct {
	level   *level.Level
	params  agent.Params
	seed    uint64
	log     *zap.Logger
	monitor *monitoring.PerformanceMonitor

	pending []level.Spawn
	agents  []*agent.Agent
	now     float64
	result  Result
}

// New prepares a run of l. Agent IDs and random streams derive from seed,
// so equal seeds replay equal runs.
func New(l *level.Level, params agent.Params, seed uint64, log *zap.Logger) *Simulation {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulation{
		level:   l,
		params:  params,
		seed:    seed,
		log:     log.With(zap.String("level", l.Name), zap.Uint64("seed", seed)),
		pending: l.Spawns(),
		result:  Result{Level: l.Name, Seed: seed},
	}
}

// SetMonitor reports tick timings to m.
func (s *Simulation) SetMonitor(m *monitoring.PerformanceMonitor) {
	s.monitor = m
}

func (s *Simulation) Level() *level.Level    { return s.level }
func (s *Simulation) Agents() []*agent.Agent { return s.agents }
func (s *Simulation) Now() float64           { return s.now }

// Done reports whether nothing is left to spawn or move.
func (s *Simulation) Done() bool {
	return len(s.pending) == 0 && len(s.agents) == 0
}

// Result returns the counts so far.
func (s *Simulation) Result() Result {
	r := s.result
	r.Elapsed = s.now
	r.Remaining = len(s.agents) + len(s.pending)
	return r
}

// Tick releases the agents that are due, moves every agent by dt, lets the
// tiles settle, then takes finished agents off the board.
func (s *Simulation) Tick(dt float64) {
	if s.monitor != nil {
		defer s.monitor.StartTick().EndTick()
	}

	for len(s.pending) > 0 && s.pending[0].Time <= s.now {
		s.spawn(s.pending[0])
		s.pending = s.pending[1:]
	}

	for _, a := range s.agents {
		a.Tick(dt)
	}
	s.level.LateTick()

	live := s.agents[:0]
	for _, a := range s.agents {
		switch a.Fate() {
		case agent.Alive:
			live = append(live, a)
		case agent.Rescued:
			s.result.Rescued++
		case agent.Exhausted:
			s.result.Exhausted++
		case agent.Removed:
			s.result.Removed++
		}
	}
	clear(s.agents[len(live):])
	s.agents = live

	s.now += dt
	s.result.Ticks++
}

func (s *Simulation) spawn(sp level.Spawn) {
	n := s.result.Spawned + s.result.Failed
	id := uuid.NewSHA1(agentSpace, fmt.Appendf(nil, "%s/%d/%d", s.level.Name, s.seed, n))
	rng := rand.New(rand.NewPCG(s.seed, xxhash.Sum64(id[:])))

	a, err := agent.Spawn(id, s.level, sp.Index, s.params, rng, s.log)
	if err != nil {
		s.result.Failed++
		s.log.Warn("Failed to spawn agent", zap.Stringer("index", sp.Index), zap.Error(err))
		return
	}
	s.result.Spawned++
	s.agents = append(s.agents, a)
}

// Run ticks until every agent is gone, maxTicks ticks passed or ctx is
// done. A maxTicks of 0 or less only stops on the other two.
func (s *Simulation) Run(ctx context.Context, dt float64, maxTicks int) (Result, error) {
	for !s.Done() && (maxTicks <= 0 || s.result.Ticks < maxTicks) {
		if err := ctx.Err(); err != nil {
			return s.Result(), err
		}
		s.Tick(dt)
	}
	return s.Result(), nil
}
