// Package service runs one simulation: it assembles the talent table and
// fans the talents out to a worker pool.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/okian/talentroll/internal/adapters/mq/queue"
	workerpool "github.com/okian/talentroll/internal/adapters/mq/worker"
	"github.com/okian/talentroll/internal/domain/assembler"
	"github.com/okian/talentroll/internal/domain/model"
	"github.com/okian/talentroll/internal/domain/sampler"
	"github.com/okian/talentroll/internal/domain/simulator"
	"github.com/okian/talentroll/pkg/logger"
	"github.com/okian/talentroll/pkg/metrics"
)

// ErrIncomplete means the pool finished without a result for every job.
var ErrIncomplete = errors.New("simulation incomplete")

// Service assembles and simulates talents for one character.
type Service struct {
	workerCount int
	trials      int
	seed        uint64
	missing     simulator.MissingSkillPolicy
	samplers    sampler.Factory

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithTrials sets the number of trials per talent.
func WithTrials(trials int) Option {
	return func(s *Service) {
		s.trials = trials
	}
}

// WithSeed fixes the run seed. Zero draws a fresh seed per run.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithMissingSkillPolicy sets how unlearned talents are treated.
func WithMissingSkillPolicy(p simulator.MissingSkillPolicy) Option {
	return func(s *Service) {
		s.missing = p
	}
}

// WithSamplerFactory replaces the seeded samplers, e.g. with a replayed
// sequence in tests.
func WithSamplerFactory(f sampler.Factory) Option {
	return func(s *Service) {
		s.samplers = f
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		trials:      simulator.DefaultTrials,
		missing:     simulator.MissingAsZero,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	return s
}

// Assemble builds the talent table for character.
func (s *Service) Assemble(ctx context.Context, character model.CharacterRecord, defs []model.TalentDefinition) ([]model.AssembledTalent, error) {
	talents, err := assembler.Assemble(character, defs)
	if err != nil {
		metrics.RecordErrorByComponent("assembler", "assemble_error")
		s.logger.Error(ctx, "assembly failed", logger.Error(err))
		return nil, err
	}
	metrics.UpdateTalentsAssembled(len(talents))
	s.logger.Debug(ctx, "talents assembled", logger.Int("count", len(talents)))
	return talents, nil
}

// Run assembles the table and simulates it.
func (s *Service) Run(ctx context.Context, character model.CharacterRecord, defs []model.TalentDefinition) (*model.Results, error) {
	talents, err := s.Assemble(ctx, character, defs)
	if err != nil {
		return nil, err
	}
	return s.Simulate(ctx, talents)
}

// Simulate estimates a distribution for every talent. Results are returned in
// talent order and only when every job succeeded.
func (s *Service) Simulate(ctx context.Context, talents []model.AssembledTalent) (*model.Results, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.With(logger.String("run_id", runID))

	results, err := s.simulate(ctx, log, runID, talents)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordRun("failed", elapsed)
		log.Error(ctx, "simulation aborted", logger.Error(err))
		return nil, err
	}

	metrics.RecordRun("ok", elapsed)
	log.Info(ctx, "simulation finished",
		logger.Int("talents", len(results.Talents)),
		logger.Int("skipped", len(results.Skipped)),
		logger.Float64("elapsed_ms", elapsed),
	)
	return results, nil
}

func (s *Service) simulate(ctx context.Context, log logger.Logger, runID string, talents []model.AssembledTalent) (*model.Results, error) {
	seed, samplers, err := s.streams()
	if err != nil {
		return nil, err
	}

	sim := simulator.New(
		simulator.WithTrials(s.trials),
		simulator.WithMissingSkillPolicy(s.missing),
		simulator.WithSamplerFactory(samplers),
		simulator.WithLogger(log.Named("simulator")),
	)
	if err := sim.Validate(); err != nil {
		return nil, err
	}

	log.Info(ctx, "simulation started",
		logger.Uint64("seed", seed),
		logger.Int("talents", len(talents)),
		logger.Int("trials", s.trials),
		logger.Int("workers", s.workerCount),
	)

	jobs, skipped := sim.Plan(ctx, talents)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	q := jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(len(jobs)))
	for _, job := range jobs {
		if err := q.Enqueue(runCtx, job); err != nil {
			return nil, fmt.Errorf("enqueue %q: %w", job.Talent.Name, err)
		}
	}
	_ = q.Close()

	sink := newCollector(cancel)
	pool := workerpool.NewPool(s.workerCount, q, sim, sink, workerpool.WithLogger(log))
	pool.Start(runCtx)
	if err := pool.Wait(ctx); err != nil {
		return nil, err
	}

	if err := sink.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("simulation aborted: %w", err)
	}

	ordered, err := sink.ordered(jobs)
	if err != nil {
		return nil, err
	}

	return &model.Results{
		RunID:   runID,
		Seed:    seed,
		Trials:  s.trials,
		Talents: ordered,
		Skipped: skipped,
	}, nil
}

// streams returns the run seed and the sampler factory derived from it.
func (s *Service) streams() (uint64, sampler.Factory, error) {
	if s.samplers != nil {
		return s.seed, s.samplers, nil
	}
	seed := s.seed
	if seed == 0 {
		fresh, err := sampler.NewSeed()
		if err != nil {
			return 0, nil, err
		}
		seed = fresh
	}
	return seed, sampler.Seeded(seed), nil
}

// collector gathers worker results keyed by stream. The first failure
// cancels the run.
type collector struct {
	mu      sync.Mutex
	results map[int]model.TalentResult
	err     error
	cancel  context.CancelFunc
}

func newCollector(cancel context.CancelFunc) *collector {
	return &collector{
		results: make(map[int]model.TalentResult),
		cancel:  cancel,
	}
}

// Record implements worker.Sink.
func (c *collector) Record(_ context.Context, r model.TalentResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[r.Stream] = r
}

// Fail implements worker.Sink.
func (c *collector) Fail(_ context.Context, _ model.Job, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
		c.cancel()
	}
}

// Err returns the first recorded failure.
func (c *collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *collector) ordered(jobs []model.Job) ([]model.TalentResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.TalentResult, 0, len(jobs))
	for _, job := range jobs {
		r, ok := c.results[job.Stream]
		if !ok {
			return nil, fmt.Errorf("%w: no result for talent %q", ErrIncomplete, job.Talent.Name)
		}
		out = append(out, r)
	}
	return out, nil
}
