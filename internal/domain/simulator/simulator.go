// Package simulator estimates, per talent, the distribution of extra skill
// points needed to pass a three-dice check.
//
// One trial draws three distinct faces from 1..20. Each face above its
// check's threshold adds the excess to the overflow penalty; faces at or
// below the threshold add nothing, so spare margin on one check never offsets
// another. The outcome is penalty - skill level, floored at -1: values <= 0
// mean the skill level covers the check, -1 also stands for any larger
// surplus.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/talentroll/internal/domain/model"
	"github.com/okian/talentroll/internal/domain/sampler"
	"github.com/okian/talentroll/pkg/logger"
	"github.com/okian/talentroll/pkg/metrics"
)

const (
	// DefaultTrials is the number of trials per talent when none is given.
	DefaultTrials = 10_000

	// Floor is the lowest reported outcome.
	Floor = -1

	defaultSeed = 42
)

// Outcome applies the check rule to one roll.
func Outcome(thresholds [sampler.Draws]int, skill int, r sampler.Roll) int {
	penalty := 0
	for i, face := range r {
		if over := face - thresholds[i]; over > 0 {
			penalty += over
		}
	}
	if needed := penalty - skill; needed > Floor {
		return needed
	}
	return Floor
}

// ValidateTrials rejects non-positive trial counts.
func ValidateTrials(trials int) error {
	if trials <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTrialCount, trials)
	}
	return nil
}

// Run draws trials rolls from s and tallies their outcomes.
func Run(thresholds [sampler.Draws]int, skill, trials int, s sampler.Sampler) (model.Tally, error) {
	if err := ValidateTrials(trials); err != nil {
		return nil, err
	}
	tally := model.Tally{}
	for i := 0; i < trials; i++ {
		tally.Add(Outcome(thresholds, skill, s.Draw()))
	}
	return tally, nil
}

// Simulator runs the check rule over assembled talents.
type Simulator struct {
	trials   int
	missing  MissingSkillPolicy
	samplers sampler.Factory
	logger   logger.Logger
}

// New creates a Simulator. Without WithSeed or WithSamplerFactory the streams
// use a fixed seed.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		trials:   DefaultTrials,
		missing:  MissingAsZero,
		samplers: sampler.Seeded(defaultSeed),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("simulator")
	}
	return s
}

// Trials returns the configured trial count per talent.
func (s *Simulator) Trials() int { return s.trials }

// Validate checks the configuration before any talent is simulated.
func (s *Simulator) Validate() error {
	if err := ValidateTrials(s.trials); err != nil {
		return err
	}
	if s.missing != MissingAsZero && s.missing != MissingSkip {
		return fmt.Errorf("%w: %d", ErrInvalidPolicy, int(s.missing))
	}
	return nil
}

// Plan turns assembled talents into jobs. The stream of a job is the
// talent's position in talents, so skipping rows never shifts the random
// streams of the others.
func (s *Simulator) Plan(ctx context.Context, talents []model.AssembledTalent) ([]model.Job, []model.AssembledTalent) {
	jobs := make([]model.Job, 0, len(talents))
	var skipped []model.AssembledTalent
	for i, t := range talents {
		if _, learned := t.Level(); !learned && s.missing == MissingSkip {
			s.logger.Info(ctx, "skipping unlearned talent", logger.String("talent", t.Name), logger.String("id", t.ID))
			metrics.RecordTalentSkipped()
			skipped = append(skipped, t)
			continue
		}
		jobs = append(jobs, model.Job{Stream: i, Talent: t})
	}
	return jobs, skipped
}

// Talent simulates one job on its own sampler.
func (s *Simulator) Talent(ctx context.Context, job model.Job) (model.TalentResult, error) {
	start := time.Now()

	level, _ := job.Talent.Level()
	tally, err := Run(job.Talent.Thresholds, level, s.trials, s.samplers(job.Stream))
	if err != nil {
		return model.TalentResult{}, fmt.Errorf("talent %q: %w", job.Talent.Name, err)
	}
	dist := tally.Normalize(s.trials)

	elapsed := time.Since(start)
	metrics.RecordTrials(s.trials)
	metrics.RecordTalentSimulated(float64(elapsed.Microseconds()) / 1000)
	metrics.UpdateTalentSuccess(job.Talent.Name, dist.Success(), len(dist))
	s.logger.Debug(ctx, "talent simulated",
		logger.String("talent", job.Talent.Name),
		logger.Int("stream", job.Stream),
		logger.Float64("success", dist.Success()),
		logger.Duration("elapsed", elapsed),
	)

	return model.TalentResult{
		Talent:       job.Talent,
		Stream:       job.Stream,
		Trials:       s.trials,
		Tally:        tally,
		Distribution: dist,
	}, nil
}

// Simulate runs every talent sequentially. Nothing is returned unless all
// talents succeed.
func (s *Simulator) Simulate(ctx context.Context, talents []model.AssembledTalent) (*model.Results, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	jobs, skipped := s.Plan(ctx, talents)
	results := &model.Results{
		Trials:  s.trials,
		Talents: make([]model.TalentResult, 0, len(jobs)),
		Skipped: skipped,
	}
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation aborted: %w", err)
		}
		tr, err := s.Talent(ctx, job)
		if err != nil {
			return nil, err
		}
		results.Talents = append(results.Talents, tr)
	}
	return results, nil
}

// Simulate estimates one distribution per talent, keyed by talent name, with
// unlearned talents at skill level 0.
func Simulate(talents []model.AssembledTalent, trials int, samplers sampler.Factory) (map[string]model.Distribution, error) {
	results, err := New(WithTrials(trials), WithSamplerFactory(samplers), WithLogger(logger.Nop())).Simulate(context.Background(), talents)
	if err != nil {
		return nil, err
	}
	return results.ByName(), nil
}
