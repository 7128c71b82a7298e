package simulator

import (
	"github.com/okian/talentroll/internal/domain/sampler"
	"github.com/okian/talentroll/pkg/logger"
)

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithTrials sets the number of trials per talent. Values are validated by
// Validate, not here, so that a zero count surfaces as an error.
func WithTrials(trials int) Option {
	return func(s *Simulator) {
		s.trials = trials
	}
}

// WithMissingSkillPolicy sets how unlearned talents are treated.
func WithMissingSkillPolicy(p MissingSkillPolicy) Option {
	return func(s *Simulator) {
		s.missing = p
	}
}

// WithSamplerFactory sets the source of per-stream samplers.
func WithSamplerFactory(f sampler.Factory) Option {
	return func(s *Simulator) {
		if f != nil {
			s.samplers = f
		}
	}
}

// WithSeed seeds the default PCG streams.
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.samplers = sampler.Seeded(seed)
	}
}

// WithLogger sets a custom logger for the simulator.
func WithLogger(l logger.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}
