package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/talentroll/internal/adapters/loader"
	"github.com/okian/talentroll/internal/adapters/render"
	service "github.com/okian/talentroll/internal/app"
	"github.com/okian/talentroll/internal/domain/simulator"
	"github.com/okian/talentroll/pkg/logger"
	"github.com/okian/talentroll/pkg/metrics"
)

type simulateFlags struct {
	mapping         string
	trials          int
	seed            uint64
	workers         int
	format          string
	language        string
	missing         string
	metricsTextfile string
}

func newSimulateCmd(opts *options) *cobra.Command {
	f := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate <character.json>",
		Short: "Simulate every talent of a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, opts)
			if err := opts.cfg.Validate(); err != nil {
				return wrap("config", err)
			}
			return runSimulate(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&f.mapping, "mapping", "m", "", "Talent mapping file, YAML or JSON (default: bundled DSA5 mapping)")
	cmd.Flags().IntVarP(&f.trials, "trials", "n", 0, "Trials per talent (default 10000)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for repeatable runs (0 draws a fresh seed)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Number of simulation workers (default: CPU count)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: text or json")
	cmd.Flags().StringVar(&f.language, "lang", "", "Text output language: en or de")
	cmd.Flags().StringVar(&f.missing, "missing", "", "Unlearned talents: zero simulates level 0, skip omits them")
	cmd.Flags().StringVar(&f.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the run")

	return cmd
}

// apply copies explicitly set flags over the loaded configuration.
func (f *simulateFlags) apply(cmd *cobra.Command, opts *options) {
	flags := cmd.Flags()
	cfg := opts.cfg
	if flags.Changed("mapping") {
		cfg.TalentMapping = f.mapping
	}
	if flags.Changed("trials") {
		cfg.Trials = f.trials
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("workers") {
		cfg.WorkerCount = f.workers
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("lang") {
		cfg.Language = f.language
	}
	if flags.Changed("missing") {
		cfg.MissingSkill = f.missing
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = f.metricsTextfile
	}
}

func runSimulate(cmd *cobra.Command, opts *options, characterPath string) error {
	ctx := cmd.Context()
	cfg := opts.cfg

	policy, err := simulator.ParseMissingSkillPolicy(cfg.MissingSkill)
	if err != nil {
		return wrap("config", err)
	}
	tag, err := render.ParseLanguage(cfg.Language)
	if err != nil {
		return wrap("config", err)
	}
	renderer, err := render.New(cfg.Format, tag)
	if err != nil {
		return wrap("config", err)
	}

	character, err := loader.ReadCharacter(characterPath)
	if err != nil {
		return wrap("read character", err)
	}
	defs, err := loader.Mapping(cfg.TalentMapping)
	if err != nil {
		return wrap("read talent mapping", err)
	}

	svc := service.New(
		service.WithTrials(cfg.Trials),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithSeed(cfg.Seed),
		service.WithMissingSkillPolicy(policy),
		service.WithLogger(logger.Named("service")),
	)
	results, err := svc.Run(ctx, character, defs)
	if err != nil {
		return wrap("simulate", err)
	}

	if err := renderer.Render(cmd.OutOrStdout(), results); err != nil {
		return wrap("render", err)
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			return wrap("metrics", err)
		}
	}
	return nil
}
