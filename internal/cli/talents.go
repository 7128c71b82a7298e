package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/talentroll/internal/adapters/loader"
	"github.com/okian/talentroll/internal/adapters/render"
	service "github.com/okian/talentroll/internal/app"
	"github.com/okian/talentroll/pkg/logger"
)

func newTalentsCmd(opts *options) *cobra.Command {
	var mapping, language string

	cmd := &cobra.Command{
		Use:   "talents <character.json>",
		Short: "Print the assembled talent table without simulating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("mapping") {
				cfg.TalentMapping = mapping
			}
			if cmd.Flags().Changed("lang") {
				cfg.Language = language
			}

			if err := cfg.Validate(); err != nil {
				return wrap("config", err)
			}
			tag, err := render.ParseLanguage(cfg.Language)
			if err != nil {
				return wrap("config", err)
			}
			character, err := loader.ReadCharacter(args[0])
			if err != nil {
				return wrap("read character", err)
			}
			defs, err := loader.Mapping(cfg.TalentMapping)
			if err != nil {
				return wrap("read talent mapping", err)
			}

			rows, err := service.New(service.WithLogger(logger.Named("service"))).Assemble(cmd.Context(), character, defs)
			if err != nil {
				return wrap("assemble", err)
			}
			if err := render.NewText(render.Printer(tag)).Table(cmd.OutOrStdout(), rows); err != nil {
				return wrap("render", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mapping, "mapping", "m", "", "Talent mapping file, YAML or JSON (default: bundled DSA5 mapping)")
	cmd.Flags().StringVar(&language, "lang", "", "Output language: en or de")

	return cmd
}
