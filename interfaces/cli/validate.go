package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	infraconfig "github.com/felixgeelhaar/goap-go/infrastructure/config"
)

type validateOptions struct {
	configPath string
	strict     bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an agent configuration file",
		Long: `Validate checks an agent configuration file for syntax errors and
semantic problems: unknown planner strategies, actions without effects,
goals referencing no facts, and malformed resilience settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "agent.yaml", "path to configuration file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on unresolved environment variables")

	return cmd
}

func (a *App) runValidate(opts *validateOptions) error {
	loader := infraconfig.NewLoaderWithOptions(
		infraconfig.WithStrictEnv(opts.strict),
	)

	cfg, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "Configuration valid: %s\n", opts.configPath)
	fmt.Fprintf(a.stdout, "  Agent:   %s\n", cfg.Name)
	fmt.Fprintf(a.stdout, "  Planner: %s\n", plannerLabel(cfg.Planner.Strategy))
	fmt.Fprintf(a.stdout, "  Actions: %d\n", len(cfg.Actions))
	fmt.Fprintf(a.stdout, "  Goals:   %d\n", len(cfg.Goals))

	return nil
}

func plannerLabel(strategy string) string {
	if strategy == "" {
		return "greedy (default)"
	}
	return strategy
}
