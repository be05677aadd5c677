package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap-go/application"
	"github.com/felixgeelhaar/goap-go/domain/agent"
	infraconfig "github.com/felixgeelhaar/goap-go/infrastructure/config"
)

type runOptions struct {
	configPath string
	maxSteps   int
	timeout    time.Duration
	jsonOutput bool
}

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the agent loop in simulation",
		Long: `Run builds an agent from a configuration file and executes the
sense-plan-act loop until every goal is satisfied or the run fails.
Declared actions run with simulated handlers: the loop applies their
declared effects to the world but performs no external work. Embed the
engine as a library to attach real handlers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAgent(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "agent.yaml", "path to configuration file")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "override the configured loop step budget")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort the run after this duration")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "output run result as JSON")

	return cmd
}

func (a *App) runAgent(ctx context.Context, opts *runOptions) error {
	cfg, err := infraconfig.NewLoader().LoadFile(opts.configPath)
	if err != nil {
		return err
	}
	if opts.maxSteps > 0 {
		cfg.Agent.MaxSteps = opts.maxSteps
	}

	handlers := make(application.Handlers, len(cfg.Actions))
	for _, ac := range cfg.Actions {
		handlers[ac.Name] = func(ctx context.Context) error { return nil }
	}

	engine, err := application.BuildEngine(cfg, handlers, nil)
	if err != nil {
		return err
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	run, runErr := engine.Run(ctx)
	if run != nil {
		if err := a.printRun(run, opts.jsonOutput); err != nil {
			return err
		}
	}
	return runErr
}

func (a *App) printRun(run *agent.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	fmt.Fprintf(a.stdout, "Run %s: %s\n", run.ID, run.Status)
	if run.Goal != "" {
		fmt.Fprintf(a.stdout, "  Goal:     %s\n", run.Goal)
	}
	fmt.Fprintf(a.stdout, "  Actions:  %d\n", run.ActionsRun)
	fmt.Fprintf(a.stdout, "  Replans:  %d\n", run.Replans)
	fmt.Fprintf(a.stdout, "  Duration: %s\n", run.EndTime.Sub(run.StartTime).Round(time.Millisecond))
	if run.Error != "" {
		fmt.Fprintf(a.stdout, "  Error:    %s\n", run.Error)
	}
	return nil
}
