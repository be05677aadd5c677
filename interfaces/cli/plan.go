package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/config"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/planner"
	"github.com/felixgeelhaar/goap-go/domain/world"
	infraconfig "github.com/felixgeelhaar/goap-go/infrastructure/config"
)

type planOptions struct {
	configPath string
	goalName   string
	jsonOutput bool
}

type planResult struct {
	Goal      string   `json:"goal"`
	Satisfied bool     `json:"satisfied"`
	Found     bool     `json:"found"`
	Actions   []string `json:"actions"`
	TotalCost float64  `json:"total_cost"`
}

// newPlanCmd creates the plan command.
func (a *App) newPlanCmd() *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a plan without executing it",
		Long: `Plan loads a configuration, selects a goal (the highest-priority
unsatisfied one unless --goal names a specific goal), and prints the action
sequence the planner would execute from the declared initial world state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlan(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "agent.yaml", "path to configuration file")
	cmd.Flags().StringVarP(&opts.goalName, "goal", "g", "", "plan for a specific goal instead of the selected one")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "output plan as JSON")

	return cmd
}

func (a *App) runPlan(opts *planOptions) error {
	cfg, err := infraconfig.NewLoader().LoadFile(opts.configPath)
	if err != nil {
		return err
	}

	state := stateFromFacts(cfg.World)
	actions, err := descriptorActions(cfg.Actions)
	if err != nil {
		return err
	}

	g, err := pickGoal(cfg, state, opts.goalName)
	if err != nil {
		return err
	}

	result := planResult{Goal: g.Name, Actions: []string{}}
	if g.IsSatisfied(state) {
		result.Satisfied = true
		result.Found = true
	} else {
		p, _ := buildStrategyPlanner(cfg.Planner)
		computed := p.Plan(state, g.Desired, actions)
		result.Found = !computed.IsEmpty()
		result.Actions = computed.Names()
		result.TotalCost = computed.TotalCost()
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	switch {
	case result.Satisfied:
		fmt.Fprintf(a.stdout, "Goal %q is already satisfied\n", result.Goal)
	case !result.Found:
		fmt.Fprintf(a.stdout, "No plan found for goal %q\n", result.Goal)
	default:
		fmt.Fprintf(a.stdout, "Plan for goal %q (%d actions, cost %.1f):\n",
			result.Goal, len(result.Actions), result.TotalCost)
		for i, name := range result.Actions {
			fmt.Fprintf(a.stdout, "  %d. %s\n", i+1, name)
		}
	}
	return nil
}

// pickGoal resolves the goal to plan for: a named goal when given,
// otherwise the highest-priority unsatisfied goal.
func pickGoal(cfg *config.AgentConfig, state world.State, name string) (goal.Goal, error) {
	goals := goalsFromConfig(cfg.Goals)
	if name != "" {
		for _, g := range goals {
			if g.Name == name {
				return g, nil
			}
		}
		return goal.Goal{}, fmt.Errorf("unknown goal %q", name)
	}

	g, ok := goal.NewPrioritySelector().Select(state, goals)
	if !ok {
		if len(goals) == 0 {
			return goal.Goal{}, fmt.Errorf("configuration declares no goals")
		}
		// All goals satisfied; report the first one.
		return goals[0], nil
	}
	return g, nil
}

// descriptorActions builds planning-only actions from declared
// descriptors. The handlers never run; planning only reads
// preconditions, effects, and cost.
func descriptorActions(configs []config.ActionConfig) ([]action.Action, error) {
	actions := make([]action.Action, 0, len(configs))
	for _, ac := range configs {
		b := action.NewBuilder(ac.Name).
			WithPreconditions(stateFromFacts(ac.Preconditions)).
			WithEffects(stateFromFacts(ac.Effects)).
			WithHandler(func(ctx context.Context) error { return nil })
		if ac.Cost != nil {
			b = b.WithCost(*ac.Cost)
		}
		a, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", ac.Name, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func goalsFromConfig(configs []config.GoalConfig) []goal.Goal {
	goals := make([]goal.Goal, 0, len(configs))
	for _, gc := range configs {
		goals = append(goals, goal.Goal{
			Name:     gc.Name,
			Priority: gc.Priority,
			Desired:  stateFromFacts(gc.Desired),
		})
	}
	return goals
}

func stateFromFacts(facts []config.FactConfig) world.State {
	state := world.New()
	for _, f := range facts {
		state[f.Name] = f.Value
	}
	return state
}

func buildStrategyPlanner(cfg config.PlannerConfig) (planner.Planner, string) {
	switch cfg.Strategy {
	case config.StrategySearch:
		p := planner.NewSearch()
		if cfg.MaxIterations > 0 {
			p.MaxIterations = cfg.MaxIterations
		}
		return p, config.StrategySearch
	default:
		p := planner.NewGreedy()
		if cfg.MaxDepth > 0 {
			p.MaxDepth = cfg.MaxDepth
		}
		return p, config.StrategyGreedy
	}
}
