package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jjschwartz/gym-cyber-attack/netsim"
	"github.com/Jjschwartz/gym-cyber-attack/types"
)

// Explorer steps through episodes of a scenario interactively,
// playing the attacker by hand.
type Explorer struct {
	env   *netsim.Environment
	eCtx  *types.EpisodeContext
	state types.State
	steps int
}

// Create an explorer for the scenario
func NewExplorer(scenario *netsim.Scenario, seed int64) (*Explorer, error) {
	e := &Explorer{
		env: netsim.NewEnvironment(scenario, seed),
	}
	if err := e.reset(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Explorer) reset() error {
	e.eCtx = types.NewEpisodeContext(context.Background(), 0, 0, 0)
	state, err := e.env.Reset(e.eCtx)
	if err != nil {
		return err
	}
	e.state = state
	e.steps = 0
	return nil
}

func (e *Explorer) header() string {
	return "" +
		"------------------------------------\n" +
		"Network attack explorer\n" +
		"Pick an action by number, (r)eset the episode, (q)uit\n" +
		"------------------------------------\n"
}

func (e *Explorer) status() string {
	var b strings.Builder
	e.env.State().Render(&b)
	fmt.Fprintf(&b, "steps: %d, reward: %.1f", e.steps, e.env.EpisodeReward())
	if e.env.Terminal() != netsim.ReasonNone {
		fmt.Fprintf(&b, ", episode over: %s", e.env.Terminal())
	}
	b.WriteString("\n")
	return b.String()
}

func (e *Explorer) listActions() []types.Action {
	actions := e.state.Actions()
	for i, a := range actions {
		fmt.Printf("  %3d) %s\n", i+1, a.Hash())
	}
	return actions
}

func (e *Explorer) step(action types.Action) {
	sCtx := e.eCtx.NewStepContext(e.steps, e.state, action)
	nextState, err := e.env.Step(action, sCtx)
	if err != nil {
		fmt.Printf("step failed: %v\n", err)
		return
	}
	e.state = nextState
	e.steps += 1
	fmt.Printf("outcome: %s, reward: %.1f\n", sCtx.Info["outcome"], sCtx.Reward)
	if detail, ok := sCtx.Info["detail"]; ok {
		fmt.Printf("detail: %s\n", detail)
	}
	if sCtx.Terminal {
		fmt.Printf("episode over: %s\n", sCtx.Info["terminal"])
	}
}
