package types

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEnv credits a fixed reward per step and terminates after a
// set number of steps.
type countingEnv struct {
	steps      int
	terminalAt int
	stepErr    error
}

func (c *countingEnv) Reset(_ *EpisodeContext) (State, error) {
	c.steps = 0
	return testState("s0"), nil
}

func (c *countingEnv) Step(_ Action, sCtx *StepContext) (State, error) {
	if c.stepErr != nil {
		return nil, c.stepErr
	}
	c.steps += 1
	sCtx.Reward = -10
	sCtx.Terminal = c.terminalAt > 0 && c.steps >= c.terminalAt
	return testState(fmt.Sprintf("s%d", c.steps)), nil
}

// firstActionPolicy always takes the first available action and
// counts the updates it receives.
type firstActionPolicy struct {
	updates    int
	iterations int
}

func (p *firstActionPolicy) NextAction(_ int, _ State, actions []Action) (Action, bool) {
	return actions[0], true
}

func (p *firstActionPolicy) Update(_ *StepContext) { p.updates += 1 }

func (p *firstActionPolicy) UpdateIteration(_ int, _ *Trace) { p.iterations += 1 }

func (p *firstActionPolicy) Record(_ string) {}

func (p *firstActionPolicy) Reset() {}

func TestRunEpisodeToHorizon(t *testing.T) {
	env := &countingEnv{}
	policy := &firstActionPolicy{}
	agent := NewAgent(&AgentConfig{Policy: policy, Environment: env})

	eCtx := NewEpisodeContext(context.Background(), 0, 5, 0)
	agent.RunEpisode(eCtx)

	require.False(t, eCtx.IsError())
	assert.Equal(t, 5, eCtx.Timesteps)
	assert.Equal(t, -50.0, eCtx.Reward)
	assert.False(t, eCtx.Terminal)
	assert.Equal(t, 5, eCtx.Trace.Len())
	assert.Equal(t, 5, policy.updates)
	assert.Equal(t, 1, policy.iterations)
}

func TestRunEpisodeStopsAtTerminal(t *testing.T) {
	env := &countingEnv{terminalAt: 3}
	policy := &firstActionPolicy{}
	agent := NewAgent(&AgentConfig{Policy: policy, Environment: env})

	eCtx := NewEpisodeContext(context.Background(), 0, 100, 0)
	agent.RunEpisode(eCtx)

	require.False(t, eCtx.IsError())
	assert.True(t, eCtx.Terminal)
	assert.Equal(t, 3, eCtx.Timesteps)
	assert.Equal(t, -30.0, eCtx.Reward)
	assert.Equal(t, 3, eCtx.Trace.Len())
}

func TestRunEpisodePropagatesStepError(t *testing.T) {
	stepErr := errors.New("boom")
	env := &countingEnv{stepErr: stepErr}
	policy := &firstActionPolicy{}
	agent := NewAgent(&AgentConfig{Policy: policy, Environment: env})

	eCtx := NewEpisodeContext(context.Background(), 0, 5, 0)
	agent.RunEpisode(eCtx)

	require.True(t, eCtx.IsError())
	assert.ErrorIs(t, eCtx.Err(), stepErr)
	assert.Equal(t, 0, eCtx.Timesteps)
}
