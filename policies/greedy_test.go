package policies

import (
	"context"
	"testing"

	"github.com/Jjschwartz/gym-cyber-attack/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubState string

func (s stubState) Hash() string { return string(s) }

func (s stubState) Actions() []types.Action { return nil }

type stubAction string

func (a stubAction) Hash() string { return string(a) }

func TestGreedyPicksHighestValuedAction(t *testing.T) {
	policy := NewEpsilonGreedyPolicy(0.1, 0.99, 0)
	policy.qTable.Set("s", "a", 1)
	policy.qTable.Set("s", "b", 5)

	action, ok := policy.NextAction(0, stubState("s"), []types.Action{stubAction("a"), stubAction("b")})
	require.True(t, ok)
	assert.Equal(t, "b", action.Hash())
}

func TestGreedyUpdate(t *testing.T) {
	policy := NewEpsilonGreedyPolicy(0.5, 0.9, 0)
	policy.qTable.Set("next", "a", 10)

	eCtx := types.NewEpisodeContext(context.Background(), 0, 10, 0)
	sCtx := eCtx.NewStepContext(0, stubState("s"), stubAction("a"))
	sCtx.NextState = stubState("next")
	sCtx.Reward = -10

	policy.Update(sCtx)

	// (1-0.5)*0 + 0.5*(-10 + 0.9*10)
	assert.InDelta(t, -0.5, policy.qTable.Get("s", "a", 0), 1e-9)
}

func TestGreedyUpdateTerminalIgnoresSuccessor(t *testing.T) {
	policy := NewEpsilonGreedyPolicy(0.5, 0.9, 0)
	policy.qTable.Set("next", "a", 10)

	eCtx := types.NewEpisodeContext(context.Background(), 0, 10, 0)
	sCtx := eCtx.NewStepContext(0, stubState("s"), stubAction("a"))
	sCtx.NextState = stubState("next")
	sCtx.Reward = 100
	sCtx.Terminal = true

	policy.Update(sCtx)

	// (1-0.5)*0 + 0.5*100, successor value zeroed at terminal states
	assert.InDelta(t, 50, policy.qTable.Get("s", "a", 0), 1e-9)
}

func TestGreedyReset(t *testing.T) {
	policy := NewEpsilonGreedyPolicy(0.1, 0.99, 0)
	policy.qTable.Set("s", "a", 1)
	policy.Reset()
	assert.False(t, policy.qTable.HasState("s"))
}
