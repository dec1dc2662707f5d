package netsim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateHashChangesWithKnowledge(t *testing.T) {
	env := NewEnvironment(twoSubnetScenario(t, 0), 1)
	state, err := env.Reset(nil)
	require.NoError(t, err)
	initial := state.Hash()

	next, _ := testStep(t, env, &ScanAction{Target: "A"})
	assert.NotEqual(t, initial, next.Hash())

	// resetting restores the initial hash
	state, err = env.Reset(nil)
	require.NoError(t, err)
	assert.Equal(t, initial, state.Hash())
}

func TestActionsEnumeration(t *testing.T) {
	env := NewEnvironment(twoSubnetScenario(t, 0), 1)
	state, err := env.Reset(nil)
	require.NoError(t, err)

	// only A is reachable: one scan plus one action per exploit
	actions := state.(*NetworkState).Actions()
	require.Len(t, actions, 3)
	hashes := make([]string, len(actions))
	for i, a := range actions {
		hashes[i] = a.Hash()
	}
	assert.Contains(t, hashes, "Scan(A)")
	assert.Contains(t, hashes, "Exploit(E1,A)")
	assert.Contains(t, hashes, "Exploit(E2,A)")

	// compromising A removes it as a target and opens B
	next, _ := testStep(t, env, &ExploitAction{Exploit: "E1", Target: "A"})
	actions = next.Actions()
	require.Len(t, actions, 3)
	for _, a := range actions {
		assert.Contains(t, a.Hash(), "B")
	}
}

func TestRender(t *testing.T) {
	env := NewEnvironment(twoSubnetScenario(t, 0), 1)
	_, err := env.Reset(nil)
	require.NoError(t, err)

	var b strings.Builder
	env.State().Render(&b)
	out := b.String()
	assert.Contains(t, out, "subnet 1 (exposed): r")
	assert.Contains(t, out, "subnet 2: S")

	testStep(t, env, &ExploitAction{Exploit: "E1", Target: "A"})
	b.Reset()
	env.State().Render(&b)
	out = b.String()
	assert.Contains(t, out, "subnet 1 (exposed): c")
	assert.Contains(t, out, "subnet 2: R")
}
