package netsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReachableSetNoFoothold(t *testing.T) {
	scenario := twoSubnetScenario(t, 0)

	reachable := scenario.ReachableSet(map[MachineID]bool{})
	assert.True(t, reachable["A"])
	assert.False(t, reachable["B"])
}

func TestReachableSetExtendsFromFoothold(t *testing.T) {
	scenario := twoSubnetScenario(t, 0)

	reachable := scenario.ReachableSet(map[MachineID]bool{"A": true})
	assert.True(t, reachable["A"])
	assert.True(t, reachable["B"])
}

func TestReachableSetChain(t *testing.T) {
	// 1 (exposed) - 2 - 3, each hop needs a foothold on the previous subnet
	scenario, err := NewScenario(&ScenarioConfig{
		Services: []string{"http"},
		Subnets: []SubnetConfig{
			{ID: 1, Exposed: true, Adjacent: []int{2}},
			{ID: 2, Adjacent: []int{1, 3}},
			{ID: 3, Adjacent: []int{2}},
		},
		Machines: []MachineConfig{
			{ID: "A", Subnet: 1, Services: []string{"http"}},
			{ID: "B", Subnet: 2, Services: []string{"http"}},
			{ID: "C", Subnet: 3, Services: []string{"http"}, Document: true},
		},
		Exploits: []ExploitConfig{{ID: "E1", Service: "http"}},
	})
	require.NoError(t, err)

	reachable := scenario.ReachableSet(map[MachineID]bool{})
	assert.True(t, reachable["A"])
	assert.False(t, reachable["B"])
	assert.False(t, reachable["C"])

	// a foothold on the exposed subnet opens subnet 2 but not 3
	reachable = scenario.ReachableSet(map[MachineID]bool{"A": true})
	assert.True(t, reachable["B"])
	assert.False(t, reachable["C"])

	reachable = scenario.ReachableSet(map[MachineID]bool{"A": true, "B": true})
	assert.True(t, reachable["C"])
}

func TestReachableSetCompromiseOutsideReachDoesNotOpen(t *testing.T) {
	scenario := twoSubnetScenario(t, 0)

	// a compromised machine on an unreachable subnet is not a foothold
	reachable := scenario.ReachableSet(map[MachineID]bool{"B": true})
	assert.True(t, reachable["A"])
	assert.False(t, reachable["B"])
}
