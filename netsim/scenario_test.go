package netsim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoSubnetScenario builds the smallest interesting network: an
// exposed subnet with one web server and an internal subnet with one
// ssh server holding a document.
func twoSubnetScenario(t *testing.T, detection float64) *Scenario {
	t.Helper()
	scenario, err := NewScenario(&ScenarioConfig{
		Services: []string{"http", "ssh"},
		Subnets: []SubnetConfig{
			{ID: 1, Exposed: true, Adjacent: []int{2}},
			{ID: 2, Adjacent: []int{1}},
		},
		Machines: []MachineConfig{
			{ID: "A", Subnet: 1, Services: []string{"http"}},
			{ID: "B", Subnet: 2, Services: []string{"ssh"}, Document: true, Value: SensitiveMachineValue},
		},
		Exploits: []ExploitConfig{
			{ID: "E1", Service: "http", Detection: detection},
			{ID: "E2", Service: "ssh", Detection: detection},
		},
	})
	require.NoError(t, err)
	return scenario
}

func TestNewScenario(t *testing.T) {
	scenario := twoSubnetScenario(t, 0)

	assert.Equal(t, 1, scenario.Documents())
	assert.Equal(t, []MachineID{"A", "B"}, scenario.Topology.MachineOrder())
	assert.Equal(t, []int{1, 2}, scenario.Topology.SubnetOrder())
	assert.Equal(t, []string{"E1", "E2"}, scenario.Vulns.ExploitOrder())
	assert.Equal(t, DefaultRewardConfig(), scenario.Rewards)
	assert.True(t, scenario.Topology.Machines["A"].RunsService("http"))
	assert.False(t, scenario.Topology.Machines["A"].RunsService("ssh"))
}

func TestNewScenarioRejectsInvalidConfigs(t *testing.T) {
	base := func() *ScenarioConfig {
		return &ScenarioConfig{
			Services: []string{"http"},
			Subnets:  []SubnetConfig{{ID: 1, Exposed: true}},
			Machines: []MachineConfig{{ID: "A", Subnet: 1, Services: []string{"http"}, Document: true}},
			Exploits: []ExploitConfig{{ID: "E1", Service: "http"}},
		}
	}
	cases := []struct {
		name   string
		mutate func(cfg *ScenarioConfig)
	}{
		{"no exposed subnet", func(cfg *ScenarioConfig) {
			cfg.Subnets[0].Exposed = false
		}},
		{"dangling adjacency", func(cfg *ScenarioConfig) {
			cfg.Subnets[0].Adjacent = []int{7}
		}},
		{"self adjacency", func(cfg *ScenarioConfig) {
			cfg.Subnets[0].Adjacent = []int{1}
		}},
		{"duplicate subnet", func(cfg *ScenarioConfig) {
			cfg.Subnets = append(cfg.Subnets, SubnetConfig{ID: 1})
		}},
		{"duplicate machine", func(cfg *ScenarioConfig) {
			cfg.Machines = append(cfg.Machines, cfg.Machines[0])
		}},
		{"machine on unknown subnet", func(cfg *ScenarioConfig) {
			cfg.Machines[0].Subnet = 9
		}},
		{"machine with unknown service", func(cfg *ScenarioConfig) {
			cfg.Machines[0].Services = []string{"ftp"}
		}},
		{"exploit for unknown service", func(cfg *ScenarioConfig) {
			cfg.Exploits[0].Service = "ftp"
		}},
		{"duplicate exploit", func(cfg *ScenarioConfig) {
			cfg.Exploits = append(cfg.Exploits, cfg.Exploits[0])
		}},
		{"detection out of range", func(cfg *ScenarioConfig) {
			cfg.Exploits[0].Detection = 1.5
		}},
		{"no documents", func(cfg *ScenarioConfig) {
			cfg.Machines[0].Document = false
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := base()
			c.mutate(cfg)
			_, err := NewScenario(cfg)
			assert.Error(t, err)
		})
	}
}

func TestDocumentMachineGetsDefaultValue(t *testing.T) {
	scenario, err := NewScenario(&ScenarioConfig{
		Services: []string{"http"},
		Subnets:  []SubnetConfig{{ID: 0, Exposed: true}},
		Machines: []MachineConfig{{ID: "A", Subnet: 0, Services: []string{"http"}, Document: true}},
		Exploits: []ExploitConfig{{ID: "E1", Service: "http"}},
	})
	require.NoError(t, err)
	assert.Equal(t, SensitiveMachineValue, scenario.Topology.Machines["A"].Value)
}

func TestLoadScenario(t *testing.T) {
	doc := `
services: [http, ssh]
subnets:
  - id: 1
    exposed: true
    adjacent: [2]
  - id: 2
    adjacent: [1]
machines:
  - id: A
    subnet: 1
    services: [http]
  - id: B
    subnet: 2
    services: [ssh]
    document: true
    value: 9000
exploits:
  - id: E1
    service: http
  - id: E2
    service: ssh
    detection: 0.1
rewards:
  scan_cost: 5
  exploit_cost: 20
  caught_penalty: -1000
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 1, scenario.Documents())
	assert.Equal(t, 5.0, scenario.Rewards.ScanCost)
	assert.Equal(t, 20.0, scenario.Rewards.ExploitCost)
	assert.Equal(t, -1000.0, scenario.Rewards.CaughtPenalty)
	assert.Equal(t, 0.1, scenario.Vulns.Exploits["E2"].Detection)
}

func TestWriteConfigRoundTrip(t *testing.T) {
	scenario := twoSubnetScenario(t, 0.2)
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, scenario.WriteConfig(path))

	loaded, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, scenario.Topology.MachineOrder(), loaded.Topology.MachineOrder())
	assert.Equal(t, scenario.Vulns.ExploitOrder(), loaded.Vulns.ExploitOrder())
	assert.Equal(t, scenario.Rewards, loaded.Rewards)
	assert.Equal(t, scenario.Documents(), loaded.Documents())
	assert.Equal(t, 0.2, loaded.Vulns.Exploits["E1"].Detection)
}
