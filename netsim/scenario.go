package netsim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default action costs and machine values
const (
	DefaultScanCost      = 10.0
	DefaultExploitCost   = 10.0
	DefaultCaughtPenalty = -5000.0

	SensitiveMachineValue = 9000.0
	UserMachineValue      = 5000.0
)

// RewardConfig parameterizes the reward accounting of an episode.
// Costs are subtracted from the step reward, the penalty is credited
// when the intrusion is detected.
type RewardConfig struct {
	ScanCost      float64 `yaml:"scan_cost"`
	ExploitCost   float64 `yaml:"exploit_cost"`
	CaughtPenalty float64 `yaml:"caught_penalty"`
}

func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		ScanCost:      DefaultScanCost,
		ExploitCost:   DefaultExploitCost,
		CaughtPenalty: DefaultCaughtPenalty,
	}
}

// Scenario is the full immutable configuration of an environment:
// topology, vulnerability model and reward parameters. A single
// scenario is safely shared by concurrently running environments.
type Scenario struct {
	Topology *Topology
	Vulns    *VulnModel
	Rewards  RewardConfig

	documents int
}

// ScenarioConfig is the declarative yaml description of a scenario.
type ScenarioConfig struct {
	Services []string        `yaml:"services"`
	Subnets  []SubnetConfig  `yaml:"subnets"`
	Machines []MachineConfig `yaml:"machines"`
	Exploits []ExploitConfig `yaml:"exploits"`
	Rewards  *RewardConfig   `yaml:"rewards"`
}

type SubnetConfig struct {
	ID       int   `yaml:"id"`
	Exposed  bool  `yaml:"exposed"`
	Adjacent []int `yaml:"adjacent"`
}

type MachineConfig struct {
	ID       string   `yaml:"id"`
	Subnet   int      `yaml:"subnet"`
	Services []string `yaml:"services"`
	Document bool     `yaml:"document"`
	Value    float64  `yaml:"value"`
}

type ExploitConfig struct {
	ID        string  `yaml:"id"`
	Service   string  `yaml:"service"`
	Detection float64 `yaml:"detection"`
}

// NewScenario builds and validates a scenario from its configuration.
// Malformed configurations (dangling adjacency, unknown services,
// no exposed subnet) are fatal here, the environment refuses to start.
func NewScenario(cfg *ScenarioConfig) (*Scenario, error) {
	subnets := make([]*Subnet, 0, len(cfg.Subnets))
	for _, sc := range cfg.Subnets {
		subnets = append(subnets, &Subnet{
			ID:       sc.ID,
			Exposed:  sc.Exposed,
			Adjacent: sc.Adjacent,
		})
	}
	machines := make([]*Machine, 0, len(cfg.Machines))
	for _, mc := range cfg.Machines {
		value := mc.Value
		if mc.Document && value == 0 {
			value = SensitiveMachineValue
		}
		machines = append(machines, &Machine{
			ID:       MachineID(mc.ID),
			Subnet:   mc.Subnet,
			Services: mc.Services,
			Document: mc.Document,
			Value:    value,
		})
	}
	topology, err := newTopology(subnets, machines)
	if err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}

	exploits := make([]*Exploit, 0, len(cfg.Exploits))
	for _, ec := range cfg.Exploits {
		exploits = append(exploits, &Exploit{
			ID:        ec.ID,
			Service:   ec.Service,
			Detection: ec.Detection,
		})
	}
	vulns, err := newVulnModel(cfg.Services, exploits)
	if err != nil {
		return nil, fmt.Errorf("invalid vulnerability model: %w", err)
	}
	for _, id := range topology.machineOrder {
		for _, s := range topology.Machines[id].Services {
			if !vulns.HasService(s) {
				return nil, fmt.Errorf("machine %s runs unknown service %s", id, s)
			}
		}
	}

	rewards := DefaultRewardConfig()
	if cfg.Rewards != nil {
		rewards = *cfg.Rewards
	}

	documents := 0
	for _, id := range topology.machineOrder {
		if topology.Machines[id].Document {
			documents += 1
		}
	}
	if documents == 0 {
		return nil, fmt.Errorf("scenario has no sensitive documents, goal state is unreachable")
	}

	return &Scenario{
		Topology:  topology,
		Vulns:     vulns,
		Rewards:   rewards,
		documents: documents,
	}, nil
}

// LoadScenario reads a yaml scenario description from disk.
func LoadScenario(path string) (*Scenario, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	cfg := &ScenarioConfig{}
	if err := yaml.Unmarshal(bs, cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return NewScenario(cfg)
}

// Documents returns the total number of sensitive documents placed
// on the network.
func (s *Scenario) Documents() int {
	return s.documents
}

// WriteConfig records the scenario back to a yaml file.
func (s *Scenario) WriteConfig(path string) error {
	cfg := &ScenarioConfig{
		Services: s.Vulns.Services,
		Rewards:  &s.Rewards,
	}
	for _, id := range s.Topology.subnetOrder {
		sn := s.Topology.Subnets[id]
		cfg.Subnets = append(cfg.Subnets, SubnetConfig{
			ID:       sn.ID,
			Exposed:  sn.Exposed,
			Adjacent: sn.Adjacent,
		})
	}
	for _, id := range s.Topology.machineOrder {
		m := s.Topology.Machines[id]
		cfg.Machines = append(cfg.Machines, MachineConfig{
			ID:       string(m.ID),
			Subnet:   m.Subnet,
			Services: m.Services,
			Document: m.Document,
			Value:    m.Value,
		})
	}
	for _, id := range s.Vulns.exploitOrder {
		e := s.Vulns.Exploits[id]
		cfg.Exploits = append(cfg.Exploits, ExploitConfig{
			ID:        e.ID,
			Service:   e.Service,
			Detection: e.Detection,
		})
	}
	bs, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0644)
}
