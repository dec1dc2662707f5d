package netsim

import (
	"fmt"
	"math/rand"
)

// Subnet roles of generated networks
const (
	exposedSubnet   = 0
	sensitiveSubnet = 1
	userSubnet      = 2
)

// Generate builds a scenario of nM machines and nS service types with
// the standard network construction rules: machine 0 sits alone on
// the exposed subnet, every 10th machine from 1 is on the sensitive
// subnet, the rest are on the user subnet. The three subnets are
// fully connected. Every 10th machine within the sensitive and user
// subnets holds a document. Each machine runs a random non empty
// subset of the services, drawn from the seeded rng so a scenario is
// reproducible from its seed. Each service gets one exploit with the
// given detection probability.
func Generate(nM, nS int, detection float64, seed int64) (*Scenario, error) {
	// network must have a minimum of 3 machines
	if nM < 3 {
		return nil, fmt.Errorf("generated network needs at least 3 machines, got %d", nM)
	}
	if nS < 1 {
		return nil, fmt.Errorf("generated network needs at least 1 service, got %d", nS)
	}
	rng := rand.New(rand.NewSource(seed))

	cfg := &ScenarioConfig{
		Subnets: []SubnetConfig{
			{ID: exposedSubnet, Exposed: true, Adjacent: []int{sensitiveSubnet, userSubnet}},
			{ID: sensitiveSubnet, Adjacent: []int{exposedSubnet, userSubnet}},
			{ID: userSubnet, Adjacent: []int{exposedSubnet, sensitiveSubnet}},
		},
	}

	services := make([]string, nS)
	for i := 0; i < nS; i++ {
		services[i] = fmt.Sprintf("svc%d", i)
	}
	cfg.Services = services

	for _, svc := range services {
		cfg.Exploits = append(cfg.Exploits, ExploitConfig{
			ID:        "exploit_" + svc,
			Service:   svc,
			Detection: detection,
		})
	}

	sID := 0
	uID := 0
	for m := 0; m < nM; m++ {
		mc := MachineConfig{Services: randomServices(rng, services)}
		switch {
		case m == 0:
			mc.Subnet = exposedSubnet
			mc.ID = fmt.Sprintf("m%d-%d", exposedSubnet, 0)
		case m%10 == 1:
			mc.Subnet = sensitiveSubnet
			mc.ID = fmt.Sprintf("m%d-%d", sensitiveSubnet, sID)
			if sID%10 == 0 {
				mc.Document = true
				mc.Value = SensitiveMachineValue
			}
			sID += 1
		default:
			mc.Subnet = userSubnet
			mc.ID = fmt.Sprintf("m%d-%d", userSubnet, uID)
			if uID%10 == 0 {
				mc.Document = true
				mc.Value = UserMachineValue
			}
			uID += 1
		}
		cfg.Machines = append(cfg.Machines, mc)
	}

	return NewScenario(cfg)
}

// randomServices draws a non empty subset of the service universe.
func randomServices(rng *rand.Rand, services []string) []string {
	for {
		subset := make([]string, 0, len(services))
		for _, svc := range services {
			if rng.Intn(2) == 1 {
				subset = append(subset, svc)
			}
		}
		if len(subset) > 0 {
			return subset
		}
	}
}
