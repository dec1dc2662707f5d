package netsim

import (
	"fmt"
	"sort"
)

// Exploit targets exactly one service type. An exploit succeeds
// against a machine iff the machine actually runs the targeted
// service. Detection is the probability of the attempt being noticed,
// drawn independently of success.
type Exploit struct {
	ID        string
	Service   string
	Detection float64
}

// VulnModel holds the service universe and the exploit catalogue.
// Immutable after scenario construction.
type VulnModel struct {
	Services []string
	Exploits map[string]*Exploit

	exploitOrder []string
}

func newVulnModel(services []string, exploits []*Exploit) (*VulnModel, error) {
	v := &VulnModel{
		Services:     services,
		Exploits:     make(map[string]*Exploit),
		exploitOrder: make([]string, 0, len(exploits)),
	}
	known := make(map[string]bool)
	for _, s := range services {
		if known[s] {
			return nil, fmt.Errorf("duplicate service %s", s)
		}
		known[s] = true
	}
	for _, e := range exploits {
		if _, ok := v.Exploits[e.ID]; ok {
			return nil, fmt.Errorf("duplicate exploit id %s", e.ID)
		}
		if !known[e.Service] {
			return nil, fmt.Errorf("exploit %s targets unknown service %s", e.ID, e.Service)
		}
		if e.Detection < 0 || e.Detection > 1 {
			return nil, fmt.Errorf("exploit %s detection probability %f out of range", e.ID, e.Detection)
		}
		v.Exploits[e.ID] = e
		v.exploitOrder = append(v.exploitOrder, e.ID)
	}
	sort.Strings(v.exploitOrder)
	return v, nil
}

// ExploitOrder returns the exploit ids in stable sorted order.
func (v *VulnModel) ExploitOrder() []string {
	out := make([]string, len(v.exploitOrder))
	copy(out, v.exploitOrder)
	return out
}

// HasService reports whether the service is part of the universe.
func (v *VulnModel) HasService(service string) bool {
	for _, s := range v.Services {
		if s == service {
			return true
		}
	}
	return false
}
