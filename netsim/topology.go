package netsim

import (
	"fmt"
	"sort"
)

// MachineID identifies a machine on the simulated network.
type MachineID string

// Subnet groups machines and connects to adjacent subnets.
// Exposed subnets are reachable without any prior compromise.
// Immutable after scenario construction.
type Subnet struct {
	ID       int
	Exposed  bool
	Adjacent []int
	Machines []MachineID
}

// Machine on the simulated network. Services are the ground truth
// configuration, hidden from the agent until scanned.
// Immutable after scenario construction.
type Machine struct {
	ID       MachineID
	Subnet   int
	Services []string
	Document bool
	Value    float64
}

// RunsService reports whether the service is part of the ground truth
// configuration of the machine.
func (m *Machine) RunsService(service string) bool {
	for _, s := range m.Services {
		if s == service {
			return true
		}
	}
	return false
}

func (t *Topology) validate() error {
	if len(t.Subnets) == 0 {
		return fmt.Errorf("topology has no subnets")
	}
	if len(t.Machines) == 0 {
		return fmt.Errorf("topology has no machines")
	}
	exposed := false
	for id, sn := range t.Subnets {
		if sn.ID != id {
			return fmt.Errorf("subnet %d indexed under %d", sn.ID, id)
		}
		if sn.Exposed {
			exposed = true
		}
		for _, adj := range sn.Adjacent {
			if adj == sn.ID {
				return fmt.Errorf("subnet %d adjacent to itself", sn.ID)
			}
			if _, ok := t.Subnets[adj]; !ok {
				return fmt.Errorf("subnet %d adjacent to unknown subnet %d", sn.ID, adj)
			}
		}
	}
	if !exposed {
		return fmt.Errorf("topology has no exposed subnet")
	}
	for id, m := range t.Machines {
		if m.ID != id {
			return fmt.Errorf("machine %s indexed under %s", m.ID, id)
		}
		if _, ok := t.Subnets[m.Subnet]; !ok {
			return fmt.Errorf("machine %s on unknown subnet %d", m.ID, m.Subnet)
		}
	}
	return nil
}

// Topology is the static description of the network graph:
// subnets, their adjacency and the machines on them.
type Topology struct {
	Subnets  map[int]*Subnet
	Machines map[MachineID]*Machine

	// stable iteration orders
	subnetOrder  []int
	machineOrder []MachineID
}

func newTopology(subnets []*Subnet, machines []*Machine) (*Topology, error) {
	t := &Topology{
		Subnets:      make(map[int]*Subnet),
		Machines:     make(map[MachineID]*Machine),
		subnetOrder:  make([]int, 0, len(subnets)),
		machineOrder: make([]MachineID, 0, len(machines)),
	}
	for _, sn := range subnets {
		if _, ok := t.Subnets[sn.ID]; ok {
			return nil, fmt.Errorf("duplicate subnet id %d", sn.ID)
		}
		t.Subnets[sn.ID] = sn
		t.subnetOrder = append(t.subnetOrder, sn.ID)
	}
	for _, m := range machines {
		if _, ok := t.Machines[m.ID]; ok {
			return nil, fmt.Errorf("duplicate machine id %s", m.ID)
		}
		t.Machines[m.ID] = m
		t.machineOrder = append(t.machineOrder, m.ID)
	}
	sort.Ints(t.subnetOrder)
	sort.Slice(t.machineOrder, func(i, j int) bool { return t.machineOrder[i] < t.machineOrder[j] })
	for _, id := range t.machineOrder {
		m := t.Machines[id]
		if sn, ok := t.Subnets[m.Subnet]; ok {
			sn.Machines = append(sn.Machines, m.ID)
		}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MachineOrder returns the machine ids in stable sorted order.
func (t *Topology) MachineOrder() []MachineID {
	out := make([]MachineID, len(t.machineOrder))
	copy(out, t.machineOrder)
	return out
}

// SubnetOrder returns the subnet ids in stable sorted order.
func (t *Topology) SubnetOrder() []int {
	out := make([]int, len(t.subnetOrder))
	copy(out, t.subnetOrder)
	return out
}
