package netsim

// ReachableSet computes the set of machines currently reachable given
// the compromised machines. A subnet is reachable if it is exposed,
// or if an adjacent reachable subnet hosts a compromised machine.
// Pure function of the fixed topology and the compromised set,
// re-derived from scratch on every call.
func (s *Scenario) ReachableSet(compromised map[MachineID]bool) map[MachineID]bool {
	reachableSubnets := make(map[int]bool)
	queue := make([]int, 0, len(s.Topology.Subnets))
	for _, id := range s.Topology.subnetOrder {
		if s.Topology.Subnets[id].Exposed {
			reachableSubnets[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		// the frontier only extends across subnets that host a foothold
		if !s.subnetHasCompromised(cur, compromised) {
			continue
		}
		for _, adj := range s.Topology.Subnets[cur].Adjacent {
			if !reachableSubnets[adj] {
				reachableSubnets[adj] = true
				queue = append(queue, adj)
			}
		}
	}

	reachable := make(map[MachineID]bool)
	for _, id := range s.Topology.machineOrder {
		if reachableSubnets[s.Topology.Machines[id].Subnet] {
			reachable[id] = true
		}
	}
	return reachable
}

func (s *Scenario) subnetHasCompromised(subnet int, compromised map[MachineID]bool) bool {
	for _, id := range s.Topology.Subnets[subnet].Machines {
		if compromised[id] {
			return true
		}
	}
	return false
}
