package netsim

import (
	"fmt"
	"io"
)

// Render writes the network to w, one row per subnet with one symbol
// per machine.
//
// Key, for each machine:
//
//	C   sensitive & compromised
//	R   sensitive & reachable
//	S   sensitive
//	c   compromised
//	r   reachable
//	o   none of the above
func (s *NetworkState) Render(w io.Writer) {
	fmt.Fprintln(w, "-----------------------------")
	for _, snID := range s.scenario.Topology.subnetOrder {
		sn := s.scenario.Topology.Subnets[snID]
		row := ""
		for _, id := range sn.Machines {
			row += machineSymbol(s.Machines[id])
		}
		marker := ""
		if sn.Exposed {
			marker = " (exposed)"
		}
		fmt.Fprintf(w, "subnet %d%s: %s\n", snID, marker, row)
	}
	fmt.Fprintln(w, "-----------------------------")
}

func machineSymbol(v *MachineView) string {
	if v.Sensitive {
		if v.Compromised {
			return "C"
		}
		if v.Reachable {
			return "R"
		}
		return "S"
	}
	if v.Compromised {
		return "c"
	}
	if v.Reachable {
		return "r"
	}
	return "o"
}
