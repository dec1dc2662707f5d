package netsim

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Jjschwartz/gym-cyber-attack/types"
)

// ServiceKnowledge is what the agent knows about one service on one
// machine. Ground truth never changes during an episode, only the
// knowledge does.
type ServiceKnowledge int8

const (
	ServiceUnknown ServiceKnowledge = iota
	ServicePresent
	ServiceAbsent
)

func (k ServiceKnowledge) String() string {
	switch k {
	case ServicePresent:
		return "present"
	case ServiceAbsent:
		return "absent"
	}
	return "unknown"
}

func (k ServiceKnowledge) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

func (k *ServiceKnowledge) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	switch s {
	case "present":
		*k = ServicePresent
	case "absent":
		*k = ServiceAbsent
	default:
		*k = ServiceUnknown
	}
	return nil
}

// TerminalReason of an episode.
type TerminalReason int

const (
	ReasonNone TerminalReason = iota
	ReasonGoal
	ReasonCaught
)

func (r TerminalReason) String() string {
	switch r {
	case ReasonGoal:
		return "goal"
	case ReasonCaught:
		return "caught"
	}
	return "none"
}

func (r TerminalReason) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

func (r *TerminalReason) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	switch s {
	case "goal":
		*r = ReasonGoal
	case "caught":
		*r = ReasonCaught
	default:
		*r = ReasonNone
	}
	return nil
}

// MachineView is the agent visible knowledge of one machine.
type MachineView struct {
	ID          MachineID                   `json:"id"`
	Subnet      int                         `json:"subnet"`
	Services    map[string]ServiceKnowledge `json:"services"`
	Compromised bool                        `json:"compromised"`
	Reachable   bool                        `json:"reachable"`
	Sensitive   bool                        `json:"sensitive"`
	Collected   bool                        `json:"collected"`
}

// NetworkState is the agent visible snapshot of the network, handed
// out by the environment after every step. Immutable once built.
type NetworkState struct {
	scenario *Scenario

	Machines map[MachineID]*MachineView `json:"machines"`
	Terminal TerminalReason             `json:"terminal"`
}

var _ types.State = &NetworkState{}

// Hash is the deterministic digest of the agent visible view, used to
// index q tables and coverage maps.
func (s *NetworkState) Hash() string {
	var b strings.Builder
	for _, id := range s.scenario.Topology.machineOrder {
		v := s.Machines[id]
		b.WriteString(string(id))
		b.WriteString(":")
		for _, svc := range s.scenario.Vulns.Services {
			switch v.Services[svc] {
			case ServicePresent:
				b.WriteString("p")
			case ServiceAbsent:
				b.WriteString("a")
			default:
				b.WriteString("u")
			}
		}
		if v.Compromised {
			b.WriteString("c")
		}
		if v.Reachable {
			b.WriteString("r")
		}
		if v.Collected {
			b.WriteString("d")
		}
		b.WriteString("|")
	}
	if s.Terminal != ReasonNone {
		b.WriteString(s.Terminal.String())
	}
	return b.String()
}

// Actions enumerates the scan and exploit actions available from this
// state. Terminal states have none. Targets are restricted to
// reachable machines that are not yet compromised, everything else is
// a wasted turn by construction.
func (s *NetworkState) Actions() []types.Action {
	if s.Terminal != ReasonNone {
		return nil
	}
	actions := make([]types.Action, 0)
	for _, id := range s.scenario.Topology.machineOrder {
		v := s.Machines[id]
		if !v.Reachable || v.Compromised {
			continue
		}
		actions = append(actions, &ScanAction{Target: id})
		for _, eid := range s.scenario.Vulns.exploitOrder {
			actions = append(actions, &ExploitAction{Exploit: eid, Target: id})
		}
	}
	return actions
}

// View returns the agent view of the given machine.
func (s *NetworkState) View(id MachineID) (*MachineView, bool) {
	v, ok := s.Machines[id]
	return v, ok
}

func (s *NetworkState) String() string {
	return fmt.Sprintf("NetworkState(%s)", s.Hash())
}
