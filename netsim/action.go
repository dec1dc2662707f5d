package netsim

import (
	"fmt"

	"github.com/Jjschwartz/gym-cyber-attack/types"
)

// ScanAction passively reveals the full service configuration of the
// target machine. Never risks detection and never changes compromise
// state.
type ScanAction struct {
	Target MachineID
}

var _ types.Action = &ScanAction{}

func (a *ScanAction) Hash() string {
	return fmt.Sprintf("Scan(%s)", a.Target)
}

// ExploitAction attempts the exploit against the target machine.
type ExploitAction struct {
	Exploit string
	Target  MachineID
}

var _ types.Action = &ExploitAction{}

func (a *ExploitAction) Hash() string {
	return fmt.Sprintf("Exploit(%s,%s)", a.Exploit, a.Target)
}
