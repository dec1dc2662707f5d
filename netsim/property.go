package netsim

import "github.com/Jjschwartz/gym-cyber-attack/types"

// GoalReached holds when the step ended the episode with all
// documents collected.
func GoalReached() types.MonitorCondition {
	return func(_ types.State, _ types.Action, ns types.State) bool {
		state, ok := ns.(*NetworkState)
		if !ok {
			return false
		}
		return state.Terminal == ReasonGoal
	}
}

// Caught holds when the step ended the episode with a detected
// intrusion.
func Caught() types.MonitorCondition {
	return func(_ types.State, _ types.Action, ns types.State) bool {
		state, ok := ns.(*NetworkState)
		if !ok {
			return false
		}
		return state.Terminal == ReasonCaught
	}
}

// MachineCompromised holds once the given machine is compromised.
func MachineCompromised(id MachineID) types.MonitorCondition {
	return func(_ types.State, _ types.Action, ns types.State) bool {
		state, ok := ns.(*NetworkState)
		if !ok {
			return false
		}
		v, ok := state.View(id)
		return ok && v.Compromised
	}
}

func GoalMonitor() *types.Monitor {
	monitor := types.NewMonitor()
	monitor.Build().On(GoalReached(), "goal").MarkSuccess()
	return monitor
}

func CaughtMonitor() *types.Monitor {
	monitor := types.NewMonitor()
	monitor.Build().On(Caught(), "caught").MarkSuccess()
	return monitor
}

func BreachMonitor(id MachineID) *types.Monitor {
	monitor := types.NewMonitor()
	monitor.Build().On(MachineCompromised(id), "breached").MarkSuccess()
	return monitor
}
