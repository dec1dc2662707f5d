package netsim

import (
	"fmt"

	"github.com/Jjschwartz/gym-cyber-attack/types"
)

// Outcome of resolving a single action. Exactly one outcome occurs
// per step; a collected document is part of the compromise outcome.
type Outcome int

const (
	// OutcomeNoop - the target was unreachable or already compromised,
	// nothing changed beyond the wasted turn
	OutcomeNoop Outcome = iota
	// OutcomeScan - the service configuration of the target was revealed
	OutcomeScan
	// OutcomeExploitFailed - the target does not run the targeted service
	OutcomeExploitFailed
	// OutcomeCompromise - the exploit succeeded
	OutcomeCompromise
	// OutcomeCompromiseCollect - the exploit succeeded and a sensitive
	// document was collected
	OutcomeCompromiseCollect
	// OutcomeDetected - the exploit attempt was noticed, the episode is lost
	OutcomeDetected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeScan:
		return "scan"
	case OutcomeExploitFailed:
		return "exploit_failed"
	case OutcomeCompromise:
		return "compromise"
	case OutcomeCompromiseCollect:
		return "compromise_collect"
	case OutcomeDetected:
		return "detected"
	}
	return "noop"
}

type stepResult struct {
	Outcome Outcome
	Reward  float64
	Detail  string
}

// resolve checks reachability and preconditions of the action and
// mutates the episode state accordingly. Simulation outcomes
// (unreachable target, failed exploit, detection) are results, not
// errors; only caller contract violations return an error.
func (e *Environment) resolve(act types.Action) (stepResult, error) {
	reachable := e.scenario.ReachableSet(e.state.compromised)

	switch a := act.(type) {
	case *ScanAction:
		m, ok := e.scenario.Topology.Machines[a.Target]
		if !ok {
			return stepResult{}, fmt.Errorf("%w: %s", ErrUnknownMachine, a.Target)
		}
		res := stepResult{Reward: -e.scenario.Rewards.ScanCost}
		if !reachable[a.Target] {
			res.Outcome = OutcomeNoop
			res.Detail = "target unreachable"
			return res, nil
		}
		// scanning is passive, the full ground truth is revealed
		for _, svc := range e.scenario.Vulns.Services {
			if m.RunsService(svc) {
				e.state.discovered[a.Target][svc] = ServicePresent
			} else {
				e.state.discovered[a.Target][svc] = ServiceAbsent
			}
		}
		res.Outcome = OutcomeScan
		return res, nil

	case *ExploitAction:
		m, ok := e.scenario.Topology.Machines[a.Target]
		if !ok {
			return stepResult{}, fmt.Errorf("%w: %s", ErrUnknownMachine, a.Target)
		}
		exp, ok := e.scenario.Vulns.Exploits[a.Exploit]
		if !ok {
			return stepResult{}, fmt.Errorf("%w: %s", ErrUnknownExploit, a.Exploit)
		}
		res := stepResult{Reward: -e.scenario.Rewards.ExploitCost}
		if !reachable[a.Target] {
			res.Outcome = OutcomeNoop
			res.Detail = "target unreachable"
			return res, nil
		}
		if e.state.compromised[a.Target] {
			res.Outcome = OutcomeNoop
			res.Detail = "target already compromised"
			return res, nil
		}
		// detection is drawn independently of success
		if exp.Detection > 0 && e.rng.Float64() < exp.Detection {
			res.Outcome = OutcomeDetected
			res.Reward += e.scenario.Rewards.CaughtPenalty
			res.Detail = fmt.Sprintf("exploit %s attempt detected", exp.ID)
			return res, nil
		}
		if m.RunsService(exp.Service) {
			// full service info is gained on a successful exploit
			for _, svc := range e.scenario.Vulns.Services {
				if m.RunsService(svc) {
					e.state.discovered[a.Target][svc] = ServicePresent
				} else {
					e.state.discovered[a.Target][svc] = ServiceAbsent
				}
			}
			e.state.compromised[a.Target] = true
			res.Outcome = OutcomeCompromise
			if m.Document && !e.state.collected[a.Target] {
				e.state.collected[a.Target] = true
				res.Reward += m.Value
				res.Outcome = OutcomeCompromiseCollect
			}
			return res, nil
		}
		// a failed exploit reveals the targeted service as absent
		e.state.discovered[a.Target][exp.Service] = ServiceAbsent
		res.Outcome = OutcomeExploitFailed
		return res, nil

	default:
		return stepResult{}, fmt.Errorf("%w: %T", ErrInvalidAction, act)
	}
}
