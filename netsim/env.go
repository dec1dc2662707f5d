package netsim

import (
	"errors"
	"math/rand"

	"github.com/Jjschwartz/gym-cyber-attack/types"
)

var (
	// ErrEpisodeDone - an action was submitted after the episode
	// reached a terminal state, the caller must reset first
	ErrEpisodeDone = errors.New("episode is terminal")
	// ErrUnknownMachine - the target machine is not part of the topology
	ErrUnknownMachine = errors.New("unknown target machine")
	// ErrUnknownExploit - the exploit is not part of the scenario
	ErrUnknownExploit = errors.New("unknown exploit")
	// ErrInvalidAction - the action type does not belong to this environment
	ErrInvalidAction = errors.New("invalid action")
)

// episodeState is the mutable state of one running episode,
// exclusively owned by its Environment.
type episodeState struct {
	compromised map[MachineID]bool
	discovered  map[MachineID]map[string]ServiceKnowledge
	collected   map[MachineID]bool
	terminal    TerminalReason
	reward      float64
}

func newEpisodeState(scenario *Scenario) *episodeState {
	st := &episodeState{
		compromised: make(map[MachineID]bool),
		discovered:  make(map[MachineID]map[string]ServiceKnowledge),
		collected:   make(map[MachineID]bool),
		terminal:    ReasonNone,
	}
	for _, id := range scenario.Topology.machineOrder {
		st.discovered[id] = make(map[string]ServiceKnowledge)
	}
	return st
}

// Environment simulates a penetration test against the scenario
// network. The scenario is immutable and shared, the episode state is
// private to the environment, so concurrent episodes each need their
// own Environment instance.
type Environment struct {
	scenario *Scenario
	rng      *rand.Rand
	state    *episodeState
}

var _ types.Environment = &Environment{}

func NewEnvironment(scenario *Scenario, seed int64) *Environment {
	return &Environment{
		scenario: scenario,
		rng:      rand.New(rand.NewSource(seed)),
		state:    newEpisodeState(scenario),
	}
}

// Scenario the environment was built from.
func (e *Environment) Scenario() *Scenario {
	return e.scenario
}

// Reset discards the episode state and returns the initial
// observation: topology and document placement known, services
// undiscovered, only the exposed subnets reachable.
func (e *Environment) Reset(_ *types.EpisodeContext) (types.State, error) {
	e.state = newEpisodeState(e.scenario)
	return e.snapshot(), nil
}

// Step resolves one action. Per-step simulation conditions
// (unreachable target, failed exploit, detection) are first-class
// outcomes reported via the step context, never errors. Errors are
// caller contract violations only.
func (e *Environment) Step(act types.Action, sCtx *types.StepContext) (types.State, error) {
	if e.state.terminal != ReasonNone {
		return nil, ErrEpisodeDone
	}

	res, err := e.resolve(act)
	if err != nil {
		return nil, err
	}
	e.state.reward += res.Reward

	switch {
	case res.Outcome == OutcomeDetected:
		e.state.terminal = ReasonCaught
	case len(e.state.collected) == e.scenario.documents:
		e.state.terminal = ReasonGoal
	}

	next := e.snapshot()
	if sCtx != nil {
		sCtx.Reward = res.Reward
		sCtx.Terminal = e.state.terminal != ReasonNone
		sCtx.Info["outcome"] = res.Outcome.String()
		if res.Detail != "" {
			sCtx.Info["detail"] = res.Detail
		}
		if e.state.terminal != ReasonNone {
			sCtx.Info["terminal"] = e.state.terminal.String()
		}
	}
	return next, nil
}

// EpisodeReward accumulated since the last reset.
func (e *Environment) EpisodeReward() float64 {
	return e.state.reward
}

// Terminal reason of the current episode.
func (e *Environment) Terminal() TerminalReason {
	return e.state.terminal
}

// State returns the current agent visible snapshot.
func (e *Environment) State() *NetworkState {
	return e.snapshot()
}

// snapshot builds an immutable agent visible view of the episode state.
func (e *Environment) snapshot() *NetworkState {
	reachable := e.scenario.ReachableSet(e.state.compromised)
	views := make(map[MachineID]*MachineView)
	for _, id := range e.scenario.Topology.machineOrder {
		m := e.scenario.Topology.Machines[id]
		services := make(map[string]ServiceKnowledge)
		for svc, k := range e.state.discovered[id] {
			services[svc] = k
		}
		views[id] = &MachineView{
			ID:          id,
			Subnet:      m.Subnet,
			Services:    services,
			Compromised: e.state.compromised[id],
			Reachable:   reachable[id],
			Sensitive:   m.Document,
			Collected:   e.state.collected[id],
		}
	}
	return &NetworkState{
		scenario: e.scenario,
		Machines: views,
		Terminal: e.state.terminal,
	}
}
