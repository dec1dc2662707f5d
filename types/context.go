package types

import (
	"context"
	"time"
)

// EpisodeContext wraps the static and dynamic information of one episode.
// Static: episode number, horizon, run number.
// Dynamic: the trace, accumulated reward and how the episode ended.
type EpisodeContext struct {
	// Context used to stop the episode if required
	Context context.Context
	// Episode number within the run
	Episode int
	// Horizon of the episode
	Horizon int
	// Run number
	Run int

	// Trace of the steps taken in this episode
	Trace *Trace

	// Timesteps executed in the episode
	Timesteps int
	// Cumulative reward credited by the environment
	Reward float64
	// Terminal is set when the environment ended the episode before the horizon
	Terminal bool
	// RunDuration of the episode
	RunDuration time.Duration

	err error
}

func NewEpisodeContext(ctx context.Context, episode, horizon, run int) *EpisodeContext {
	return &EpisodeContext{
		Context: ctx,
		Episode: episode,
		Horizon: horizon,
		Run:     run,
		Trace:   NewTrace(),
	}
}

func (e *EpisodeContext) SetError(err error) {
	e.err = err
}

func (e *EpisodeContext) Err() error {
	return e.err
}

func (e *EpisodeContext) IsError() bool {
	return e.err != nil
}

// StepContext carries the information of a single step of the episode.
// The agent fills State and Action before calling the environment,
// the environment fills Reward, Terminal and Info during Step,
// and the agent fills NextState before handing it to the policy.
type StepContext struct {
	Step      int
	State     State
	Action    Action
	NextState State

	// Reward credited by the environment for this step
	Reward float64
	// Terminal is set by the environment when the step ended the episode
	Terminal bool
	// Info contains diagnostic outcome details
	Info map[string]string

	*EpisodeContext
}

func (e *EpisodeContext) NewStepContext(step int, state State, action Action) *StepContext {
	return &StepContext{
		Step:           step,
		State:          state,
		Action:         action,
		Info:           make(map[string]string),
		EpisodeContext: e,
	}
}
