package types

type AgentConfig struct {
	Episodes    int
	Horizon     int
	Policy      Policy
	Environment Environment
}

// RL Agent configured with the corresponding
// policy and environment
type Agent struct {
	config      *AgentConfig
	policy      Policy
	environment Environment
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		policy:      config.Policy,
		environment: config.Environment,
	}
}

// RunEpisode runs a single episode tracked by the episode context.
// The episode ends at the horizon, when the environment reports a
// terminal state, or when the policy has no action to take.
func (a *Agent) RunEpisode(eCtx *EpisodeContext) {
	state, err := a.environment.Reset(eCtx)
	if err != nil {
		eCtx.SetError(err)
		return
	}
	actions := state.Actions()

	for step := 0; step < eCtx.Horizon; step++ {
		select {
		case <-eCtx.Context.Done():
			return
		default:
		}
		if len(actions) == 0 {
			eCtx.Terminal = true
			break
		}
		action, ok := a.policy.NextAction(step, state, actions)
		if !ok {
			break
		}

		sCtx := eCtx.NewStepContext(step, state, action)
		nextState, err := a.environment.Step(action, sCtx)
		if err != nil {
			eCtx.SetError(err)
			return
		}
		sCtx.NextState = nextState
		a.policy.Update(sCtx)

		eCtx.Trace.Append(step, state, action, nextState, sCtx.Reward)
		eCtx.Reward += sCtx.Reward
		eCtx.Timesteps += 1

		if sCtx.Terminal {
			eCtx.Terminal = true
			break
		}
		state = nextState
		actions = nextState.Actions()
	}
	a.policy.UpdateIteration(eCtx.Episode, eCtx.Trace)
}
