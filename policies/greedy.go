package policies

import (
	"time"

	"github.com/Jjschwartz/gym-cyber-attack/types"
	"golang.org/x/exp/rand"
)

// EpsilonGreedyPolicy learns from the rewards credited by the
// environment with a standard q learning update and picks the
// highest valued action, exploring randomly with probability epsilon
type EpsilonGreedyPolicy struct {
	qTable   *QTable
	alpha    float64
	discount float64
	epsilon  float64
	rand     *rand.Rand
}

var _ types.Policy = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(alpha, discount, epsilon float64) *EpsilonGreedyPolicy {
	return &EpsilonGreedyPolicy{
		qTable:   NewQTable(),
		alpha:    alpha,
		discount: discount,
		epsilon:  epsilon,
		rand:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (e *EpsilonGreedyPolicy) Record(path string) {
	e.qTable.Record(path)
}

func (e *EpsilonGreedyPolicy) Reset() {
	e.qTable = NewQTable()
}

func (e *EpsilonGreedyPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {

	if e.rand.Float64() < e.epsilon {
		i := e.rand.Intn(len(actions))
		return actions[i], true
	}

	actionsMap := make(map[string]types.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	maxAction, _ := e.qTable.MaxAmong(state.Hash(), availableActions, 0)
	if maxAction == "" {
		return nil, false
	}
	return actionsMap[maxAction], true
}

func (e *EpsilonGreedyPolicy) Update(sCtx *types.StepContext) {
	stateHash := sCtx.State.Hash()
	actionHash := sCtx.Action.Hash()
	nextStateHash := sCtx.NextState.Hash()

	nextStateVal := 0.0
	// terminal states have no successor value
	if !sCtx.Terminal {
		_, nextStateVal = e.qTable.Max(nextStateHash, 0)
	}
	curVal := e.qTable.Get(stateHash, actionHash, 0)

	newVal := (1-e.alpha)*curVal + e.alpha*(sCtx.Reward+e.discount*nextStateVal)
	e.qTable.Set(stateHash, actionHash, newVal)
}

func (e *EpsilonGreedyPolicy) UpdateIteration(iteration int, trace *types.Trace) {

}
