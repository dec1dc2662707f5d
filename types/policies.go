package types

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"time"

	"gonum.org/v1/gonum/stat/sampleuv"
)

type Policy interface {
	UpdateIteration(int, *Trace)
	NextAction(int, State, []Action) (Action, bool)
	Update(*StepContext)
	Record(string)
	Reset()
}

// SoftMaxNegPolicy picks actions with softmax over q values and
// updates with a constant -1 reward, pushing the agent away from
// frequently taken transitions
type SoftMaxNegPolicy struct {
	QTable map[string]map[string]float64
	Alpha  float64
	Gamma  float64
	Temp   float64
}

func NewSoftMaxNegPolicy(alpha, gamma, temp float64) *SoftMaxNegPolicy {
	return &SoftMaxNegPolicy{
		QTable: make(map[string]map[string]float64),
		Alpha:  alpha,
		Gamma:  gamma,
		Temp:   temp,
	}
}

var _ Policy = &SoftMaxNegPolicy{}

func (s *SoftMaxNegPolicy) Reset() {
	s.QTable = make(map[string]map[string]float64)
}

func (s *SoftMaxNegPolicy) UpdateIteration(_ int, _ *Trace) {

}

func (s *SoftMaxNegPolicy) Record(path string) {
	bs, err := json.Marshal(s.QTable)
	if err != nil {
		return
	}
	os.WriteFile(path+".json", bs, 0644)
}

func (s *SoftMaxNegPolicy) NextAction(step int, state State, actions []Action) (Action, bool) {
	stateHash := state.Hash()

	if _, ok := s.QTable[stateHash]; !ok {
		s.QTable[stateHash] = make(map[string]float64)
	}

	for _, a := range actions {
		aName := a.Hash()
		if _, ok := s.QTable[stateHash][aName]; !ok {
			s.QTable[stateHash][aName] = 0
		}
	}

	sum := float64(0)
	weights := make([]float64, len(actions))
	vals := make([]float64, len(actions))

	for i, action := range actions {
		val := s.QTable[stateHash][action.Hash()]
		exp := math.Exp(val / s.Temp)
		vals[i] = exp
		sum += exp
	}

	for i, v := range vals {
		weights[i] = v / sum
	}
	i, ok := sampleuv.NewWeighted(weights, nil).Take()
	if !ok {
		return nil, false
	}
	return actions[i], true
}

func (s *SoftMaxNegPolicy) Update(sCtx *StepContext) {
	stateHash := sCtx.State.Hash()
	nextStateHash := sCtx.NextState.Hash()
	actionKey := sCtx.Action.Hash()
	if _, ok := s.QTable[stateHash]; !ok {
		return
	}
	if _, ok := s.QTable[stateHash][actionKey]; !ok {
		return
	}
	curVal := s.QTable[stateHash][actionKey]
	max := float64(0)
	if _, ok := s.QTable[nextStateHash]; ok {
		for _, val := range s.QTable[nextStateHash] {
			if val > max {
				max = val
			}
		}
	}
	nextVal := (1-s.Alpha)*curVal + s.Alpha*(-1+s.Gamma*max)
	s.QTable[stateHash][actionKey] = nextVal
}

type RandomPolicy struct {
	rand *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *RandomPolicy) Reset() {

}

func (r *RandomPolicy) UpdateIteration(_ int, _ *Trace) {

}

func (r *RandomPolicy) Record(_ string) {

}

func (r *RandomPolicy) NextAction(step int, state State, actions []Action) (Action, bool) {
	i := r.rand.Intn(len(actions))
	return actions[i], true
}

func (r *RandomPolicy) Update(_ *StepContext) {}
