package policies

import (
	"encoding/json"
	"math"
	"os"
)

type QTable struct {
	table map[string]map[string]float64
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
	}
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	if _, ok := q.table[state][action]; !ok {
		q.table[state][action] = def
	}
	return q.table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

func (q *QTable) Values(state string) map[string]float64 {
	out := make(map[string]float64)
	if vals, ok := q.table[state]; ok {
		for a, v := range vals {
			out[a] = v
		}
	}
	return out
}

// Max returns the action with the highest value in the given state
// and its value, or ("", def) for an unseen state
func (q *QTable) Max(state string, def float64) (string, float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
		return "", def
	}
	maxAction := ""
	maxVal := math.Inf(-1)
	for action, val := range q.table[state] {
		if val > maxVal {
			maxVal = val
			maxAction = action
		}
	}
	if maxAction == "" {
		return "", def
	}
	return maxAction, maxVal
}

// MaxAmong returns the highest valued action restricted to the
// available actions, defaulting unseen entries to def
func (q *QTable) MaxAmong(state string, available []string, def float64) (string, float64) {
	if len(available) == 0 {
		return "", def
	}
	maxAction := ""
	maxVal := math.Inf(-1)
	for _, action := range available {
		val := q.Get(state, action, def)
		if val > maxVal {
			maxVal = val
			maxAction = action
		}
	}
	return maxAction, maxVal
}

// Record the table to the specified file as json
func (q *QTable) Record(path string) error {
	bs, err := json.Marshal(q.table)
	if err != nil {
		return err
	}
	return os.WriteFile(path+".json", bs, 0644)
}

// Read a table previously written with Record
func (q *QTable) Read(path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(bs, &q.table)
}
