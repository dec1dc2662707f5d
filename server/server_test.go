package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jjschwartz/gym-cyber-attack/netsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	scenario, err := netsim.NewScenario(&netsim.ScenarioConfig{
		Services: []string{"http", "ssh"},
		Subnets: []netsim.SubnetConfig{
			{ID: 1, Exposed: true, Adjacent: []int{2}},
			{ID: 2, Adjacent: []int{1}},
		},
		Machines: []netsim.MachineConfig{
			{ID: "A", Subnet: 1, Services: []string{"http"}},
			{ID: "B", Subnet: 2, Services: []string{"ssh"}, Document: true},
		},
		Exploits: []netsim.ExploitConfig{
			{ID: "E1", Service: "http"},
			{ID: "E2", Service: "ssh"},
		},
	})
	require.NoError(t, err)
	return NewServer(scenario, 0, 1)
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(w, req)
	return w
}

func TestStepWithoutResetConflicts(t *testing.T) {
	s := testServer(t)
	w := doRequest(t, s, http.MethodPost, "/step", StepRequest{Action: "scan", Target: "A"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestResetAndStep(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reset := ResetResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reset))
	require.NotNil(t, reset.Observation)
	a, ok := reset.Observation.View("A")
	require.True(t, ok)
	assert.True(t, a.Reachable)

	w = doRequest(t, s, http.MethodPost, "/step", StepRequest{Action: "scan", Target: "A"})
	require.Equal(t, http.StatusOK, w.Code)
	step := StepResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &step))
	assert.Equal(t, -netsim.DefaultScanCost, step.Reward)
	assert.False(t, step.Terminal)
	assert.Equal(t, "scan", step.Info["outcome"])
}

func TestStepGoalEpisode(t *testing.T) {
	s := testServer(t)
	doRequest(t, s, http.MethodPost, "/reset", nil)
	doRequest(t, s, http.MethodPost, "/step", StepRequest{Action: "E1", Target: "A"})

	w := doRequest(t, s, http.MethodPost, "/step", StepRequest{Action: "E2", Target: "B"})
	require.Equal(t, http.StatusOK, w.Code)
	step := StepResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &step))
	assert.True(t, step.Terminal)
	assert.Equal(t, "goal", step.Reason)

	// the episode is over until the next reset
	w = doRequest(t, s, http.MethodPost, "/step", StepRequest{Action: "scan", Target: "A"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, s, http.MethodPost, "/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStepBadRequests(t *testing.T) {
	s := testServer(t)
	doRequest(t, s, http.MethodPost, "/reset", nil)

	w := doRequest(t, s, http.MethodPost, "/step", StepRequest{Action: "scan", Target: "Z"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodPost, "/step", StepRequest{Action: "E9", Target: "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRender(t *testing.T) {
	s := testServer(t)
	doRequest(t, s, http.MethodPost, "/reset", nil)

	w := doRequest(t, s, http.MethodGet, "/render", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "subnet 1 (exposed)")
}
