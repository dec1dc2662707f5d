package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/Jjschwartz/gym-cyber-attack/netsim"
	"github.com/Jjschwartz/gym-cyber-attack/types"
	"github.com/gin-gonic/gin"
)

// StepRequest submits one action against the running episode.
// Action is "scan" or an exploit id from the scenario.
type StepRequest struct {
	Action string `json:"action"`
	Target string `json:"target"`
}

type StepResponse struct {
	Observation *netsim.NetworkState `json:"observation"`
	Reward      float64              `json:"reward"`
	Terminal    bool                 `json:"terminal"`
	Reason      string               `json:"reason"`
	Info        map[string]string    `json:"info"`
}

type ResetResponse struct {
	Observation *netsim.NetworkState `json:"observation"`
}

// Server exposes a single environment over a json api so external
// trainers can drive the simulator. Requests are serialized, the
// episode is turn based.
type Server struct {
	env   *netsim.Environment
	eCtx  *types.EpisodeContext
	state types.State
	steps int

	lock   sync.Mutex
	server *http.Server
}

func NewServer(scenario *netsim.Scenario, port int, seed int64) *Server {
	s := &Server{
		env: netsim.NewEnvironment(scenario, seed),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.POST("/reset", s.handleReset)
	r.POST("/step", s.handleStep)
	r.GET("/render", s.handleRender)
	s.server = &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: r,
	}

	return s
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleReset(c *gin.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.eCtx = types.NewEpisodeContext(context.Background(), 0, 0, 0)
	state, err := s.env.Reset(s.eCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.state = state
	s.steps = 0
	c.JSON(http.StatusOK, ResetResponse{Observation: s.env.State()})
}

func (s *Server) handleStep(c *gin.Context) {
	req := StepRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.eCtx == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no running episode, reset first"})
		return
	}

	var action types.Action
	if strings.EqualFold(req.Action, "scan") {
		action = &netsim.ScanAction{Target: netsim.MachineID(req.Target)}
	} else {
		action = &netsim.ExploitAction{Exploit: req.Action, Target: netsim.MachineID(req.Target)}
	}

	sCtx := s.eCtx.NewStepContext(s.steps, s.state, action)
	nextState, err := s.env.Step(action, sCtx)
	if err != nil {
		switch {
		case errors.Is(err, netsim.ErrEpisodeDone):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, netsim.ErrUnknownMachine), errors.Is(err, netsim.ErrUnknownExploit):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	s.state = nextState
	s.steps += 1

	c.JSON(http.StatusOK, StepResponse{
		Observation: s.env.State(),
		Reward:      sCtx.Reward,
		Terminal:    sCtx.Terminal,
		Reason:      s.env.Terminal().String(),
		Info:        sCtx.Info,
	})
}

func (s *Server) handleRender(c *gin.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var b strings.Builder
	s.env.State().Render(&b)
	c.String(http.StatusOK, b.String())
}
