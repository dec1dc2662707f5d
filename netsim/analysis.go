package netsim

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/Jjschwartz/gym-cyber-attack/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// CompromiseAbstractor reduces a network state to the set of
// compromised machines, collapsing service knowledge. Useful for
// coverage analysis over footholds rather than full observations.
func CompromiseAbstractor() types.StateAbstractor {
	return func(s types.State) string {
		state, ok := s.(*NetworkState)
		if !ok {
			return s.Hash()
		}
		var b strings.Builder
		for _, id := range state.scenario.Topology.machineOrder {
			if state.Machines[id].Compromised {
				b.WriteString(string(id))
				b.WriteString(",")
			}
		}
		return b.String()
	}
}

// DocumentsAnalyzer tracks the number of documents collected in each
// episode
type DocumentsAnalyzer struct {
	collected []int
}

var _ types.Analyzer = &DocumentsAnalyzer{}

func NewDocumentsAnalyzer() *DocumentsAnalyzer {
	return &DocumentsAnalyzer{
		collected: make([]int, 0),
	}
}

func (d *DocumentsAnalyzer) Analyze(run, episode int, experiment string, trace *types.Trace) {
	docs := 0
	if _, _, ns, ok := trace.Last(); ok {
		if state, ok := ns.(*NetworkState); ok {
			for _, v := range state.Machines {
				if v.Collected {
					docs += 1
				}
			}
		}
	}
	d.collected = append(d.collected, docs)
}

func (d *DocumentsAnalyzer) DataSet() types.DataSet {
	return d.collected
}

func (d *DocumentsAnalyzer) Reset() {
	d.collected = make([]int, 0)
}

// DocumentsPlotter plots the documents collected per episode for each
// experiment
func DocumentsPlotter(plotPath string) types.Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run, _ int, s []string, ds []types.DataSet) {
		p := plot.New()
		p.Title.Text = "Documents collected"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Documents"
		for i := 0; i < len(s); i++ {
			collected := ds[i].([]int)
			points := make(plotter.XYs, len(collected))
			total := 0
			for j, v := range collected {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
				total += v
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
			fmt.Printf("Documents collected over all episodes: %d for experiment: %s\n", total, s[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_documents.png"))
	}
}

// ReadableTrace formats an episode trace as one action per line.
func ReadableTrace(t *types.Trace) string {
	var b strings.Builder
	for i := 0; i < t.Len(); i++ {
		_, a, ns, ok := t.Get(i)
		if !ok {
			break
		}
		reward, _ := t.Reward(i)
		terminal := ""
		if state, ok := ns.(*NetworkState); ok && state.Terminal != ReasonNone {
			terminal = " -> " + state.Terminal.String()
		}
		fmt.Fprintf(&b, "[%3d] %-30s reward: %8.1f%s\n", i, a.Hash(), reward, terminal)
	}
	return b.String()
}
