package types

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// CoverageAnalyzer tracks the number of unique states visited
// after each episode
type CoverageAnalyzer struct {
	uniqueStates    map[string]bool
	numUniqueStates []int

	abstractor StateAbstractor
}

var _ Analyzer = &CoverageAnalyzer{}

func NewCoverageAnalyzer(abstractor StateAbstractor) *CoverageAnalyzer {
	if abstractor == nil {
		abstractor = func(s State) string { return s.Hash() }
	}
	return &CoverageAnalyzer{
		uniqueStates:    make(map[string]bool),
		numUniqueStates: make([]int, 0),
		abstractor:      abstractor,
	}
}

func (c *CoverageAnalyzer) Analyze(run, episode int, experiment string, trace *Trace) {
	for i := 0; i < trace.Len(); i++ {
		s, _, _, _ := trace.Get(i)
		sHash := c.abstractor(s)
		if _, ok := c.uniqueStates[sHash]; !ok {
			c.uniqueStates[sHash] = true
		}
	}
	c.numUniqueStates = append(c.numUniqueStates, len(c.uniqueStates))
}

func (c *CoverageAnalyzer) DataSet() DataSet {
	return c.numUniqueStates
}

func (c *CoverageAnalyzer) Reset() {
	c.uniqueStates = make(map[string]bool)
	c.numUniqueStates = make([]int, 0)
}

// RewardAnalyzer tracks the total reward of each episode
type RewardAnalyzer struct {
	rewards []float64
}

var _ Analyzer = &RewardAnalyzer{}

func NewRewardAnalyzer() *RewardAnalyzer {
	return &RewardAnalyzer{
		rewards: make([]float64, 0),
	}
}

func (r *RewardAnalyzer) Analyze(run, episode int, experiment string, trace *Trace) {
	r.rewards = append(r.rewards, trace.TotalReward())
}

func (r *RewardAnalyzer) DataSet() DataSet {
	return r.rewards
}

func (r *RewardAnalyzer) Reset() {
	r.rewards = make([]float64, 0)
}

// PropertyAnalyzer counts, per episode, how many traces so far
// satisfied the monitor
type PropertyAnalyzer struct {
	monitor *Monitor
	counts  []int
	total   int
}

var _ Analyzer = &PropertyAnalyzer{}

func NewPropertyAnalyzer(monitor *Monitor) *PropertyAnalyzer {
	return &PropertyAnalyzer{
		monitor: monitor,
		counts:  make([]int, 0),
	}
}

func (p *PropertyAnalyzer) Analyze(run, episode int, experiment string, trace *Trace) {
	if _, ok := p.monitor.Check(trace); ok {
		p.total += 1
	}
	p.counts = append(p.counts, p.total)
}

func (p *PropertyAnalyzer) DataSet() DataSet {
	return p.counts
}

func (p *PropertyAnalyzer) Reset() {
	p.counts = make([]int, 0)
	p.total = 0
}

// CoveragePlotter plots the unique states covered per episode
// for each experiment
func CoveragePlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run, _ int, s []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "States covered"
		for i := 0; i < len(s); i++ {
			uniqueStates := ds[i].([]int)
			points := make(plotter.XYs, len(uniqueStates))
			for j, v := range uniqueStates {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
			fmt.Printf("Number of unique states: %d for experiment: %s\n", uniqueStates[len(uniqueStates)-1], s[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_coverage.png"))
	}
}

// RewardPlotter plots the total episode rewards for each experiment
func RewardPlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run, _ int, s []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Episode reward"
		for i := 0; i < len(s); i++ {
			rewards := ds[i].([]float64)
			points := make(plotter.XYs, len(rewards))
			for j, v := range rewards {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_rewards.png"))
	}
}

// PropertyPlotter plots the cumulative satisfying episodes
// for each experiment
func PropertyPlotter(plotPath, property string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run, _ int, s []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = property
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Episodes satisfying"
		for i := 0; i < len(s); i++ {
			counts := ds[i].([]int)
			points := make(plotter.XYs, len(counts))
			for j, v := range counts {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
			fmt.Printf("Property %q satisfied in %d episodes for experiment: %s\n", property, counts[len(counts)-1], s[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_"+property+".png"))
	}
}
