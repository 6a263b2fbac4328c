package gacha

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Pulls until the first 5-star.
	GoalFirstHit TrialGoal = "first_hit"
	// Pulls until the first rate-up 5-star (respects guarantee and fate points).
	GoalFirstUP TrialGoal = "first_up"
	// Rate-up 5-stars (all 5-stars on banners without rate-up) within a fixed budget.
	GoalFixedBudget TrialGoal = "fixed_budget"
)

// ErrGoalUnreachable is returned when a trial runs past MaxPullsPerTrial.
var ErrGoalUnreachable = errors.New("simulation goal not reached")

// MaxPullsPerTrial bounds one trial of the open-ended goals.
const MaxPullsPerTrial = 100000

// SimParams describes one simulation.
type SimParams struct {
	Start   PityState // counters every trial starts from
	Goal    TrialGoal
	Trials  int
	Budget  int    // pulls per trial for GoalFixedBudget
	Seed    uint64 // trial i draws from NewSeededRNG(Seed + i)
	Workers int    // <= 0 means GOMAXPROCS
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64

	// Optional: raw samples if caller needs histograms/exports
	Samples []int `yaml:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// simulateOne runs one trial on its own copy of the start state.
func simulateOne(e *Engine, p SimParams) (int, error) {
	st := p.Start
	counts := func(d Drop) bool {
		if d.Tier != Five {
			return false
		}
		return p.Goal == GoalFirstHit || !e.kind.HasRateUp() || d.IsRateUp()
	}

	switch p.Goal {
	case GoalFirstHit, GoalFirstUP:
		for pulls := 1; pulls <= MaxPullsPerTrial; pulls++ {
			d, err := e.Pull(&st)
			if err != nil {
				return 0, err
			}
			if counts(d) {
				return pulls, nil
			}
		}
		return 0, fmt.Errorf("%w: %s after %d pulls", ErrGoalUnreachable, p.Goal, MaxPullsPerTrial)

	case GoalFixedBudget:
		hits := 0
		for i := 0; i < p.Budget; i++ {
			d, err := e.Pull(&st)
			if err != nil {
				return 0, err
			}
			if counts(d) {
				hits++
			}
		}
		return hits, nil
	}
	return 0, fmt.Errorf("%w: goal %q", ErrInvalidArguments, p.Goal)
}

// RunMonteCarlo repeats independent trials in parallel and returns summary
// stats. Each trial owns its PityState and random source, so results depend
// only on p.Seed.
func RunMonteCarlo(ctx context.Context, e *Engine, p SimParams) (Stats, error) {
	if p.Trials <= 0 {
		return Stats{}, nil
	}
	if err := e.Validate(&p.Start); err != nil {
		return Stats{}, err
	}
	if p.Goal == GoalFixedBudget && p.Budget <= 0 {
		return Stats{}, fmt.Errorf("%w: budget %d", ErrInvalidArguments, p.Budget)
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	samples := make([]int, p.Trials)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < p.Trials; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := simulateOne(e.WithRNG(NewSeededRNG(p.Seed+uint64(i))), p)
			if err != nil {
				return err
			}
			samples[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	return calcStats(samples), nil
}
