package routingalgorithm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/engine/frontier"
	"lintang/cityroute/pkg/logger"
)

// DefaultMaxIterations batas iterasi A* kalau tidak di set.
const DefaultMaxIterations = 10000

var (
	// ErrUnknownLocation start or goal name is not in the registry.
	ErrUnknownLocation = errors.New("routingalgorithm: unknown location")
	// ErrNoPath OPEN emptied before the goal was reached.
	ErrNoPath = errors.New("routingalgorithm: no path between locations")
	// ErrIterationLimitExceeded the iteration cap was reached before the goal.
	ErrIterationLimitExceeded = errors.New("routingalgorithm: iteration limit exceeded")
	// ErrInvariant OPEN/CLOSED bookkeeping went wrong. Always a bug.
	ErrInvariant = errors.New("routingalgorithm: search invariant violated")
)

// RouteAlgorithm A* search over a LocationRegistry + AdjacencyStore.
//
// FindRoute mutates the search fields of the locations in place, so a
// RouteAlgorithm and its registry must only be used by one goroutine at a time.
type RouteAlgorithm struct {
	reg           *citymap.LocationRegistry
	adj           *citymap.AdjacencyStore
	heuristic     Heuristic
	maxIterations int
	logger        *slog.Logger
}

type Option func(*RouteAlgorithm)

// WithMaxIterations sets the iteration cap K. k <= 0 keeps the default.
func WithMaxIterations(k int) Option {
	return func(rt *RouteAlgorithm) {
		if k > 0 {
			rt.maxIterations = k
		}
	}
}

func WithHeuristic(h Heuristic) Option {
	return func(rt *RouteAlgorithm) {
		if h != nil {
			rt.heuristic = h
		}
	}
}

// WithLogger logs OPEN/CLOSED after every iteration at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(rt *RouteAlgorithm) {
		if l != nil {
			rt.logger = l
		}
	}
}

func NewRouteAlgorithm(reg *citymap.LocationRegistry, adj *citymap.AdjacencyStore, opts ...Option) *RouteAlgorithm {
	rt := &RouteAlgorithm{
		reg:           reg,
		adj:           adj,
		heuristic:     ManhattanHeuristic{Divisor: 4},
		maxIterations: DefaultMaxIterations,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Settings identitas setting pencarian (iteration cap + heuristic). Hasil route cuma
// boleh dipakai ulang oleh engine dengan Settings yang sama.
func (rt *RouteAlgorithm) Settings() string {
	return fmt.Sprintf("k%d_%s", rt.maxIterations, heuristicName(rt.heuristic))
}

// search state for one FindRoute call. open & closed are dropped when the call returns.
type search struct {
	rt     *RouteAlgorithm
	goal   datastructure.LocationID
	open   *frontier.MinHeap[datastructure.LocationID]
	closed *frontier.MinHeap[datastructure.LocationID]
}

// FindRoute A* from startName to goalName.
//
//  1. place start in OPEN, g(start) = 0, every other g = infinity
//  2. OPEN empty -> ErrNoPath
//  3. pop the minimal f from OPEN into CLOSED
//  4. popped the goal -> reconstruct through the predecessor chain
//  5. relax every neighbour, (re)inserting improved ones into OPEN
//  6. go to 2, at most maxIterations times
func (rt *RouteAlgorithm) FindRoute(ctx context.Context, startName, goalName string) (datastructure.RouteReport, error) {
	start, ok := rt.reg.FindByName(startName)
	if !ok {
		return datastructure.RouteReport{}, fmt.Errorf("%w: start %q", ErrUnknownLocation, startName)
	}
	goal, ok := rt.reg.FindByName(goalName)
	if !ok {
		return datastructure.RouteReport{}, fmt.Errorf("%w: goal %q", ErrUnknownLocation, goalName)
	}

	rt.reg.ResetSearchState()
	s := &search{
		rt:     rt,
		goal:   goal,
		open:   frontier.NewMinHeap[datastructure.LocationID](0),
		closed: frontier.NewMinHeap[datastructure.LocationID](0),
	}

	startLoc := rt.reg.Location(start)
	startLoc.BestCost = 0
	startLoc.Score = rt.heuristic.Estimate(startLoc, rt.reg.Location(goal))
	if err := s.open.Insert(start, startLoc.Score); err != nil {
		return datastructure.RouteReport{}, err
	}

	for iteration := 0; iteration < rt.maxIterations; iteration++ {
		if s.open.Size() == 0 {
			return datastructure.RouteReport{}, fmt.Errorf("%w: %s -> %s after %d iterations", ErrNoPath, startName, goalName, iteration)
		}
		if err := ctx.Err(); err != nil {
			return datastructure.RouteReport{}, fmt.Errorf("routingalgorithm: search cancelled: %w", err)
		}

		node, err := s.open.ExtractMin()
		if err != nil {
			return datastructure.RouteReport{}, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		current := node.Item
		if err := s.closed.Insert(current, rt.reg.Location(current).Score); err != nil {
			return datastructure.RouteReport{}, err
		}

		if current == goal {
			path := ReconstructPath(rt.reg, goal)
			return datastructure.RouteReport{
				Path:       path,
				TotalCost:  rt.reg.Location(goal).BestCost,
				Iterations: iteration + 1,
			}, nil
		}

		if err := s.expand(current); err != nil {
			return datastructure.RouteReport{}, err
		}
		s.logLists(iteration)
	}

	return datastructure.RouteReport{}, fmt.Errorf("%w: %d iterations, %s -> %s", ErrIterationLimitExceeded, rt.maxIterations, startName, goalName)
}

// expand relax semua neighbour dari current.
func (s *search) expand(current datastructure.LocationID) error {
	reg := s.rt.reg
	curr := reg.Location(current)
	goalLoc := reg.Location(s.goal)

	for _, nb := range s.rt.adj.Neighbors(current) {
		tentative := curr.BestCost + nb.Distance
		neighbor := reg.Location(nb.To)

		inOpen := s.open.Contains(nb.To)
		inClosed := s.closed.Contains(nb.To)
		// equal cost re-queues an OPEN node but never reopens a CLOSED one,
		// zero-distance roads would otherwise point predecessors at each other.
		if (inOpen && tentative > neighbor.BestCost) || (inClosed && tentative >= neighbor.BestCost) {
			continue
		}

		if inOpen {
			if err := s.open.Remove(nb.To); err != nil {
				return fmt.Errorf("%w: %v", ErrInvariant, err)
			}
		}
		if inClosed {
			if err := s.closed.Remove(nb.To); err != nil {
				return fmt.Errorf("%w: %v", ErrInvariant, err)
			}
		}

		neighbor.BestCost = tentative
		neighbor.Score = tentative + s.rt.heuristic.Estimate(neighbor, goalLoc)
		neighbor.Predecessor = current
		if err := s.open.Insert(nb.To, neighbor.Score); err != nil {
			return err
		}
	}
	return nil
}

func (s *search) logLists(iteration int) {
	if !s.rt.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	s.rt.logger.Debug("a* iteration",
		"iteration", iteration,
		"open", s.names(s.open),
		"closed", s.names(s.closed))
}

func (s *search) names(h *frontier.MinHeap[datastructure.LocationID]) []string {
	items := h.Items()
	names := make([]string, len(items))
	for i, it := range items {
		loc := s.rt.reg.Location(it.Item)
		names[i] = fmt.Sprintf("%s(g=%d,f=%d)", loc.Name, loc.BestCost, loc.Score)
	}
	return names
}
