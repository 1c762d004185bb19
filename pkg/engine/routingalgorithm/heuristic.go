package routingalgorithm

import (
	"errors"
	"fmt"
	"math"

	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/geo"
)

// Heuristic estimates the remaining cost between two locations. One search uses
// the same Heuristic for every node. A* only returns optimal routes when the
// estimate never exceeds the true remaining cost.
type Heuristic interface {
	Estimate(from, to *datastructure.Location) int
}

// ManhattanHeuristic (|dLat| + |dLon|) / Divisor, in map coordinate units.
// Admissible only as long as Divisor keeps the estimate under the real road distance.
type ManhattanHeuristic struct {
	Divisor int
}

func (m ManhattanHeuristic) String() string { return fmt.Sprintf("manhattan%d", m.Divisor) }

func (m ManhattanHeuristic) Estimate(from, to *datastructure.Location) int {
	div := m.Divisor
	if div <= 0 {
		div = 1
	}
	return (abs(from.Lat-to.Lat) + abs(from.Lon-to.Lon)) / div
}

// ZeroHeuristic turns A* into Dijkstra.
type ZeroHeuristic struct{}

func (ZeroHeuristic) Estimate(_, _ *datastructure.Location) int { return 0 }

func (ZeroHeuristic) String() string { return "zero" }

// HaversineHeuristic great-circle distance in metres for maps whose positions are
// microdegrees (osm import). Floored so it never exceeds a metre edge weight.
type HaversineHeuristic struct{}

func (HaversineHeuristic) String() string { return "haversine" }

func (HaversineHeuristic) Estimate(from, to *datastructure.Location) int {
	return int(math.Floor(geo.GreatCircleMeters(from.Lat, from.Lon, to.Lat, to.Lon)))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ErrInadmissibleHeuristic heuristic bisa melebihi jarak sebenarnya di map ini.
var ErrInadmissibleHeuristic = errors.New("routingalgorithm: heuristic overestimates on this map")

// HeuristicByName manhattan | haversine | zero. "auto" sama dengan manhattan, pakai
// HeuristicFor kalau scale map diketahui.
func HeuristicByName(name string, divisor int) (Heuristic, error) {
	switch name {
	case "", "auto", "manhattan":
		return ManhattanHeuristic{Divisor: divisor}, nil
	case "haversine":
		return HaversineHeuristic{}, nil
	case "zero":
		return ZeroHeuristic{}, nil
	}
	return nil, fmt.Errorf("routingalgorithm: unknown heuristic %q", name)
}

// HeuristicFor heuristic untuk map dengan CityMap.Scale scale. "auto" / kosong pilih
// haversine untuk map microdegree (jarak road dalam meter) dan manhattan untuk map lain.
// Manhattan di map microdegree ditolak: 1 microdegree cuma ~0.11 m.
func HeuristicFor(name string, divisor int, scale float64) (Heuristic, error) {
	microDegree := geo.IsMicroDegreeScale(scale)
	switch name {
	case "", "auto":
		if microDegree {
			return HaversineHeuristic{}, nil
		}
		return ManhattanHeuristic{Divisor: divisor}, nil
	case "manhattan":
		if microDegree {
			return nil, fmt.Errorf("%w: manhattan on microdegree positions, use haversine", ErrInadmissibleHeuristic)
		}
	}
	return HeuristicByName(name, divisor)
}

// heuristicName nama heuristic buat route cache key.
func heuristicName(h Heuristic) string {
	if s, ok := h.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", h)
}
