package routingalgorithm_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/engine/routingalgorithm"
	"lintang/cityroute/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type city struct {
	name     string
	lon, lat int
}

type road struct {
	a, b string
	dist int
}

func buildMap(t *testing.T, cities []city, roads []road) *citymap.CityMap {
	t.Helper()
	m := citymap.NewCityMap(0, 0)
	for _, c := range cities {
		id, err := m.Registry.GetOrCreate(c.name)
		require.NoError(t, err)
		require.NoError(t, m.Registry.SetPosition(id, c.lon, c.lat))
	}
	for _, r := range roads {
		a, ok := m.Registry.FindByName(r.a)
		require.True(t, ok, r.a)
		b, ok := m.Registry.FindByName(r.b)
		require.True(t, ok, r.b)
		require.NoError(t, m.Adjacency.AddRoad(a, b, r.dist))
	}
	return m
}

func chain(t *testing.T, n int) *citymap.CityMap {
	cities := []city{}
	roads := []road{}
	for i := 0; i < n; i++ {
		cities = append(cities, city{name: fmt.Sprintf("C%d", i)})
		if i > 0 {
			roads = append(roads, road{fmt.Sprintf("C%d", i-1), fmt.Sprintf("C%d", i), 1})
		}
	}
	return buildMap(t, cities, roads)
}

// pathCost sums the road distances between consecutive route names.
func pathCost(t *testing.T, m *citymap.CityMap, names []string) int {
	t.Helper()
	total := 0
	for i := 1; i < len(names); i++ {
		from, _ := m.Registry.FindByName(names[i-1])
		to, _ := m.Registry.FindByName(names[i])
		best := -1
		for _, nb := range m.Adjacency.Neighbors(from) {
			if nb.To == to && (best < 0 || nb.Distance < best) {
				best = nb.Distance
			}
		}
		require.GreaterOrEqual(t, best, 0, "no road %s -> %s", names[i-1], names[i])
		total += best
	}
	return total
}

// dijkstra O(V^2) reference distances.
func dijkstra(m *citymap.CityMap, start datastructure.LocationID) []int {
	n := m.Registry.Len()
	dist := make([]int, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = datastructure.Infinity
	}
	dist[start] = 0
	for {
		u := -1
		for i := 0; i < n; i++ {
			if !done[i] && dist[i] != datastructure.Infinity && (u < 0 || dist[i] < dist[u]) {
				u = i
			}
		}
		if u < 0 {
			return dist
		}
		done[u] = true
		for _, nb := range m.Adjacency.Neighbors(datastructure.LocationID(u)) {
			if d := dist[u] + nb.Distance; d < dist[nb.To] {
				dist[nb.To] = d
			}
		}
	}
}

func TestFindRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers the cheaper detour over the direct road", func(t *testing.T) {
		m := buildMap(t,
			[]city{{"A", 0, 0}, {"B", 0, 0}, {"C", 0, 0}},
			[]road{{"A", "B", 10}, {"B", "C", 5}, {"A", "C", 20}})
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency)

		report, err := rt.FindRoute(ctx, "A", "C")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, report.Names())
		assert.Equal(t, 15, report.TotalCost)
		assert.Equal(t, []int{0, 10, 15}, []int{report.Path[0].Cost, report.Path[1].Cost, report.Path[2].Cost})
	})

	t.Run("self route", func(t *testing.T) {
		m := chain(t, 3)
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency)

		report, err := rt.FindRoute(ctx, "C1", "C1")
		require.NoError(t, err)
		assert.Equal(t, []string{"C1"}, report.Names())
		assert.Equal(t, 0, report.TotalCost)
		assert.Equal(t, 1, report.Iterations)
	})

	t.Run("unknown locations", func(t *testing.T) {
		m := chain(t, 2)
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency)

		_, err := rt.FindRoute(ctx, "Atlantis", "C1")
		assert.ErrorIs(t, err, routingalgorithm.ErrUnknownLocation)
		_, err = rt.FindRoute(ctx, "C0", "c1")
		assert.ErrorIs(t, err, routingalgorithm.ErrUnknownLocation)
	})

	t.Run("disconnected components give no path", func(t *testing.T) {
		m := buildMap(t,
			[]city{{"A", 0, 0}, {"B", 1, 1}, {"X", 5, 5}, {"Y", 6, 6}},
			[]road{{"A", "B", 3}, {"X", "Y", 2}})
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency)

		report, err := rt.FindRoute(ctx, "A", "Y")
		assert.ErrorIs(t, err, routingalgorithm.ErrNoPath)
		assert.Empty(t, report.Path)
	})

	t.Run("one way road", func(t *testing.T) {
		m := buildMap(t, []city{{"A", 0, 0}, {"B", 0, 0}}, nil)
		a, _ := m.Registry.FindByName("A")
		b, _ := m.Registry.FindByName("B")
		require.NoError(t, m.Adjacency.AddEdge(a, b, 7))
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency)

		report, err := rt.FindRoute(ctx, "A", "B")
		require.NoError(t, err)
		assert.Equal(t, 7, report.TotalCost)
		_, err = rt.FindRoute(ctx, "B", "A")
		assert.ErrorIs(t, err, routingalgorithm.ErrNoPath)
	})

	t.Run("iteration cap", func(t *testing.T) {
		m := chain(t, 5)

		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency, routingalgorithm.WithMaxIterations(4))
		_, err := rt.FindRoute(ctx, "C0", "C4")
		assert.ErrorIs(t, err, routingalgorithm.ErrIterationLimitExceeded)

		rt = routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency, routingalgorithm.WithMaxIterations(5))
		report, err := rt.FindRoute(ctx, "C0", "C4")
		require.NoError(t, err)
		assert.Equal(t, 4, report.TotalCost)
		assert.Equal(t, 5, report.Iterations)
	})

	t.Run("default cap stops a long chain", func(t *testing.T) {
		m := chain(t, routingalgorithm.DefaultMaxIterations+2)
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency, routingalgorithm.WithHeuristic(routingalgorithm.ZeroHeuristic{}))

		_, err := rt.FindRoute(ctx, "C0", fmt.Sprintf("C%d", routingalgorithm.DefaultMaxIterations+1))
		assert.ErrorIs(t, err, routingalgorithm.ErrIterationLimitExceeded)
	})

	t.Run("cancelled context", func(t *testing.T) {
		m := chain(t, 3)
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := rt.FindRoute(cctx, "C0", "C2")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("zero distance roads terminate", func(t *testing.T) {
		m := buildMap(t,
			[]city{{"A", 0, 0}, {"B", 0, 0}, {"C", 0, 0}, {"D", 0, 0}},
			[]road{{"A", "B", 0}, {"B", "C", 0}, {"C", "A", 0}, {"C", "D", 2}})
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency)

		report, err := rt.FindRoute(ctx, "A", "D")
		require.NoError(t, err)
		assert.Equal(t, 2, report.TotalCost)
		assert.Equal(t, "A", report.Path[0].Name)
		assert.Equal(t, report.TotalCost, pathCost(t, m, report.Names()))
	})

	t.Run("repeated searches reuse the registry", func(t *testing.T) {
		m := buildMap(t,
			[]city{{"A", 0, 0}, {"B", 4, 0}, {"C", 8, 0}, {"D", 4, 4}},
			[]road{{"A", "B", 4}, {"B", "C", 4}, {"A", "D", 6}, {"D", "C", 6}})
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency)

		first, err := rt.FindRoute(ctx, "A", "C")
		require.NoError(t, err)
		_, err = rt.FindRoute(ctx, "D", "B")
		require.NoError(t, err)
		again, err := rt.FindRoute(ctx, "A", "C")
		require.NoError(t, err)
		assert.Equal(t, first, again)
		assert.Equal(t, 8, again.TotalCost)
	})
}

func TestFindRouteMatchesDijkstraOnRandomMaps(t *testing.T) {
	rng := rand.New(rand.NewSource(2016))
	ctx := context.Background()

	for round := 0; round < 30; round++ {
		n := 5 + rng.Intn(40)
		cities := make([]city, n)
		for i := range cities {
			cities[i] = city{name: fmt.Sprintf("N%d", i), lon: rng.Intn(400), lat: rng.Intn(400)}
		}
		roads := []road{}
		for i := 0; i < n*2; i++ {
			a, b := cities[rng.Intn(n)], cities[rng.Intn(n)]
			manhattan := abs(a.lon-b.lon) + abs(a.lat-b.lat)
			// at least ceil(manhattan/4) so the divide-by-4 estimate stays admissible
			dist := (manhattan+3)/4 + rng.Intn(30)
			roads = append(roads, road{a.name, b.name, dist})
		}
		m := buildMap(t, cities, roads)
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency)

		start := rng.Intn(n)
		ref := dijkstra(m, datastructure.LocationID(start))
		for goal := 0; goal < n; goal++ {
			report, err := rt.FindRoute(ctx, cities[start].name, cities[goal].name)
			if ref[goal] == datastructure.Infinity {
				assert.ErrorIs(t, err, routingalgorithm.ErrNoPath)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, ref[goal], report.TotalCost, "round %d %s -> %s", round, cities[start].name, cities[goal].name)
			assert.Equal(t, report.TotalCost, pathCost(t, m, report.Names()))
			assert.Equal(t, cities[start].name, report.Path[0].Name)
			assert.Equal(t, cities[goal].name, report.Path[len(report.Path)-1].Name)
		}
	}
}

func TestFindRouteMatchesDijkstraOnMicroDegreeMaps(t *testing.T) {
	rng := rand.New(rand.NewSource(1407))
	ctx := context.Background()

	for round := 0; round < 20; round++ {
		n := 5 + rng.Intn(30)
		// posisi microdegree di sekitar (0,0), jarak road ceil meter seperti hasil import osm
		cities := make([]city, n)
		for i := range cities {
			cities[i] = city{name: fmt.Sprintf("N%d", i), lon: rng.Intn(20000), lat: rng.Intn(20000) - 10000}
		}
		roads := []road{}
		for i := 0; i < n*2; i++ {
			a, b := cities[rng.Intn(n)], cities[rng.Intn(n)]
			meters := geo.GreatCircleMeters(a.lat, a.lon, b.lat, b.lon)
			roads = append(roads, road{a.name, b.name, int(math.Ceil(meters)) + rng.Intn(3)})
		}
		m := buildMap(t, cities, roads)
		m.Scale = geo.MicroDegreeScale

		h, err := routingalgorithm.HeuristicFor("auto", 4, m.Scale)
		require.NoError(t, err)
		rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency, routingalgorithm.WithHeuristic(h))

		start := rng.Intn(n)
		ref := dijkstra(m, datastructure.LocationID(start))
		for goal := 0; goal < n; goal++ {
			report, err := rt.FindRoute(ctx, cities[start].name, cities[goal].name)
			if ref[goal] == datastructure.Infinity {
				assert.ErrorIs(t, err, routingalgorithm.ErrNoPath)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, ref[goal], report.TotalCost, "round %d %s -> %s", round, cities[start].name, cities[goal].name)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
