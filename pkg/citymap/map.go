package citymap

import (
	"fmt"
	"log/slog"
	"strings"

	"lintang/cityroute/pkg/datastructure"
)

// CityMap bundles a registry with its adjacency store. Map loaders build one,
// the search engine and the service consume it.
type CityMap struct {
	Registry  *LocationRegistry
	Adjacency *AdjacencyStore
	// Scale converts map units to degrees, dipakai buat polyline (1e-6 untuk peta osm).
	Scale float64
}

func NewCityMap(maxLocations, maxEdges int) *CityMap {
	reg := NewLocationRegistry(maxLocations)
	return &CityMap{
		Registry:  reg,
		Adjacency: NewAdjacencyStore(reg, maxEdges),
		Scale:     1,
	}
}

// Clone returns an independent copy, search state included.
func (m *CityMap) Clone() *CityMap {
	reg := m.Registry.Clone()
	return &CityMap{
		Registry:  reg,
		Adjacency: m.Adjacency.Clone(reg),
		Scale:     m.Scale,
	}
}

// LogDump writes every location with its neighbours at debug level.
func (m *CityMap) LogDump(logger *slog.Logger) {
	for i := 0; i < m.Registry.Len(); i++ {
		loc := m.Registry.locations[i]
		var sb strings.Builder
		for _, n := range m.Adjacency.Neighbors(datastructure.LocationID(i)) {
			fmt.Fprintf(&sb, " %s(%d)", m.Registry.Location(n.To).Name, n.Distance)
		}
		logger.Debug("location", "name", loc.Name, "lon", loc.Lon, "lat", loc.Lat, "neighbours", sb.String())
	}
	logger.Debug("map loaded", "locations", m.Registry.Len(), "edges", m.Adjacency.EdgeCount())
}
