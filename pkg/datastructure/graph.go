package datastructure

import (
	"math"

	"github.com/twpayne/go-polyline"
)

// LocationID index location di LocationRegistry. Dipakai sebagai predecessor (weak reference).
type LocationID int32

const (
	// NoLocation marks an absent predecessor.
	NoLocation LocationID = -1

	// Infinity is the bestCost sentinel for locations not reached yet.
	Infinity = math.MaxInt

	// MaxNameLength bounds location names (bytes).
	MaxNameLength = 64
)

// Location is a named city on the map. Lon/Lat are fixed once the map is built,
// BestCost, Score and Predecessor are rewritten by every search.
type Location struct {
	Name        string
	Lon         int
	Lat         int
	BestCost    int // g
	Score       int // f = g + h
	Predecessor LocationID
}

// ResetSearchState puts the location back to the "not reached" state.
func (l *Location) ResetSearchState() {
	l.BestCost = Infinity
	l.Score = 0
	l.Predecessor = NoLocation
}

// Neighbor is one outgoing road: target location + distance.
type Neighbor struct {
	To       LocationID
	Distance int
}

// PathNode is one step of a reconstructed route, Cost is the cumulative cost from the start.
type PathNode struct {
	Name string `json:"name"`
	Cost int    `json:"cost"`
	Lon  int    `json:"lon"`
	Lat  int    `json:"lat"`
}

// RouteReport hasil FindRoute.
type RouteReport struct {
	Path       []PathNode `json:"path"`
	TotalCost  int        `json:"total_cost"`
	Iterations int        `json:"iterations"`
}

// Names returns the location names along the route, start first.
func (r RouteReport) Names() []string {
	names := make([]string, len(r.Path))
	for i, p := range r.Path {
		names[i] = p.Name
	}
	return names
}

// RenderPolyline encodes the route positions as a google polyline. scale converts map
// units to degrees (1 for plain .MAP units, 1e-6 for microdegree maps from osm).
func RenderPolyline(path []PathNode, scale float64) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{float64(p.Lat) * scale, float64(p.Lon) * scale})
	}
	return string(polyline.EncodeCoords(coords))
}
