package citymap

import (
	"fmt"

	"lintang/cityroute/pkg/datastructure"
)

// AdjacencyStore keeps, per location, the list of outgoing roads in insertion order.
// Edges are directed as stored, AddRoad adds both directions.
type AdjacencyStore struct {
	reg       *LocationRegistry
	neighbors [][]datastructure.Neighbor
	edgeCount int
	maxEdges  int
}

// NewAdjacencyStore bikin adjacency store untuk location di reg. maxEdges <= 0 berarti tidak dibatasi.
func NewAdjacencyStore(reg *LocationRegistry, maxEdges int) *AdjacencyStore {
	return &AdjacencyStore{
		reg:       reg,
		neighbors: make([][]datastructure.Neighbor, 0),
		maxEdges:  maxEdges,
	}
}

// AddEdge appends (to, distance) to the neighbour list of from.
func (a *AdjacencyStore) AddEdge(from, to datastructure.LocationID, distance int) error {
	if !a.reg.Has(from) {
		return fmt.Errorf("%w: id %d", ErrLocationNotFound, from)
	}
	if !a.reg.Has(to) {
		return fmt.Errorf("%w: id %d", ErrLocationNotFound, to)
	}
	if distance < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDistance, distance)
	}
	if a.maxEdges > 0 && a.edgeCount >= a.maxEdges {
		return fmt.Errorf("%w: adjacency holds %d edges", ErrAllocation, a.maxEdges)
	}

	for int(from) >= len(a.neighbors) {
		a.neighbors = append(a.neighbors, nil)
	}
	a.neighbors[from] = append(a.neighbors[from], datastructure.Neighbor{To: to, Distance: distance})
	a.edgeCount++
	return nil
}

// AddRoad adds the edge in both directions.
func (a *AdjacencyStore) AddRoad(x, y datastructure.LocationID, distance int) error {
	if err := a.AddEdge(x, y, distance); err != nil {
		return err
	}
	return a.AddEdge(y, x, distance)
}

// Neighbors returns the outgoing roads of id. The returned slice must not be modified.
func (a *AdjacencyStore) Neighbors(id datastructure.LocationID) []datastructure.Neighbor {
	if id < 0 || int(id) >= len(a.neighbors) {
		return nil
	}
	return a.neighbors[id]
}

func (a *AdjacencyStore) EdgeCount() int {
	return a.edgeCount
}

// Registry registry yang dipakai store ini.
func (a *AdjacencyStore) Registry() *LocationRegistry {
	return a.reg
}

// AsymmetricEdge is a directed edge without a reverse edge of the same distance.
type AsymmetricEdge struct {
	From     string
	To       string
	Distance int
}

// Asymmetric lists the edges whose reverse is missing or has another distance.
// The search itself does not need symmetric roads, map loaders use this to warn.
func (a *AdjacencyStore) Asymmetric() []AsymmetricEdge {
	res := []AsymmetricEdge{}
	for from, list := range a.neighbors {
		for _, n := range list {
			if a.hasEdge(n.To, datastructure.LocationID(from), n.Distance) {
				continue
			}
			res = append(res, AsymmetricEdge{
				From:     a.reg.Location(datastructure.LocationID(from)).Name,
				To:       a.reg.Location(n.To).Name,
				Distance: n.Distance,
			})
		}
	}
	return res
}

func (a *AdjacencyStore) hasEdge(from, to datastructure.LocationID, distance int) bool {
	for _, n := range a.Neighbors(from) {
		if n.To == to && n.Distance == distance {
			return true
		}
	}
	return false
}

// Clone deep copies the store onto reg, which must be a clone of the source registry.
func (a *AdjacencyStore) Clone(reg *LocationRegistry) *AdjacencyStore {
	c := &AdjacencyStore{
		reg:       reg,
		neighbors: make([][]datastructure.Neighbor, len(a.neighbors)),
		edgeCount: a.edgeCount,
		maxEdges:  a.maxEdges,
	}
	for i, list := range a.neighbors {
		c.neighbors[i] = append([]datastructure.Neighbor(nil), list...)
	}
	return c
}
