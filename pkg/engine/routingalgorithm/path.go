package routingalgorithm

import (
	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/util"
)

// ReconstructPath follows the predecessor chain from goal back to the start and
// returns it start first. The walk is bounded by the registry size.
func ReconstructPath(reg *citymap.LocationRegistry, goal datastructure.LocationID) []datastructure.PathNode {
	path := []datastructure.PathNode{}
	for id, steps := goal, 0; id != datastructure.NoLocation && steps <= reg.Len(); steps++ {
		loc := reg.Location(id)
		if loc == nil {
			break
		}
		path = append(path, datastructure.PathNode{Name: loc.Name, Cost: loc.BestCost, Lon: loc.Lon, Lat: loc.Lat})
		id = loc.Predecessor
	}
	util.ReverseG(path)
	return path
}
