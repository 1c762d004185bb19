package spatial

import (
	"math"
	"sort"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/util"

	"github.com/dhconnelly/rtreego"
)

var tol = 0.5 // posisi location integer, setengah unit sudah cukup

// LocationRect satu location di rtree. Location = {lon, lat}.
type LocationRect struct {
	Location rtreego.Point
	ID       datastructure.LocationID
	Name     string
}

func (s *LocationRect) Bounds() rtreego.Rect {
	// rectangle centered at s.Location with side lengths 2 * tol
	return s.Location.ToRect(tol)
}

// Nearby hasil nearest query. Distance euclidean dalam unit map, dibulatkan 3 desimal.
type Nearby struct {
	ID       datastructure.LocationID `json:"-"`
	Name     string                   `json:"name"`
	Lon      int                      `json:"lon"`
	Lat      int                      `json:"lat"`
	Distance float64                  `json:"distance"`
}

// LocationIndex rtree semua location di registry. Read-only setelah dibuat.
type LocationIndex struct {
	tree *rtreego.Rtree
}

func NewLocationIndex(reg *citymap.LocationRegistry) *LocationIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2 dimension, 25 min entries dan 50 max entries
	reg.Each(func(id datastructure.LocationID, loc datastructure.Location) {
		tree.Insert(&LocationRect{
			Location: rtreego.Point{float64(loc.Lon), float64(loc.Lat)},
			ID:       id,
			Name:     loc.Name,
		})
	})
	return &LocationIndex{tree: tree}
}

func (li *LocationIndex) Size() int {
	return li.tree.Size()
}

// Nearest k location terdekat dari (lon, lat), urut dari yang paling dekat.
func (li *LocationIndex) Nearest(lon, lat, k int) []Nearby {
	if k <= 0 || li.tree.Size() == 0 {
		return []Nearby{}
	}
	if k > li.tree.Size() {
		k = li.tree.Size()
	}

	p := rtreego.Point{float64(lon), float64(lat)}
	res := make([]Nearby, 0, k)
	for _, obj := range li.tree.NearestNeighbors(k, p) {
		lr, ok := obj.(*LocationRect)
		if !ok || lr == nil {
			continue
		}
		res = append(res, Nearby{
			ID:       lr.ID,
			Name:     lr.Name,
			Lon:      int(lr.Location[0]),
			Lat:      int(lr.Location[1]),
			Distance: util.RoundFloat(math.Hypot(lr.Location[0]-p[0], lr.Location[1]-p[1]), 3),
		})
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Distance != res[j].Distance {
			return res[i].Distance < res[j].Distance
		}
		return res[i].Name < res[j].Name
	})
	return res
}
