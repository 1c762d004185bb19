package kv

import (
	"errors"
	"fmt"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/concurrent"
	"lintang/cityroute/pkg/datastructure"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// ErrNotFound key tidak ada di pebble.
var ErrNotFound = errors.New("kv: key not found")

const (
	snapshotPrefix = "map/"
	routePrefix    = "route/"
)

type KVDB struct {
	db *pebble.DB
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db}
}

// Open buka pebble db di dir. inMemory pakai vfs memory, buat test.
func Open(dir string, inMemory bool) (*KVDB, error) {
	opts := &pebble.Options{}
	if inMemory {
		opts.FS = vfs.NewMem()
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("kv: open pebble %s: %w", dir, err)
	}
	return NewKVDB(db), nil
}

// SaveCityMap simpan snapshot citymap (binary + zstd) di key mapKey. Route cache untuk mapKey dihapus.
func (k *KVDB) SaveCityMap(mapKey string, m *citymap.CityMap) error {
	snap := Snapshot{
		Locations: make([]SnapshotLocation, 0, m.Registry.Len()),
		Edges:     make([]SnapshotEdge, 0, m.Adjacency.EdgeCount()),
		Scale:     m.Scale,
	}
	m.Registry.Each(func(id datastructure.LocationID, loc datastructure.Location) {
		snap.Locations = append(snap.Locations, SnapshotLocation{Name: loc.Name, Lon: int64(loc.Lon), Lat: int64(loc.Lat)})
		for _, nb := range m.Adjacency.Neighbors(id) {
			snap.Edges = append(snap.Edges, SnapshotEdge{From: int32(id), To: int32(nb.To), Distance: int64(nb.Distance)})
		}
	})

	val, err := EncodeCompress(snap)
	if err != nil {
		return fmt.Errorf("kv: encode snapshot %s: %w", mapKey, err)
	}
	if err := k.db.Set([]byte(snapshotPrefix+mapKey), val, pebble.Sync); err != nil {
		return fmt.Errorf("kv: save snapshot %s: %w", mapKey, err)
	}
	return k.InvalidateRoutes(mapKey)
}

// LoadCityMap baca snapshot mapKey dan bangun ulang citymap, LocationID sama dengan waktu disimpan.
func (k *KVDB) LoadCityMap(mapKey string, maxLocations, maxEdges int) (*citymap.CityMap, error) {
	snap, err := get[Snapshot](k, snapshotPrefix+mapKey)
	if err != nil {
		return nil, err
	}

	m := citymap.NewCityMap(maxLocations, maxEdges)
	m.Scale = snap.Scale
	for _, loc := range snap.Locations {
		id, err := m.Registry.GetOrCreate(loc.Name)
		if err != nil {
			return nil, fmt.Errorf("kv: snapshot %s: %w", mapKey, err)
		}
		if err := m.Registry.SetPosition(id, int(loc.Lon), int(loc.Lat)); err != nil {
			return nil, fmt.Errorf("kv: snapshot %s: %w", mapKey, err)
		}
	}
	for _, e := range snap.Edges {
		err := m.Adjacency.AddEdge(datastructure.LocationID(e.From), datastructure.LocationID(e.To), int(e.Distance))
		if err != nil {
			return nil, fmt.Errorf("kv: snapshot %s: %w", mapKey, err)
		}
	}
	return m, nil
}

func routeKey(mapKey, start, goal string) string {
	// nama location tidak pernah berisi whitespace
	return routePrefix + mapKey + "/" + start + " " + goal
}

// SaveRoute simpan hasil route start -> goal ke route cache.
func (k *KVDB) SaveRoute(mapKey, start, goal string, report datastructure.RouteReport) error {
	val, err := EncodeCompress(toCachedRoute(report))
	if err != nil {
		return fmt.Errorf("kv: encode route: %w", err)
	}
	if err := k.db.Set([]byte(routeKey(mapKey, start, goal)), val, pebble.NoSync); err != nil {
		return fmt.Errorf("kv: save route: %w", err)
	}
	return nil
}

// GetRoute ambil route dari cache. ok false kalau belum pernah disimpan.
func (k *KVDB) GetRoute(mapKey, start, goal string) (datastructure.RouteReport, bool, error) {
	cached, err := get[CachedRoute](k, routeKey(mapKey, start, goal))
	if errors.Is(err, ErrNotFound) {
		return datastructure.RouteReport{}, false, nil
	}
	if err != nil {
		return datastructure.RouteReport{}, false, err
	}
	return cached.toRouteReport(), true, nil
}

// RouteEntry satu route untuk SaveRoutes.
type RouteEntry struct {
	Start  string
	Goal   string
	Report datastructure.RouteReport
}

// SaveRoutes encode & simpan banyak route sekaligus pakai worker pool.
func (k *KVDB) SaveRoutes(mapKey string, entries []RouteEntry, numWorkers int) error {
	workers := concurrent.NewWorkerPool[concurrent.CacheRouteJobItem, error](numWorkers, len(entries))
	for _, e := range entries {
		val, err := EncodeCompress(toCachedRoute(e.Report))
		if err != nil {
			workers.Close()
			return fmt.Errorf("kv: encode route: %w", err)
		}
		workers.AddJob(concurrent.CacheRouteJobItem{Key: routeKey(mapKey, e.Start, e.Goal), Val: val})
	}
	workers.Close()

	workers.Start(k.saveRouteJob)
	workers.Wait()

	var errs []error
	for err := range workers.CollectResults() {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (k *KVDB) saveRouteJob(_ int, item concurrent.CacheRouteJobItem) error {
	if err := k.db.Set([]byte(item.Key), item.Val, pebble.NoSync); err != nil {
		return fmt.Errorf("kv: save route %s: %w", item.Key, err)
	}
	return nil
}

// InvalidateRoutes hapus semua cached route milik mapKey.
func (k *KVDB) InvalidateRoutes(mapKey string) error {
	start := []byte(routePrefix + mapKey + "/")
	end := []byte(routePrefix + mapKey + "0") // '0' = '/' + 1
	if err := k.db.DeleteRange(start, end, pebble.Sync); err != nil {
		return fmt.Errorf("kv: invalidate routes %s: %w", mapKey, err)
	}
	return nil
}

func get[T any](k *KVDB, key string) (T, error) {
	var zero T
	val, closer, err := k.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return zero, fmt.Errorf("kv: get %s: %w", key, err)
	}
	defer closer.Close()

	// val cuma valid sampai closer.Close, DecompressDecode bikin buffer baru
	v, err := DecompressDecode[T](val)
	if err != nil {
		return zero, fmt.Errorf("kv: decode %s: %w", key, err)
	}
	return v, nil
}

func toCachedRoute(r datastructure.RouteReport) CachedRoute {
	c := CachedRoute{TotalCost: int64(r.TotalCost), Iterations: int64(r.Iterations)}
	for _, p := range r.Path {
		c.Names = append(c.Names, p.Name)
		c.Costs = append(c.Costs, int64(p.Cost))
		c.Lons = append(c.Lons, int64(p.Lon))
		c.Lats = append(c.Lats, int64(p.Lat))
	}
	return c
}

func (c CachedRoute) toRouteReport() datastructure.RouteReport {
	r := datastructure.RouteReport{
		Path:       make([]datastructure.PathNode, len(c.Names)),
		TotalCost:  int(c.TotalCost),
		Iterations: int(c.Iterations),
	}
	for i := range c.Names {
		r.Path[i] = datastructure.PathNode{Name: c.Names[i], Cost: int(c.Costs[i]), Lon: int(c.Lons[i]), Lat: int(c.Lats[i])}
	}
	return r
}

func (k *KVDB) Close() error {
	return k.db.Close()
}
