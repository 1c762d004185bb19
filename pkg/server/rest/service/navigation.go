package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/concurrent"
	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/engine/routingalgorithm"
	"lintang/cityroute/pkg/kv"
	"lintang/cityroute/pkg/logger"
	"lintang/cityroute/pkg/server"
	"lintang/cityroute/pkg/spatial"

	uuid "github.com/satori/go.uuid"
)

// RouteCache route cache di pebble (kv.KVDB).
type RouteCache interface {
	GetRoute(mapKey, start, goal string) (datastructure.RouteReport, bool, error)
	SaveRoute(mapKey, start, goal string, report datastructure.RouteReport) error
	SaveRoutes(mapKey string, entries []kv.RouteEntry, numWorkers int) error
}

type RouteResult struct {
	Path       []datastructure.PathNode
	TotalCost  int
	Iterations int
	Found      bool
	Polyline   string
	Cached     bool
}

type BatchItem struct {
	Start  string
	Goal   string
	Result RouteResult
	Err    error
}

type LocationsResult struct {
	Names  []string
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

type NeighborDetail struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

type LocationDetail struct {
	Name       string
	Lon        int
	Lat        int
	Neighbours []NeighborDetail
}

// NavigationService satu citymap yang di share semua request. FindRoute mengubah
// search state di registry jadi engine utama dijaga mu, batch query pakai clone per worker.
type NavigationService struct {
	mu       sync.Mutex
	cityMap  *citymap.CityMap
	engine   *routingalgorithm.RouteAlgorithm
	index    *spatial.LocationIndex
	cache    RouteCache
	cacheKey string // mapKey + engine.Settings(), route dari setting lain tidak dipakai ulang
	workers  int
	opts     []routingalgorithm.Option
	logger   *slog.Logger
}

// NewNavigationService cache boleh nil (tanpa route cache).
func NewNavigationService(m *citymap.CityMap, cache RouteCache, mapKey string, workers int, log *slog.Logger,
	opts ...routingalgorithm.Option) *NavigationService {
	if log == nil {
		log = logger.Discard()
	}
	if workers < 1 {
		workers = 1
	}
	engine := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency, opts...)
	return &NavigationService{
		cityMap:  m,
		engine:   engine,
		index:    spatial.NewLocationIndex(m.Registry),
		cache:    cache,
		cacheKey: mapKey + "/" + engine.Settings(),
		workers:  workers,
		opts:     opts,
		logger:   log,
	}
}

// ShortestPath route start -> goal. NoPath bukan error, Found = false.
func (uc *NavigationService) ShortestPath(ctx context.Context, start, goal string) (RouteResult, error) {
	if uc.cache != nil {
		report, ok, err := uc.cache.GetRoute(uc.cacheKey, start, goal)
		if err != nil {
			uc.logger.Warn("route cache lookup failed", "start", start, "goal", goal, "error", err)
		} else if ok {
			res := uc.toResult(report)
			res.Cached = true
			return res, nil
		}
	}

	uc.mu.Lock()
	report, err := uc.engine.FindRoute(ctx, start, goal)
	uc.mu.Unlock()

	res, err := uc.handleRouteError(report, err, start, goal)
	if err != nil || !res.Found {
		return res, err
	}

	if uc.cache != nil {
		if err := uc.cache.SaveRoute(uc.cacheKey, start, goal, report); err != nil {
			uc.logger.Warn("saving route to cache failed", "start", start, "goal", goal, "error", err)
		}
	}
	return res, nil
}

func (uc *NavigationService) handleRouteError(report datastructure.RouteReport, err error, start, goal string) (RouteResult, error) {
	switch {
	case err == nil:
		return uc.toResult(report), nil
	case errors.Is(err, routingalgorithm.ErrNoPath):
		return RouteResult{Path: []datastructure.PathNode{}, Found: false}, nil
	case errors.Is(err, routingalgorithm.ErrUnknownLocation):
		return RouteResult{}, server.WrapErrorf(err, server.ErrNotFound, "location not found on the map")
	case errors.Is(err, routingalgorithm.ErrIterationLimitExceeded):
		return RouteResult{}, server.WrapErrorf(err, server.ErrUnprocessableEntity, "search gave up after the iteration limit")
	default:
		uc.logger.Error("find route failed", "start", start, "goal", goal, "error", err)
		return RouteResult{}, server.WrapErrorf(err, server.ErrInternalServerError, server.MessageInternalServerError)
	}
}

func (uc *NavigationService) toResult(report datastructure.RouteReport) RouteResult {
	return RouteResult{
		Path:       report.Path,
		TotalCost:  report.TotalCost,
		Iterations: report.Iterations,
		Found:      true,
		Polyline:   datastructure.RenderPolyline(report.Path, uc.cityMap.Scale),
	}
}

type batchJobResult struct {
	index  int
	report datastructure.RouteReport
	err    error
}

// BatchShortestPath semua pair dihitung di worker pool. Tiap worker punya clone citymap & engine sendiri.
func (uc *NavigationService) BatchShortestPath(ctx context.Context, pairs []datastructure.RouteQuery) (string, []BatchItem, error) {
	batchID := uuid.NewV4().String()
	if len(pairs) == 0 {
		return batchID, []BatchItem{}, nil
	}

	numWorkers := uc.workers
	if numWorkers > len(pairs) {
		numWorkers = len(pairs)
	}

	uc.mu.Lock()
	engines := make([]*routingalgorithm.RouteAlgorithm, numWorkers)
	for i := range engines {
		clone := uc.cityMap.Clone()
		engines[i] = routingalgorithm.NewRouteAlgorithm(clone.Registry, clone.Adjacency, uc.opts...)
	}
	uc.mu.Unlock()

	workers := concurrent.NewWorkerPool[concurrent.RouteJobItem, batchJobResult](numWorkers, len(pairs))
	for i, p := range pairs {
		workers.AddJob(concurrent.RouteJobItem{Index: i, Start: p.Start, Goal: p.Goal})
	}
	workers.Close()

	workers.Start(func(workerID int, job concurrent.RouteJobItem) batchJobResult {
		report, err := engines[workerID-1].FindRoute(ctx, job.Start, job.Goal)
		return batchJobResult{index: job.Index, report: report, err: err}
	})
	workers.Wait()

	items := make([]BatchItem, len(pairs))
	toCache := []kv.RouteEntry{}
	for r := range workers.CollectResults() {
		p := pairs[r.index]
		res, err := uc.handleRouteError(r.report, r.err, p.Start, p.Goal)
		items[r.index] = BatchItem{Start: p.Start, Goal: p.Goal, Result: res, Err: err}
		if err == nil && res.Found {
			toCache = append(toCache, kv.RouteEntry{Start: p.Start, Goal: p.Goal, Report: r.report})
		}
	}

	if uc.cache != nil && len(toCache) > 0 {
		if err := uc.cache.SaveRoutes(uc.cacheKey, toCache, numWorkers); err != nil {
			uc.logger.Warn("saving batch routes to cache failed", "batch_id", batchID, "error", err)
		}
	}
	uc.logger.Info("batch shortest path done", "batch_id", batchID, "pairs", len(pairs), "workers", numWorkers)
	return batchID, items, nil
}

// NearestLocations k location terdekat dari coord.
func (uc *NavigationService) NearestLocations(ctx context.Context, coord datastructure.Coordinate, k int) []spatial.Nearby {
	return uc.index.Nearest(coord.Lon, coord.Lat, k)
}

func (uc *NavigationService) Locations(ctx context.Context) LocationsResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	res := LocationsResult{Names: uc.cityMap.Registry.Names()}
	if len(res.Names) > 0 {
		b := uc.cityMap.Registry.Bounds()
		res.MinLon, res.MinLat = b.X.Lo, b.Y.Lo
		res.MaxLon, res.MaxLat = b.X.Hi, b.Y.Hi
	}
	return res
}

func (uc *NavigationService) Location(ctx context.Context, name string) (LocationDetail, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	reg := uc.cityMap.Registry
	id, ok := reg.FindByName(name)
	if !ok {
		return LocationDetail{}, server.WrapErrorf(nil, server.ErrNotFound, "location %s not found on the map", name)
	}
	loc := reg.Location(id)
	detail := LocationDetail{Name: loc.Name, Lon: loc.Lon, Lat: loc.Lat, Neighbours: []NeighborDetail{}}
	for _, nb := range uc.cityMap.Adjacency.Neighbors(id) {
		detail.Neighbours = append(detail.Neighbours, NeighborDetail{Name: reg.Location(nb.To).Name, Distance: nb.Distance})
	}
	return detail, nil
}
