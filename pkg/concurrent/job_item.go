package concurrent

// RouteJobItem satu pasangan start-goal di batch query. Index posisi pair di request.
type RouteJobItem struct {
	Index int
	Start string
	Goal  string
}

// CacheRouteJobItem satu route yang mau disimpan ke route cache pebble.
type CacheRouteJobItem struct {
	Key string
	Val []byte
}

type JobI interface {
	RouteJobItem | CacheRouteJobItem
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}

// JobFunc dijalankan worker. workerID 1..numWorkers, buat pilih state milik worker itu.
type JobFunc[T JobI, G any] func(workerID int, job T) G
