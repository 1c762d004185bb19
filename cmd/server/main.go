package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"

	_ "lintang/cityroute/docs"
	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/config"
	"lintang/cityroute/pkg/engine/routingalgorithm"
	"lintang/cityroute/pkg/kv"
	"lintang/cityroute/pkg/logger"
	"lintang/cityroute/pkg/mapsource"
	"lintang/cityroute/pkg/server/rest"
	"lintang/cityroute/pkg/server/rest/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	configFile = flag.String("config", "", "yaml config file")
	listenAddr = flag.String("listenaddr", "", "server listen address, kosong = dari config (:5000)")
	mapFile    = flag.String("f", "", "file .MAP atau openstreetmap buat road network, kosong = dari config")
	profiler   = flag.Bool("pprof", false, "mount /debug profiler")
)

//	@title			cityroute API
//	@version		1.0
//	@description	shortest route antara kota pakai A*. Map dari file .MAP atau openstreetmap.

//	@contact.name	lintang birda saputra

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *mapFile != "" {
		cfg.Map.Path = *mapFile
		cfg.Map.Format = mapsource.DetectFormat(*mapFile)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	kvDB, err := kv.Open(cfg.Store.Dir, false)
	if err != nil {
		return err
	}
	defer kvDB.Close()

	ctx := context.Background()
	var m *citymap.CityMap
	if cfg.Store.UseSnapshot {
		m, err = mapsource.FromStore(ctx, cfg, kvDB, log)
	} else {
		m, err = mapsource.Load(ctx, cfg.Map, log)
	}
	if err != nil {
		return fmt.Errorf("load map %s: %w", cfg.Map.Path, err)
	}
	runtime.GC() // buang buffer parser sebelum mulai serve

	h, err := routingalgorithm.HeuristicFor(cfg.Search.Heuristic, cfg.Search.Divisor, m.Scale)
	if err != nil {
		return err
	}

	var cache service.RouteCache
	if cfg.Store.CacheRoutes {
		cache = kvDB
	}
	navigatorSvc := service.NewNavigationService(m, cache, cfg.Store.MapKey, cfg.Server.Workers, log,
		routingalgorithm.WithMaxIterations(cfg.Search.MaxIterations),
		routingalgorithm.WithHeuristic(h),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := rest.NewRouter(navigatorSvc, reg, rest.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SwaggerURL:     "/swagger/doc.json", //The url pointing to API definition
		Profiler:       *profiler,
		AccessLog:      true,
	})

	log.Info("server started", "addr", cfg.Server.ListenAddr,
		"locations", m.Registry.Len(), "edges", m.Adjacency.EdgeCount())
	return http.ListenAndServe(cfg.Server.ListenAddr, r)
}
