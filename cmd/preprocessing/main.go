package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"lintang/cityroute/pkg/config"
	"lintang/cityroute/pkg/kv"
	"lintang/cityroute/pkg/logger"
	"lintang/cityroute/pkg/mapsource"
)

var (
	configFile = flag.String("config", "", "yaml config file")
	mapFile    = flag.String("f", "", "file .MAP atau openstreetmap, kosong = dari config")
	dbDir      = flag.String("snapshot", "", "pebble dir tujuan snapshot, kosong = dari config")
	mapKey     = flag.String("key", "", "key snapshot di pebble, kosong = dari config")
)

// preprocessing parse map sekali lalu simpan snapshot nya (binary + zstd) di pebble,
// findroute -snapshot dan server (store.useSnapshot) start dari snapshot ini.
func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *mapFile != "" {
		cfg.Map.Path = *mapFile
		cfg.Map.Format = mapsource.DetectFormat(*mapFile)
	}
	if *dbDir != "" {
		cfg.Store.Dir = *dbDir
	}
	if *mapKey != "" {
		cfg.Store.MapKey = *mapKey
	}
	cfg.Map.ShowProgress = true
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	if err := run(cfg, log); err != nil {
		log.Error("preprocessing failed", "error", err)
		os.Exit(1)
	}
	log.Info("snapshot saved", "dir", cfg.Store.Dir, "key", cfg.Store.MapKey)
}

func run(cfg config.Config, log *slog.Logger) error {
	m, err := mapsource.Load(context.Background(), cfg.Map, log)
	if err != nil {
		return err
	}

	kvDB, err := kv.Open(cfg.Store.Dir, false)
	if err != nil {
		return err
	}
	defer kvDB.Close()

	return kvDB.SaveCityMap(cfg.Store.MapKey, m)
}
