package mapsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/config"
	"lintang/cityroute/pkg/kv"
	"lintang/cityroute/pkg/logger"
	"lintang/cityroute/pkg/mapparser"
	"lintang/cityroute/pkg/osmparser"
)

const (
	FormatMap = "map"
	FormatOSM = "osm"
)

// DetectFormat format dari ekstensi file: .osm / .pbf -> osm, selain itu map.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".osm", ".pbf":
		return FormatOSM
	}
	return FormatMap
}

// Load parse file map c.Path sesuai c.Format.
func Load(ctx context.Context, c config.MapConfig, log *slog.Logger) (*citymap.CityMap, error) {
	if log == nil {
		log = logger.Discard()
	}
	format := c.Format
	if format == "" {
		format = DetectFormat(c.Path)
	}

	var (
		m   *citymap.CityMap
		err error
	)
	switch format {
	case FormatMap:
		p := mapparser.NewMapParser(
			mapparser.WithStrict(c.Strict),
			mapparser.WithProgressBar(c.ShowProgress),
			mapparser.WithCapacity(c.MaxLocations, c.MaxEdges),
			mapparser.WithLogger(log),
		)
		m, err = p.LoadFile(c.Path)
	case FormatOSM:
		p := osmparser.NewOsmParser(
			osmparser.WithProgressBar(c.ShowProgress),
			osmparser.WithLogger(log),
		)
		m, err = p.LoadFile(ctx, c.Path)
	default:
		return nil, fmt.Errorf("mapsource: unknown map format %q", format)
	}
	if err != nil {
		return nil, err
	}

	log.Info("map loaded", "path", c.Path, "format", format,
		"locations", m.Registry.Len(), "edges", m.Adjacency.EdgeCount())
	return m, nil
}

// FromStore ambil snapshot mapKey dari pebble. Kalau belum ada, map di parse dari file lalu
// snapshot nya disimpan biar start berikutnya tidak perlu parse lagi.
func FromStore(ctx context.Context, c config.Config, db *kv.KVDB, log *slog.Logger) (*citymap.CityMap, error) {
	if log == nil {
		log = logger.Discard()
	}
	m, err := db.LoadCityMap(c.Store.MapKey, c.Map.MaxLocations, c.Map.MaxEdges)
	if err == nil {
		log.Info("map loaded from snapshot", "key", c.Store.MapKey,
			"locations", m.Registry.Len(), "edges", m.Adjacency.EdgeCount())
		return m, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return nil, err
	}

	log.Info("no snapshot yet, parsing map file", "key", c.Store.MapKey, "path", c.Map.Path)
	m, err = Load(ctx, c.Map, log)
	if err != nil {
		return nil, err
	}
	if err := db.SaveCityMap(c.Store.MapKey, m); err != nil {
		return nil, err
	}
	return m, nil
}
