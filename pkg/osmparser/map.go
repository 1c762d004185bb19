package osmparser

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/geo"
	"lintang/cityroute/pkg/logger"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/schollz/progressbar/v3"
)

// objectScanner dipenuhi osmxml.Scanner dan osmpbf.Scanner.
type objectScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type osmNode struct {
	lat, lon int // microdegree
	name     string
}

type OsmParser struct {
	showProgress bool
	logger       *slog.Logger
}

type Option func(*OsmParser)

func WithProgressBar(show bool) Option {
	return func(p *OsmParser) {
		p.showProgress = show
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *OsmParser) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewOsmParser(opts ...Option) *OsmParser {
	p := &OsmParser{logger: logger.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadFile import .osm (xml) atau .osm.pbf. Posisi location dalam microdegree, jarak road dalam meter.
func (p *OsmParser) LoadFile(ctx context.Context, path string) (*citymap.CityMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("osmparser: open %s: %w", path, err)
	}
	defer f.Close()

	var scanner objectScanner
	if strings.EqualFold(filepath.Ext(path), ".pbf") {
		scanner = osmpbf.New(ctx, f, 3)
	} else {
		scanner = osmxml.New(ctx, f)
	}
	defer scanner.Close()

	return p.Parse(scanner)
}

// Parse satu pass: simpan semua node, kumpulkan way yang bisa dilewati mobil, lalu bikin citymap.
func (p *OsmParser) Parse(scanner objectScanner) (*citymap.CityMap, error) {
	nodes := make(map[osm.NodeID]osmNode)
	ways := []*osm.Way{}

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			nodes[o.ID] = osmNode{
				lat:  geo.ToMicroDegrees(o.Lat),
				lon:  geo.ToMicroDegrees(o.Lon),
				name: o.Tags.Find("name"),
			}
		case *osm.Way:
			if isOsmWayUsedByCars(o.TagMap()) {
				ways = append(ways, o)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("osmparser: scan: %w", err)
	}
	p.logger.Info("osm objects scanned", "nodes", len(nodes), "car_ways", len(ways))

	return p.buildCityMap(nodes, ways)
}

func (p *OsmParser) buildCityMap(nodes map[osm.NodeID]osmNode, ways []*osm.Way) (*citymap.CityMap, error) {
	names := locationNames(nodes, ways)
	m := citymap.NewCityMap(0, 0)
	m.Scale = geo.MicroDegreeScale

	var bar *progressbar.ProgressBar
	if p.showProgress {
		bar = progressbar.NewOptions(len(ways),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan][2/2][reset] membuat road dari openstreetmap way..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
		defer fmt.Println("")
	}

	location := func(id osm.NodeID) (datastructure.LocationID, error) {
		n := nodes[id]
		locID, err := m.Registry.GetOrCreate(names[id])
		if err != nil {
			return datastructure.NoLocation, err
		}
		return locID, m.Registry.SetPosition(locID, n.lon, n.lat)
	}

	skipped := 0
	for _, way := range ways {
		oneWay, reversed := oneWayDirection(way.TagMap())
		for i := 1; i < len(way.Nodes); i++ {
			fromID, toID := way.Nodes[i-1].ID, way.Nodes[i].ID
			fromNode, okFrom := nodes[fromID]
			toNode, okTo := nodes[toID]
			if !okFrom || !okTo || fromID == toID {
				skipped++
				continue
			}

			from, err := location(fromID)
			if err != nil {
				return nil, fmt.Errorf("osmparser: node %d: %w", fromID, err)
			}
			to, err := location(toID)
			if err != nil {
				return nil, fmt.Errorf("osmparser: node %d: %w", toID, err)
			}

			// dibulatkan ke atas supaya HaversineHeuristic tetap admissible
			dist := int(math.Ceil(geo.GreatCircleMeters(fromNode.lat, fromNode.lon, toNode.lat, toNode.lon)))
			switch {
			case oneWay && !reversed:
				err = m.Adjacency.AddEdge(from, to, dist)
			case oneWay && reversed:
				err = m.Adjacency.AddEdge(to, from, dist)
			default:
				err = m.Adjacency.AddRoad(from, to, dist)
			}
			if err != nil {
				return nil, fmt.Errorf("osmparser: way %d: %w", way.ID, err)
			}
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if skipped > 0 {
		p.logger.Warn("way segments skipped, node missing from extract", "segments", skipped)
	}
	return m, nil
}

// locationNames nama location per node: tag name kalau unik & valid, selain itu osm:<id>.
func locationNames(nodes map[osm.NodeID]osmNode, ways []*osm.Way) map[osm.NodeID]string {
	used := make(map[osm.NodeID]struct{})
	for _, w := range ways {
		for _, wn := range w.Nodes {
			if _, ok := nodes[wn.ID]; ok {
				used[wn.ID] = struct{}{}
			}
		}
	}

	count := make(map[string]int)
	for id := range used {
		if n := sanitizeName(nodes[id].name); n != "" {
			count[n]++
		}
	}

	names := make(map[osm.NodeID]string, len(used))
	for id := range used {
		n := sanitizeName(nodes[id].name)
		if n == "" || count[n] > 1 {
			n = fmt.Sprintf("osm:%d", id)
		}
		names[id] = n
	}
	return names
}

// sanitizeName whitespace jadi underscore, nama kepanjangan dibuang.
func sanitizeName(name string) string {
	name = strings.Join(strings.FieldsFunc(name, unicode.IsSpace), "_")
	if len(name) > datastructure.MaxNameLength || strings.HasPrefix(name, "osm:") {
		return ""
	}
	return name
}

func oneWayDirection(tagMap map[string]string) (oneWay bool, reversed bool) {
	switch tagMap["oneway"] {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return true, true
	}
	if tagMap["junction"] == "roundabout" {
		return true, false
	}
	return false, false
}

func isOsmWayUsedByCars(tagMap map[string]string) bool {
	highway, okHW := tagMap["highway"]
	if !okHW {
		return false
	}

	motorcar, ok := tagMap["motorcar"]
	if ok && motorcar == "no" {
		return false
	}

	motorVehicle, ok := tagMap["motor_vehicle"]
	if ok && motorVehicle == "no" {
		return false
	}

	access, ok := tagMap["access"]
	if ok {
		if !(access == "yes" || access == "permissive" || access == "designated" || access == "delivery" || access == "destination") {
			return false
		}
	}

	return ValidRoadType[highway]
}

var ValidRoadType = map[string]bool{
	"motorway":       true,
	"trunk":          true,
	"primary":        true,
	"secondary":      true,
	"tertiary":       true,
	"unclassified":   true,
	"residential":    true,
	"motorway_link":  true,
	"trunk_link":     true,
	"primary_link":   true,
	"secondary_link": true,
	"tertiary_link":  true,
	"living_street":  true,
	"road":           true,
	"service":        true,
}
