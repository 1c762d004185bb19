package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/config"
	"lintang/cityroute/pkg/engine/frontier"
	"lintang/cityroute/pkg/engine/routingalgorithm"
	"lintang/cityroute/pkg/kv"
	"lintang/cityroute/pkg/logger"
	"lintang/cityroute/pkg/mapsource"
)

const usage = `Incorrect input.
Input commands: [flags] startCityName [goalCityName] [filepathMap, Default='./FRANCE.MAP']
`

// exit code per jenis error
const (
	exitOK = iota
	exitFailure
	exitUsage
	exitMapLoad
	exitUnknownLocation
	exitNoPath
	exitIterationLimit
	exitAllocation
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("findroute", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFile    = fs.String("config", "", "yaml config file")
		maxIterations = fs.Int("max-iterations", 0, "batas iterasi A*, 0 = dari config (default 10000)")
		divisor       = fs.Int("divisor", 0, "pembagi manhattan heuristic, 0 = dari config (default 4)")
		heuristicName = fs.String("heuristic", "", "auto | manhattan | haversine | zero, kosong = dari config (auto: haversine untuk map osm)")
		osmFile       = fs.Bool("osm", false, "map file adalah openstreetmap (.osm / .osm.pbf)")
		snapshotDir   = fs.String("snapshot", "", "pebble dir, map diambil dari snapshot kalau ada")
		verbose       = fs.Bool("v", false, "debug log, dump map & OPEN/CLOSED tiap iterasi")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, stderr)

	// argumen posisi: startCity [goalCity] [mapFile]
	in := bufio.NewScanner(stdin)
	in.Split(bufio.ScanWords)
	var start, goal string
	mapFile := cfg.Map.Path
	mapFromArgs := *configFile == ""

	switch pos := fs.Args(); len(pos) {
	case 0:
		start = prompt(in, stdout, "What is the starting city?")
		goal = prompt(in, stdout, "What is the goal city?")
	case 1:
		start = pos[0]
		goal = prompt(in, stdout, "Which city do you want to go?")
	case 2:
		start, goal = pos[0], pos[1]
	case 3:
		start, goal, mapFile = pos[0], pos[1], pos[2]
		mapFromArgs = true
	default:
		fmt.Fprint(stdout, usage)
		return exitUsage
	}

	cfg.Map.Path = mapFile
	if *osmFile {
		cfg.Map.Format = mapsource.FormatOSM
	} else if mapFromArgs {
		// format dari config cuma berlaku untuk map path dari config
		cfg.Map.Format = mapsource.DetectFormat(mapFile)
	}
	if *maxIterations > 0 {
		cfg.Search.MaxIterations = *maxIterations
	}
	if *divisor > 0 {
		cfg.Search.Divisor = *divisor
	}
	if *heuristicName != "" {
		cfg.Search.Heuristic = *heuristicName
	}

	m, err := loadMap(ctx, cfg, *snapshotDir, log)
	if err != nil {
		fmt.Fprintf(stdout, "While populating map from %s\nError: %v\n", mapFile, err)
		return exitMapLoad
	}
	if *verbose {
		m.LogDump(log)
	}

	h, err := routingalgorithm.HeuristicFor(cfg.Search.Heuristic, cfg.Search.Divisor, m.Scale)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	rt := routingalgorithm.NewRouteAlgorithm(m.Registry, m.Adjacency,
		routingalgorithm.WithMaxIterations(cfg.Search.MaxIterations),
		routingalgorithm.WithHeuristic(h),
		routingalgorithm.WithLogger(log),
	)

	fmt.Fprintf(stdout, "\nFinding shortest route\nFrom:\t%s\nTo:\t%s\n\n", start, goal)
	report, err := rt.FindRoute(ctx, start, goal)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %s.\n", describe(err, start, goal))
		return exitCode(err)
	}

	fmt.Fprintln(stdout, "Shortest route:")
	for _, p := range report.Path {
		fmt.Fprintf(stdout, "%s (%d)\n", p.Name, p.Cost)
	}
	log.Debug("route found", "iterations", report.Iterations, "total_cost", report.TotalCost)
	return exitOK
}

// prompt tulis pertanyaan lalu baca satu kata dari stdin.
func prompt(in *bufio.Scanner, out io.Writer, question string) string {
	fmt.Fprintln(out, question)
	if in.Scan() {
		return in.Text()
	}
	return ""
}

func loadMap(ctx context.Context, cfg config.Config, snapshotDir string, log *slog.Logger) (*citymap.CityMap, error) {
	if snapshotDir == "" {
		return mapsource.Load(ctx, cfg.Map, log)
	}
	db, err := kv.Open(snapshotDir, false)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return mapsource.FromStore(ctx, cfg, db, log)
}

func describe(err error, start, goal string) string {
	switch {
	case errors.Is(err, routingalgorithm.ErrUnknownLocation):
		return fmt.Sprintf("start %q or goal %q does not exist on the map", start, goal)
	case errors.Is(err, routingalgorithm.ErrNoPath):
		return "no route between the given cities"
	case errors.Is(err, routingalgorithm.ErrIterationLimitExceeded):
		return "reached max iterations before finding a route"
	case errors.Is(err, citymap.ErrAllocation), errors.Is(err, frontier.ErrAllocation):
		return "out of room for OPEN or CLOSED list"
	}
	return err.Error()
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, routingalgorithm.ErrUnknownLocation):
		return exitUnknownLocation
	case errors.Is(err, routingalgorithm.ErrNoPath):
		return exitNoPath
	case errors.Is(err, routingalgorithm.ErrIterationLimitExceeded):
		return exitIterationLimit
	case errors.Is(err, citymap.ErrAllocation), errors.Is(err, frontier.ErrAllocation):
		return exitAllocation
	}
	return exitFailure
}
