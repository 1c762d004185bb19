package mapparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/datastructure"
	"lintang/cityroute/pkg/logger"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

var (
	// ErrMalformedLine line yang bukan location record atau edge record (strict mode).
	ErrMalformedLine = errors.New("mapparser: malformed line")
	// ErrEdgeWithoutLocation edge record sebelum location record pertama.
	ErrEdgeWithoutLocation = errors.New("mapparser: edge record before any location record")
)

const (
	locationRecordTokens = 3 // name lon lat
	edgeRecordTokens     = 2 // name distance
)

type MapParser struct {
	strict       bool
	showProgress bool
	maxLocations int
	maxEdges     int
	logger       *slog.Logger
}

type Option func(*MapParser)

// WithStrict line yang tidak dikenali jadi ErrMalformedLine, bukan cuma warning.
func WithStrict(strict bool) Option {
	return func(p *MapParser) {
		p.strict = strict
	}
}

func WithProgressBar(show bool) Option {
	return func(p *MapParser) {
		p.showProgress = show
	}
}

// WithCapacity batas jumlah location & edge, 0 berarti tidak dibatasi.
func WithCapacity(maxLocations, maxEdges int) Option {
	return func(p *MapParser) {
		p.maxLocations = maxLocations
		p.maxEdges = maxEdges
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *MapParser) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewMapParser(opts ...Option) *MapParser {
	p := &MapParser{logger: logger.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadFile baca .MAP file dari path.
func (p *MapParser) LoadFile(path string) (*citymap.CityMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapparser: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if p.showProgress {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("mapparser: stat %s: %w", path, err)
		}
		bar := progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan][1/2][reset] membaca map file..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
		reader := progressbar.NewReader(f, bar)
		r = &reader
		defer fmt.Println("")
	}

	m, err := p.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return m, nil
}

// Parse baca map dari r. Tiap line di split per whitespace: name lalu maksimal 2 integer.
// 3 token -> location record (name lon lat), 2 token -> edge record dari location terakhir.
func (p *MapParser) Parse(r io.Reader) (*citymap.CityMap, error) {
	m := citymap.NewCityMap(p.maxLocations, p.maxEdges)
	current := datastructure.NoLocation
	positioned := map[datastructure.LocationID]bool{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, params, ok := tokenize(line)
		if !ok {
			if p.strict {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedLine, lineNo, line)
			}
			p.logger.Warn("skipping malformed map line", "line", lineNo, "text", line)
			continue
		}

		switch len(params) + 1 {
		case locationRecordTokens:
			id, err := m.Registry.GetOrCreate(name)
			if err != nil {
				return nil, fmt.Errorf("mapparser: line %d: %w", lineNo, err)
			}
			// location yang sudah ada (dari edge record sebelumnya) cuma di update posisinya
			if err := m.Registry.SetPosition(id, params[0], params[1]); err != nil {
				return nil, fmt.Errorf("mapparser: line %d: %w", lineNo, err)
			}
			current = id
			positioned[id] = true
		case edgeRecordTokens:
			if current == datastructure.NoLocation {
				return nil, fmt.Errorf("%w: line %d: %q", ErrEdgeWithoutLocation, lineNo, line)
			}
			to, err := m.Registry.GetOrCreate(name)
			if err != nil {
				return nil, fmt.Errorf("mapparser: line %d: %w", lineNo, err)
			}
			if err := m.Adjacency.AddEdge(current, to, params[0]); err != nil {
				return nil, fmt.Errorf("mapparser: line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mapparser: read: %w", err)
	}

	for _, e := range m.Adjacency.Asymmetric() {
		p.logger.Warn("road has no reverse road with the same distance",
			"from", e.From, "to", e.To, "distance", e.Distance)
	}
	// location yang cuma muncul di edge record posisinya tetap (0,0), heuristic bisa overestimate
	m.Registry.Each(func(id datastructure.LocationID, loc datastructure.Location) {
		if !positioned[id] {
			p.logger.Warn("location has no location record, position defaults to 0 0", "name", loc.Name)
		}
	})
	return m, nil
}

// tokenize name + 1 atau 2 integer. Selain itu ok = false.
func tokenize(line string) (string, []int, bool) {
	fields := strings.Fields(line)
	if len(fields) < edgeRecordTokens || len(fields) > locationRecordTokens {
		return "", nil, false
	}
	params := make([]int, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return "", nil, false
		}
		params = append(params, v)
	}
	return fields[0], params, true
}
