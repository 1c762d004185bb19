package citymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"lintang/cityroute/pkg/datastructure"

	"github.com/golang/geo/r2"
)

var (
	// ErrAllocation is returned when the registry or adjacency store reached its configured capacity.
	ErrAllocation = errors.New("citymap: capacity exhausted")
	// ErrInvalidName is returned for empty, too long or whitespace-containing names.
	ErrInvalidName = errors.New("citymap: invalid location name")
	// ErrLocationNotFound is returned when an id does not belong to the registry.
	ErrLocationNotFound = errors.New("citymap: location not found")
	// ErrNegativeDistance is returned by AddEdge for distance < 0.
	ErrNegativeDistance = errors.New("citymap: negative distance")
)

// LocationRegistry owns every Location of a map, keyed by its unique name.
// Locations are stored in a slice, ids are slice indexes and never change.
type LocationRegistry struct {
	locations    []datastructure.Location
	byName       map[string]datastructure.LocationID
	maxLocations int
}

// NewLocationRegistry bikin registry kosong. maxLocations <= 0 berarti tidak dibatasi.
func NewLocationRegistry(maxLocations int) *LocationRegistry {
	return &LocationRegistry{
		locations:    make([]datastructure.Location, 0),
		byName:       make(map[string]datastructure.LocationID),
		maxLocations: maxLocations,
	}
}

func validateName(name string) error {
	if name == "" || len(name) > datastructure.MaxNameLength {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	}
	return nil
}

// GetOrCreate returns the id of the location called name, creating it when absent.
// A new location has a zero position and a reset search state.
func (r *LocationRegistry) GetOrCreate(name string) (datastructure.LocationID, error) {
	if id, ok := r.byName[name]; ok {
		return id, nil
	}
	if err := validateName(name); err != nil {
		return datastructure.NoLocation, err
	}
	if r.maxLocations > 0 && len(r.locations) >= r.maxLocations {
		return datastructure.NoLocation, fmt.Errorf("%w: registry holds %d locations", ErrAllocation, r.maxLocations)
	}

	loc := datastructure.Location{Name: name}
	loc.ResetSearchState()

	id := datastructure.LocationID(len(r.locations))
	r.locations = append(r.locations, loc)
	r.byName[name] = id
	return id, nil
}

// FindByName exact-match lookup.
func (r *LocationRegistry) FindByName(name string) (datastructure.LocationID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Location returns the location stored at id, nil for an unknown id.
func (r *LocationRegistry) Location(id datastructure.LocationID) *datastructure.Location {
	if !r.Has(id) {
		return nil
	}
	return &r.locations[id]
}

func (r *LocationRegistry) Has(id datastructure.LocationID) bool {
	return id >= 0 && int(id) < len(r.locations)
}

// SetPosition updates the position of a location.
func (r *LocationRegistry) SetPosition(id datastructure.LocationID, lon, lat int) error {
	loc := r.Location(id)
	if loc == nil {
		return fmt.Errorf("%w: id %d", ErrLocationNotFound, id)
	}
	loc.Lon = lon
	loc.Lat = lat
	return nil
}

func (r *LocationRegistry) Len() int {
	return len(r.locations)
}

// Names returns all location names sorted ascending.
func (r *LocationRegistry) Names() []string {
	names := make([]string, 0, len(r.locations))
	for _, loc := range r.locations {
		names = append(names, loc.Name)
	}
	sort.Strings(names)
	return names
}

// Each calls fn for every location in id order.
func (r *LocationRegistry) Each(fn func(id datastructure.LocationID, loc datastructure.Location)) {
	for i, loc := range r.locations {
		fn(datastructure.LocationID(i), loc)
	}
}

// ResetSearchState resets g, f and predecessor of every location.
func (r *LocationRegistry) ResetSearchState() {
	for i := range r.locations {
		r.locations[i].ResetSearchState()
	}
}

// Bounds bounding box semua posisi location, x = lon, y = lat.
func (r *LocationRegistry) Bounds() r2.Rect {
	rect := r2.EmptyRect()
	for _, loc := range r.locations {
		rect = rect.AddPoint(r2.Point{X: float64(loc.Lon), Y: float64(loc.Lat)})
	}
	return rect
}

// Clone deep copies the registry, search state included.
func (r *LocationRegistry) Clone() *LocationRegistry {
	c := &LocationRegistry{
		locations:    make([]datastructure.Location, len(r.locations)),
		byName:       make(map[string]datastructure.LocationID, len(r.byName)),
		maxLocations: r.maxLocations,
	}
	copy(c.locations, r.locations)
	for name, id := range r.byName {
		c.byName[name] = id
	}
	return c
}
