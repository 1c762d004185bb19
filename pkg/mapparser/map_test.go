package mapparser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lintang/cityroute/pkg/citymap"
	"lintang/cityroute/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const franceSample = `# tiny sample
Paris	2352	48856
Lyon	465
Rennes	348
Lyon	4835	45764
Paris	465
Rennes		1111	48117
Paris	348
`

func neighbours(t *testing.T, m *citymap.CityMap, name string) map[string]int {
	t.Helper()
	id, ok := m.Registry.FindByName(name)
	require.True(t, ok, name)
	res := map[string]int{}
	for _, nb := range m.Adjacency.Neighbors(id) {
		res[m.Registry.Location(nb.To).Name] = nb.Distance
	}
	return res
}

func TestParse(t *testing.T) {
	t.Run("locations and edges", func(t *testing.T) {
		m, err := NewMapParser().Parse(strings.NewReader(franceSample))
		require.NoError(t, err)

		assert.Equal(t, 3, m.Registry.Len())
		assert.Equal(t, 4, m.Adjacency.EdgeCount())
		assert.Equal(t, map[string]int{"Lyon": 465, "Rennes": 348}, neighbours(t, m, "Paris"))
		assert.Equal(t, map[string]int{"Paris": 465}, neighbours(t, m, "Lyon"))

		id, _ := m.Registry.FindByName("Lyon")
		loc := m.Registry.Location(id)
		assert.Equal(t, 4835, loc.Lon)
		assert.Equal(t, 45764, loc.Lat)
	})

	t.Run("repeated location record keeps its roads", func(t *testing.T) {
		m, err := NewMapParser().Parse(strings.NewReader("A 1 1\nB 5\nA 9 9\nC 2\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"B": 5, "C": 2}, neighbours(t, m, "A"))
		id, _ := m.Registry.FindByName("A")
		assert.Equal(t, 9, m.Registry.Location(id).Lon)
	})

	t.Run("edge before any location", func(t *testing.T) {
		_, err := NewMapParser().Parse(strings.NewReader("Lyon 465\nParis 1 2\n"))
		assert.ErrorIs(t, err, ErrEdgeWithoutLocation)
	})

	t.Run("malformed lines", func(t *testing.T) {
		input := "A 1 1\njust-a-name\nB x\nC 1 2 3\nB 4\n"

		var buf bytes.Buffer
		m, err := NewMapParser(WithLogger(logger.New("warn", "text", &buf))).Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"B": 4}, neighbours(t, m, "A"))
		assert.Contains(t, buf.String(), "skipping malformed map line")

		_, err = NewMapParser(WithStrict(true)).Parse(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrMalformedLine)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("negative distance", func(t *testing.T) {
		_, err := NewMapParser().Parse(strings.NewReader("A 0 0\nB -3\n"))
		assert.ErrorIs(t, err, citymap.ErrNegativeDistance)
	})

	t.Run("capacity", func(t *testing.T) {
		_, err := NewMapParser(WithCapacity(2, 0)).Parse(strings.NewReader("A 0 0\nB 1\nC 1\n"))
		assert.ErrorIs(t, err, citymap.ErrAllocation)
	})

	t.Run("asymmetric roads are logged", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := NewMapParser(WithLogger(logger.New("warn", "text", &buf))).Parse(strings.NewReader("A 0 0\nB 3\nB 0 0\nA 4\n"))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "no reverse road")
	})

	t.Run("locations without a location record are logged", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := NewMapParser(WithLogger(logger.New("warn", "text", &buf))).Parse(strings.NewReader("A 5 5\nB 3\nC 4\nC 1 1\nA 4\n"))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "location has no location record")
		assert.Contains(t, buf.String(), "name=B")
		assert.NotContains(t, buf.String(), "name=A")
		assert.NotContains(t, buf.String(), "name=C")
	})

	t.Run("every location positioned logs nothing", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := NewMapParser(WithLogger(logger.New("warn", "text", &buf))).Parse(strings.NewReader(franceSample))
		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "location has no location record")
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "FRANCE.MAP")
	require.NoError(t, os.WriteFile(path, []byte(franceSample), 0o644))

	m, err := NewMapParser().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Registry.Len())

	_, err = NewMapParser().LoadFile(filepath.Join(t.TempDir(), "missing.MAP"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
