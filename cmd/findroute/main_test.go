package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const triangleMap = `A 0 0
B 10
C 20
B 0 0
A 10
C 5
C 0 0
A 20
B 5
Island 0 0
`

func writeMap(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "TRIANGLE.MAP")
	if err := os.WriteFile(path, []byte(triangleMap), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	mapFile := writeMap(t)

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantCode int
		wantOut  []string
	}{
		{
			name:     "all positional args",
			args:     []string{"A", "C", mapFile},
			wantCode: exitOK,
			wantOut:  []string{"From:\tA\nTo:\tC", "Shortest route:\nA (0)\nB (10)\nC (15)\n"},
		},
		{
			name:     "unknown city",
			args:     []string{"A", "Atlantis", mapFile},
			wantCode: exitUnknownLocation,
			wantOut:  []string{"does not exist on the map"},
		},
		{
			name:     "no route",
			args:     []string{"A", "Island", mapFile},
			wantCode: exitNoPath,
			wantOut:  []string{"no route"},
		},
		{
			name:     "iteration limit",
			args:     []string{"-max-iterations", "1", "A", "C", mapFile},
			wantCode: exitIterationLimit,
			wantOut:  []string{"max iterations"},
		},
		{
			name:     "too many args",
			args:     []string{"A", "B", mapFile, "extra"},
			wantCode: exitUsage,
			wantOut:  []string{"Incorrect input."},
		},
		{
			name:     "missing map file",
			args:     []string{"A", "C", filepath.Join(t.TempDir(), "NOPE.MAP")},
			wantCode: exitMapLoad,
			wantOut:  []string{"While populating map from"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code, stdout.String())
			for _, want := range tt.wantOut {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestRunPrompts(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", writeConfig(t, writeMap(t))},
		strings.NewReader("B\nC\n"), &stdout, &stderr)

	assert.Equal(t, exitOK, code, stdout.String())
	assert.Contains(t, stdout.String(), "What is the starting city?\nWhat is the goal city?\n")
	assert.Contains(t, stdout.String(), "B (0)\nC (5)\n")

	t.Run("only start given", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-config", writeConfig(t, writeMap(t)), "C"},
			strings.NewReader("A\n"), &stdout, &stderr)

		assert.Equal(t, exitOK, code, stdout.String())
		assert.Contains(t, stdout.String(), "Which city do you want to go?\n")
		assert.Contains(t, stdout.String(), "C (0)\nB (5)\nA (15)\n")
	})
}

func writeConfig(t *testing.T, mapFile string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "map:\n  path: " + mapFile + "\n  format: map\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// dua jalan S ke G: lewat A (lebih jauh) dan lewat B (terpendek, 1198 m).
const twoWaysOsm = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="0.000" lon="0.000"><tag k="name" v="S"/></node>
  <node id="2" lat="0.003" lon="0.009"><tag k="name" v="A"/></node>
  <node id="3" lat="-0.002" lon="0.005"><tag k="name" v="B"/></node>
  <node id="4" lat="0.000" lon="0.010"><tag k="name" v="G"/></node>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="4"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="11">
    <nd ref="1"/>
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="residential"/>
  </way>
</osm>`

func writeOsm(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "two_ways.osm")
	if err := os.WriteFile(path, []byte(twoWaysOsm), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunOsmMapFindsShortestRoute(t *testing.T) {
	osmFile := writeOsm(t)
	const shortest = "Shortest route:\nS (0)\nB (599)\nG (1198)\n"

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"default heuristic", []string{"-osm", "S", "G", osmFile}, exitOK, shortest},
		{"detected from extension", []string{"S", "G", osmFile}, exitOK, shortest},
		{"dijkstra", []string{"-osm", "-heuristic", "zero", "S", "G", osmFile}, exitOK, shortest},
		{"haversine", []string{"-osm", "-heuristic", "haversine", "S", "G", osmFile}, exitOK, shortest},
		{"manhattan rejected", []string{"-osm", "-heuristic", "manhattan", "S", "G", osmFile}, exitUsage, ""},
		{
			name:     "config format overridden by positional map",
			args:     []string{"-config", writeConfig(t, writeMap(t)), "S", "G", osmFile},
			wantCode: exitOK,
			wantOut:  shortest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, strings.NewReader(""), &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code, stdout.String()+stderr.String())
			if tt.wantOut != "" {
				assert.Contains(t, stdout.String(), tt.wantOut)
			}
		})
	}
}
