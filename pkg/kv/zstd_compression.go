package kv

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// SnapshotLocation satu location di snapshot. Urutan di slice = LocationID.
type SnapshotLocation struct {
	Name string
	Lon  int64
	Lat  int64
}

type SnapshotEdge struct {
	From     int32
	To       int32
	Distance int64
}

// Snapshot bentuk citymap yang disimpan di pebble.
type Snapshot struct {
	Locations []SnapshotLocation
	Edges     []SnapshotEdge
	Scale     float64
}

// CachedRoute satu hasil FindRoute yang disimpan di route cache.
type CachedRoute struct {
	Names      []string
	Costs      []int64
	Lons       []int64
	Lats       []int64
	TotalCost  int64
	Iterations int64
}

func Encode[T any](v T) ([]byte, error) {
	return binary.Marshal(v)
}

func Decode[T any](bb []byte) (T, error) {
	var v T
	err := binary.Unmarshal(bb, &v)
	return v, err
}

func Compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func Decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}

// EncodeCompress binary.Marshal lalu zstd.
func EncodeCompress[T any](v T) ([]byte, error) {
	bb, err := Encode(v)
	if err != nil {
		return nil, err
	}
	return Compress(bb)
}

func DecompressDecode[T any](bbCompressed []byte) (T, error) {
	var zero T
	bb, err := Decompress(bbCompressed)
	if err != nil {
		return zero, err
	}
	return Decode[T](bb)
}
