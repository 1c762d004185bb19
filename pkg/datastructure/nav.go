package datastructure

type Coordinate struct {
	Lon int `json:"lon"`
	Lat int `json:"lat"`
}

func NewCoordinate(lon, lat int) Coordinate {
	return Coordinate{
		Lon: lon,
		Lat: lat,
	}
}

// RouteQuery satu pasangan start/goal untuk batch query.
type RouteQuery struct {
	Start string `json:"start"`
	Goal  string `json:"goal"`
}
