package model

// Planet is a row of the planets table.
type Planet struct {
	ID                int64   `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	DistanceFromEarth *int64  `json:"distance_from_earth" db:"distance_from_earth"`
	NearestStar       *string `json:"nearest_star" db:"nearest_star"`
}
