package model

// Mission is a row of the missions table.
type Mission struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	ScientistID int64  `json:"scientist_id" db:"scientist_id"`
	PlanetID    int64  `json:"planet_id" db:"planet_id"`
}

// MissionWithPlanet is a mission with its planet expanded.
type MissionWithPlanet struct {
	Mission
	Planet Planet `json:"planet"`
}
