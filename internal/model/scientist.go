package model

// Scientist is a row of the scientists table.
type Scientist struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	FieldOfStudy string `json:"field_of_study" db:"field_of_study"`
}

// ScientistDetail is a scientist with its missions. Missions carry their
// planet but never a reference back to the scientist.
type ScientistDetail struct {
	Scientist
	Missions []MissionWithPlanet `json:"missions"`
}

// NewScientistDetail builds the detail projection. A nil missions slice is
// rendered as an empty list.
func NewScientistDetail(s Scientist, missions []MissionWithPlanet) ScientistDetail {
	if missions == nil {
		missions = []MissionWithPlanet{}
	}
	return ScientistDetail{Scientist: s, Missions: missions}
}
