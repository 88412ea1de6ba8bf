package email

import "fmt"

// MissionCreatedData is the data available to the mission_created template.
type MissionCreatedData struct {
	MissionName   string
	ScientistName string
	PlanetName    string
}

// SendMissionCreatedEmail announces a newly scheduled mission.
func (c *Client) SendMissionCreatedEmail(to string, data MissionCreatedData) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("New mission: %s", data.MissionName),
		TemplateMissionCreated,
		data,
	)
}
