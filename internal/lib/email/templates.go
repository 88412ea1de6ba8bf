package email

// Template names an HTML file under templates/.
type Template string

const (
	// TemplateMissionCreated corresponds to templates/mission_created.html
	TemplateMissionCreated Template = "mission_created"
)
