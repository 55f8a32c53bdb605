package domain

// SectionOutline is a section title and level without its content.
type SectionOutline struct {
	Title string `json:"title"`
	Level int    `json:"level"`
}

// FinancialOverview pairs a financial table title with its chart analysis.
type FinancialOverview struct {
	Title string        `json:"title"`
	Rows  int           `json:"rows"`
	Chart ChartAnalysis `json:"chart"`
}

// DocumentAnalysis is the human-oriented overview of a parsed document.
type DocumentAnalysis struct {
	Summary         DocumentSummary     `json:"summary"`
	Metadata        DocumentMetadata    `json:"metadata"`
	Sections        []SectionOutline    `json:"sections"`
	MoreSections    int                 `json:"more_sections"`
	TeamMembers     []TeamMember        `json:"team_members"`
	MoreTeamMembers int                 `json:"more_team_members"`
	Financial       []FinancialOverview `json:"financial"`
	Links           []string            `json:"links"`
}
