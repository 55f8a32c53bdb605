package domain

// DocumentMetadata describes a parsed business document.
type DocumentMetadata struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Project      string   `json:"project"`
	DocumentType string   `json:"document_type"`
	Industry     string   `json:"industry"`
	CreatedDate  string   `json:"created_date,omitempty"`
	LastModified string   `json:"last_modified,omitempty"`
	Author       string   `json:"author"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	Tags         []string `json:"tags"`
}

// NewDocumentMetadata returns metadata populated with the documented defaults.
func NewDocumentMetadata() DocumentMetadata {
	return DocumentMetadata{
		Status:   DefaultStatus,
		Priority: DefaultPriority,
		Tags:     []string{},
	}
}

// AddTag adds tag to the tag set, ignoring blanks and duplicates.
func (m *DocumentMetadata) AddTag(tag string) {
	if tag == "" {
		return
	}
	for _, t := range m.Tags {
		if t == tag {
			return
		}
	}
	m.Tags = append(m.Tags, tag)
}

// ContentSection is one heading and the text that follows it up to the next heading.
type ContentSection struct {
	Title       string           `json:"title"`
	Level       int              `json:"level"`
	Content     string           `json:"content"`
	Subsections []ContentSection `json:"subsections"`
}

// Table is a grid of trimmed cell strings. Row 0 is conventionally the header.
type Table [][]string

// Header returns the first row, or nil for an empty table.
func (t Table) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// FinancialData is a table accepted by the financial classifier.
type FinancialData struct {
	Title     string   `json:"title"`
	Headers   []string `json:"headers"`
	TableData Table    `json:"table_data"`
	Currency  string   `json:"currency"`
	Period    string   `json:"period"`
}

// ChartAnalysis describes the column roles of a financial table and the chart
// category a renderer should use for it. LabelColumn is -1 when no column is
// text-like.
type ChartAnalysis struct {
	LabelColumn int                `json:"label_column"`
	DataColumns []int              `json:"data_columns"`
	Category    ChartCategory      `json:"category"`
	Stats       map[string]float64 `json:"stats,omitempty"`
}

// TeamMember is a person listed in a team-like section.
type TeamMember struct {
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Experience string `json:"experience,omitempty"`
	Education  string `json:"education,omitempty"`
}

// ParsedDocument is the complete typed model of one document. It owns all of
// its nested data and is not mutated after construction. Charts[i] describes
// FinancialData[i].
type ParsedDocument struct {
	Metadata      DocumentMetadata `json:"metadata"`
	Sections      []ContentSection `json:"sections"`
	FinancialData []FinancialData  `json:"financial_data"`
	Charts        []ChartAnalysis  `json:"charts"`
	TeamMembers   []TeamMember     `json:"team_members"`
	Tables        []Table          `json:"tables"`
	Images        []string         `json:"images"`
	Links         []string         `json:"links"`
}

// DocumentSummary is a compact overview of a ParsedDocument.
type DocumentSummary struct {
	Title            string `json:"title"`
	Type             string `json:"type"`
	Industry         string `json:"industry"`
	SectionsCount    int    `json:"sections_count"`
	HasFinancialData bool   `json:"has_financial_data"`
	HasTeamInfo      bool   `json:"has_team_info"`
	TablesCount      int    `json:"tables_count"`
	ImagesCount      int    `json:"images_count"`
	WordCount        int    `json:"word_count"`
	Status           string `json:"status"`
}
