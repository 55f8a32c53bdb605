package domain

// Metadata defaults.
const (
	DefaultDocumentType = "business_plan"
	DefaultIndustry     = "saas"
	DefaultStatus       = "draft"
	DefaultPriority     = "medium"
	DefaultCurrency     = "USD"
	DefaultPeriod       = "annual"
)

// ChartCategory is the rendering strategy a chart consumer should use for a
// financial table.
type ChartCategory string

const (
	ChartRevenue    ChartCategory = "revenue"
	ChartGrowth     ChartCategory = "growth"
	ChartComparison ChartCategory = "comparison"
	ChartGeneric    ChartCategory = "generic"
)

// JobStatus represents the lifecycle of a single batch parse job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// ExportFormat is an output format for financial data exports.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps ExportFormat to its MIME content type.
var ExportContentTypes = map[ExportFormat]string{
	ExportCSV:  "text/csv; charset=utf-8",
	ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}
