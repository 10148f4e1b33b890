package models

// File permissions used when ccopt writes reports.
const (
	PermissionReportFile = 0644
	PermissionDirectory  = 0750
)

// Output formats understood by the report renderers.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// DefaultTopN is how many ranked recommendations are shown.
const DefaultTopN = 10

// PointValueUSD is the cash value assumed for one signup-bonus point when the
// service does not report a value.
const PointValueUSD = 0.01
