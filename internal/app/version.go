package app

// ToolName and Version identify this build for fixdat provenance
// comments.
const (
	ToolName = "romset"
	Version  = "0.1.0"
)
