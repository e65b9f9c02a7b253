package logging

// Standardized attribute keys shared across packages.
const (
	FieldComponent = "component"
	FieldJobID     = "job_id"
	FieldStage     = "stage"
	FieldTool      = "tool"
)
