package operations

// Operation names
const (
	OperationReport = "report"
)

// Log event names
const (
	EventOperationStart    = "operation_start"
	EventOperationComplete = "operation_complete"
	EventOperationError    = "operation_error"
	EventStepStart         = "step_start"
	EventStepComplete      = "step_complete"
	EventStepError         = "step_error"
	EventStepSkipped       = "step_skipped"
)

// StepSummary is the externally visible outcome of one step
type StepSummary struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Status   StepStatus `json:"status"`
	Duration string     `json:"duration,omitempty"`
	Error    string     `json:"error,omitempty"`
}
