package logging

// Structured keys shared by every component. Console rendering orders and
// labels its highlight fields by these names.
const (
	FieldComponent      = "component"
	FieldRunID          = "run_id"
	FieldFile           = "file"
	FieldStage          = "stage" // probe, verify, mutate, remux
	FieldEventType      = "event_type"
	FieldDecisionType   = "decision_type"
	FieldDecisionResult = "decision_result"
	FieldDecisionReason = "decision_reason"
	FieldErrorHint      = "error_hint"
	FieldErrorCode      = "error_code"
	// FieldImpact states what a warning costs the run.
	FieldImpact = "impact"
)
