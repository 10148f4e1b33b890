package logging

// Field names used across ccopt log output.
const (
	FieldCategory    = "category"
	FieldCardID      = "card_id"
	FieldCount       = "count"
	FieldDuration    = "duration_ms"
	FieldEndpoint    = "endpoint"
	FieldError       = "error"
	FieldFormat      = "format"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldRequestID   = "request_id"
	FieldStatus      = "status"
	FieldBreaker     = "breaker_state"
	FieldComponent   = "component"
	FieldSelectCount = "selected"
	FieldTotal       = "total_spending"
)
