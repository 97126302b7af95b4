package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldOwner     = "owner"
	FieldFeed      = "feed"
	FieldCustomer  = "customer"
	FieldMonth     = "month"
	FieldRows      = "rows"
	FieldSkipped   = "skipped"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)
