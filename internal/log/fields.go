package log

// Shared field names so log lines stay greppable across packages.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldClientIP  = "client_ip"
	FieldError     = "error"
)

// Component names used by the two binaries.
const (
	ComponentHTTP      = "http"
	ComponentWorker    = "worker"
	ComponentStorage   = "storage"
	ComponentAssistant = "assistant"
)
