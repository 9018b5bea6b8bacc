package server

const (
	HealthEndpoint = "/health"
	ContactsPath   = "/contacts"
)

const (
	StatusHealthy = "healthy"
)

const (
	MessageInvalidToken  = "Invalid token"
	MessageMalformedBody = "Malformed request body."
)

const (
	CodeParseError = "parse_error"
)

const (
	// RequestIDKey is the gin context key carrying the correlation id.
	RequestIDKey = "request_id"
	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "X-Request-ID"
)
