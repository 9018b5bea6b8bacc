package utils

// Shared zap field names so log output stays greppable across packages.
const (
	FieldOperation = "operation"
	FieldResource  = "resource"
	FieldTotal     = "total"
	FieldInvalid   = "invalid"
	FieldRequestID = "request_id"
	FieldPath      = "path"
	FieldSignal    = "signal"
	FieldHost      = "host"
	FieldPort      = "port"
)
