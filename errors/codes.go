package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004
	ErrorCode_FORBIDDEN        ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1006

	// Scheduling
	ErrorCode_VALIDATION_FAILED       ErrorCode = 2000
	ErrorCode_CONTACT_NOT_FOUND       ErrorCode = 2001
	ErrorCode_CONTACT_INACTIVE        ErrorCode = 2002
	ErrorCode_AGENT_PROVISIONING      ErrorCode = 2003
	ErrorCode_NOTIFICATION_FAILED     ErrorCode = 2004
	ErrorCode_CALL_NOT_FOUND          ErrorCode = 2005
	ErrorCode_CALL_INVALID_TRANSITION ErrorCode = 2006

	// Webhook
	ErrorCode_WEBHOOK_AUTH    ErrorCode = 3000
	ErrorCode_UNMATCHED_CALL  ErrorCode = 3001
	ErrorCode_DERIVATION      ErrorCode = 3002

	// Infrastructure
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 4000
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 4001
	ErrorCode_CACHE_FAILED          ErrorCode = 4002
	ErrorCode_EXTERNAL_API_FAILED   ErrorCode = 4003

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 5000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 5001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                 "OK",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:               "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:          "ALREADY_EXISTS",
	ErrorCode_UNAUTHENTICATED:         "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:               "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_VALIDATION_FAILED:       "VALIDATION_FAILED",
	ErrorCode_CONTACT_NOT_FOUND:       "CONTACT_NOT_FOUND",
	ErrorCode_CONTACT_INACTIVE:        "CONTACT_INACTIVE",
	ErrorCode_AGENT_PROVISIONING:      "AGENT_PROVISIONING",
	ErrorCode_NOTIFICATION_FAILED:     "NOTIFICATION_FAILED",
	ErrorCode_CALL_NOT_FOUND:          "CALL_NOT_FOUND",
	ErrorCode_CALL_INVALID_TRANSITION: "CALL_INVALID_TRANSITION",
	ErrorCode_WEBHOOK_AUTH:            "WEBHOOK_AUTH",
	ErrorCode_UNMATCHED_CALL:          "UNMATCHED_CALL",
	ErrorCode_DERIVATION:              "DERIVATION",
	ErrorCode_DB_QUERY_FAILED:         "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:   "DB_TRANSACTION_FAILED",
	ErrorCode_CACHE_FAILED:            "CACHE_FAILED",
	ErrorCode_EXTERNAL_API_FAILED:     "EXTERNAL_API_FAILED",
	ErrorCode_AUTH_INVALID_TOKEN:      "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:      "AUTH_TOKEN_EXPIRED",
}

// String returns the symbolic name for the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
