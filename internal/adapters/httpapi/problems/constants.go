package problems

const (
	ContentTypeProblemJSON    = "application/problem+json"
	StatusClientClosedRequest = 499

	ProblemTypeValidation  = "validation_error"
	ProblemTypeInvalidJSON = "invalid_json"
	ProblemTypeNotFound    = "about:blank"
	ProblemTypeConflict    = "conflict"
	ProblemTypeTimeout     = "timeout"
	ProblemTypeUnavailable = "unavailable"
	ProblemTypeInternal    = "internal_error"
	ProblemTypeCanceled    = "client_cancelled"
	ProblemTypeTooLarge    = "payload_too_large"

	TitleBadRequest         = "Bad Request"
	TitleValidation         = "Validation error"
	TitleConflict           = "Conflict"
	TitleNotFound           = "Not Found"
	TitleGatewayTimeout     = "Gateway Timeout"
	TitleServiceUnavailable = "Service Unavailable"
	TitleRequestCanceled    = "Request Canceled"
	TitleInternalError      = "Internal Server Error"
	TitlePayloadTooLarge    = "Payload Too Large"

	DetailInvalidURL      = "Please enter a valid URL (e.g., https://example.com)"
	DetailInvalidCode     = "Code must be 3-20 characters and can only contain letters, numbers, hyphens, and underscores"
	DetailReservedCode    = "This code is reserved. Please choose a different one."
	DetailInvalidJSON     = "invalid json"
	DetailCodeExists      = "This code is already in use. Please try a different one."
	DetailExhausted       = "Could not generate a unique code. Please try again."
	DetailNotFound        = "Link not found"
	DetailRouteNotFound   = "not found"
	DetailTimeout         = "Database operation timed out"
	DetailUnavailable     = "Database unavailable"
	DetailRequestCanceled = "request canceled"
	DetailInternalError   = "internal error"
	DetailBodyTooLarge    = "request body too large"
)
