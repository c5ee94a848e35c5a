package constants

// Messages returned in locally produced responses.
const (
	MessageKeyNotSet       = "API key has not been set"
	MessageKeySaved        = "API key saved and validated"
	MessageProviderFailed  = "provider request failed"
	MessageInvalidBody     = "Invalid request body"
	MessageRouteNotFound   = "Route not found"
	MessageInternalError   = "Internal server error"
	MessageOrderNotFound   = "Order not found"
	MessageInvalidStatus   = "Invalid status filter"
	MessageUnknownProvider = "unable to access the provider API"
)
