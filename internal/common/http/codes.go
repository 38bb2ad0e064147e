package http

const (
	CodeUnknown          = "UNKNOWN"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeBadRequest       = "BAD_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidPath      = "INVALID_PATH"
	CodeInvalidMemberID  = "INVALID_MEMBER_ID_FORMAT"
	CodeLoginRequired    = "LOGIN_REQUIRED"
)
