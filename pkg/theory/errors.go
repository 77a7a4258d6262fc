package theory

// ParseError represents a malformed chord symbol, note name or degree
// symbol. The Code constants below identify what part of the input failed.
type ParseError struct {
	Code    string `json:"code"`
	Input   string `json:"input"`
	Message string `json:"message"`
}

// Common error codes
const (
	ErrCodeEmptyInput     = "EMPTY_INPUT"
	ErrCodeInvalidRoot    = "INVALID_ROOT"
	ErrCodeInvalidBass    = "INVALID_BASS"
	ErrCodeUnknownQuality = "UNKNOWN_QUALITY"
	ErrCodeInvalidDegree  = "INVALID_DEGREE"
)

func (e *ParseError) Error() string {
	if e.Input != "" {
		return e.Message + ": " + e.Input
	}
	return e.Message
}

// newParseError creates a new parse error
func newParseError(code, input, message string) *ParseError {
	return &ParseError{
		Code:    code,
		Input:   input,
		Message: message,
	}
}
