package providers

import "fmt"

// Error codes for provider failures
const (
	ErrCodeHTTPFailure       = "HTTP_FAILURE"
	ErrCodeBadStatus         = "BAD_STATUS"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
)

// ProviderError wraps a failure from an external content API.
type ProviderError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }
