package moniker

import "fmt"

// ParseError reports a malformed moniker string. Token names the part of the
// input that failed validation so callers can surface a precise message.
type ParseError struct {
	Input   string
	Token   string
	Message string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("invalid moniker %q: %s (at %q)", e.Input, e.Message, e.Token)
	}
	return fmt.Sprintf("invalid moniker %q: %s", e.Input, e.Message)
}

func parseErrorf(input, token, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Input:   input,
		Token:   token,
		Message: fmt.Sprintf(format, args...),
	}
}
