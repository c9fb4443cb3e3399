package client

import (
	"errors"
	"strings"
)

var (
	ErrMissingAPIKey = errors.New("API key not set. Please configure it in the settings")
	ErrInvalidAPIKey = errors.New("invalid API key. Please check your key in the settings")
	ErrQuotaExceeded = errors.New("API quota exceeded. Please check your usage or try again later")
	ErrSchema        = errors.New("structured output schema error")
	ErrUnknown       = errors.New("an unknown error occurred while contacting the Gemini API")
)

// CallError is a provider failure sorted into one of the categories above.
// Error returns the message meant for the user.
type CallError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *CallError) Error() string { return e.Message }

func (e *CallError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	var ce *CallError
	if errors.As(err, &ce) {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"):
		return &CallError{Kind: ErrInvalidAPIKey, Message: ErrInvalidAPIKey.Error(), Cause: err}
	case strings.Contains(msg, "quota"):
		return &CallError{Kind: ErrQuotaExceeded, Message: ErrQuotaExceeded.Error(), Cause: err}
	case strings.Contains(strings.ToLower(msg), "schema"):
		return &CallError{Kind: ErrSchema, Message: msg, Cause: err}
	case strings.TrimSpace(msg) != "":
		return &CallError{Kind: ErrUnknown, Message: msg, Cause: err}
	default:
		return &CallError{Kind: ErrUnknown, Message: ErrUnknown.Error(), Cause: err}
	}
}

// SchemaError wraps a schema problem found before any request is sent.
func SchemaError(err error) error {
	return &CallError{Kind: ErrSchema, Message: "invalid output schema: " + err.Error(), Cause: err}
}
