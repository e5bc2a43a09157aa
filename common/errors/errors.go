package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure for presentation purposes.
type Kind int

const (
	// KindValidation means the input was rejected locally; no request
	// was sent to the gateway.
	KindValidation Kind = iota
	// KindNetwork means no response reached the gateway.
	KindNetwork
	// KindServer means the gateway responded with an error payload.
	KindServer
)

// GenericMessage is shown when a failure carries no usable message.
const GenericMessage = "Something went wrong. Please try again."

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a client-side validation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Network creates an error for a request that never got a response.
func Network(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "No response from server. Please check your connection.",
		Err:     err,
	}
}

// Server creates an error from a gateway-provided message.
func Server(message string) *Error {
	if message == "" {
		message = GenericMessage
	}
	return &Error{Kind: KindServer, Message: message}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsNetwork reports whether err is a network failure.
func IsNetwork(err error) bool { return isKind(err, KindNetwork) }

// IsServer reports whether err is a gateway rejection.
func IsServer(err error) bool { return isKind(err, KindServer) }

func isKind(err error, kind Kind) bool {
	var appErr *Error
	return stderrors.As(err, &appErr) && appErr.Kind == kind
}

// UserMessage extracts the message to surface for err, preferring the
// server-provided one and falling back to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if stderrors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return GenericMessage
}
