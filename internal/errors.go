package internal

import (
	"eghl/entity"
	"fmt"
)

// ErrorKind separates failures the caller must handle differently.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindTransport    ErrorKind = "transport"
	KindProtocol     ErrorKind = "protocol"
	KindVerification ErrorKind = "verification"
)

// GatewayError aborts a purchase. State is the step at which the chain stopped.
type GatewayError struct {
	Kind    ErrorKind
	State   entity.PurchaseState
	Message string
	Err     error
}

// Sentinels for errors.Is; they match any GatewayError of the same kind.
var (
	ErrValidation   = &GatewayError{Kind: KindValidation}
	ErrTransport    = &GatewayError{Kind: KindTransport}
	ErrProtocol     = &GatewayError{Kind: KindProtocol}
	ErrVerification = &GatewayError{Kind: KindVerification}
)

func (e *GatewayError) Error() string {
	text := string(e.Kind) + " error"
	if e.Message != "" {
		text = fmt.Sprintf("%s: %s", text, e.Message)
	}
	if e.Err != nil {
		text = fmt.Sprintf("%s: %v", text, e.Err)
	}
	return text
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func (e *GatewayError) Is(target error) bool {
	t, ok := target.(*GatewayError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

func validationError(format string, args ...interface{}) *GatewayError {
	return &GatewayError{Kind: KindValidation, State: entity.StateBuilt, Message: fmt.Sprintf(format, args...)}
}

func transportError(message string, err error) *GatewayError {
	return &GatewayError{Kind: KindTransport, Message: message, Err: err}
}

func protocolError(message string) *GatewayError {
	return &GatewayError{Kind: KindProtocol, Message: message}
}

func verificationError(message string) *GatewayError {
	return &GatewayError{Kind: KindVerification, Message: message}
}
