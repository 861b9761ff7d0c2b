package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies a failure into one of the categories the UI reacts to.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindUnauthorized
	KindRemoteValidation
	KindValidation
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindRemoteValidation:
		return "remote_validation"
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrRemoteValidation = errors.New("rejected by server")
	ErrValidation       = errors.New("invalid input")
	ErrStorage          = errors.New("credential storage failure")
	ErrUnknown          = errors.New("unexpected error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrUnavailable
	case KindUnauthorized:
		return ErrUnauthorized
	case KindRemoteValidation:
		return ErrRemoteValidation
	case KindValidation:
		return ErrValidation
	case KindStorage:
		return ErrStorage
	default:
		return ErrUnknown
	}
}

// Error is the classified failure returned by the transport and the session
// service. Details carries the backend payload for KindRemoteValidation;
// Field and Rule name the offending input for KindValidation.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Details json.RawMessage
	Field   string
	Rule    string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Field != "" {
		msg += " field=" + e.Field
	}
	if e.Rule != "" {
		msg += " rule=" + e.Rule
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf extracts the failure class of err. Unclassified errors are
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for _, k := range []Kind{KindNetwork, KindUnauthorized, KindRemoteValidation, KindValidation, KindStorage} {
		if errors.Is(err, k.sentinel()) {
			return k
		}
	}
	return KindUnknown
}

// UserMessage renders err as the single message shown for its class. Only
// remote validation failures expose the backend payload.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	errors.As(err, &e)

	switch KindOf(err) {
	case KindNetwork:
		return "Network error. Please check your connection and try again."
	case KindUnauthorized:
		return "Your session has expired. Please log in again."
	case KindRemoteValidation:
		if e != nil && len(e.Details) > 0 {
			return string(e.Details)
		}
		return "The server rejected the request."
	case KindValidation:
		if e != nil && e.Err != nil {
			return e.Err.Error()
		}
		return "Please fill in all required fields."
	case KindStorage:
		return "Could not save the session on this device. Please log in again."
	default:
		return "Something went wrong. Please try again."
	}
}
