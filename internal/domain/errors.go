package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a strategy could not produce a coordinate.
type FailureKind string

const (
	KindMetadataAbsent FailureKind = "MetadataAbsent"
	KindModelRefusal   FailureKind = "ModelRefusal"
	KindParseFailure   FailureKind = "ParseFailure"
	KindTransportError FailureKind = "TransportError"
	KindConfigError    FailureKind = "ConfigError"
)

var (
	// ErrNoCoordinate is the normal negative result of a resolver strategy.
	// The pipeline treats it as "try the next strategy", never as a failure.
	ErrNoCoordinate = errors.New("no coordinate")

	// ErrMetadataAbsent means the image lacks a complete set of GPS tags.
	ErrMetadataAbsent = fmt.Errorf("metadata absent: %w", ErrNoCoordinate)

	// ErrModelRefusal means the vision model blocked the request before producing text.
	ErrModelRefusal = errors.New("model refused to answer")

	// ErrServiceUnavailable is returned when a required strategy is not configured.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ParseFailure carries the raw model reply that could not be turned into a landmark.
type ParseFailure struct {
	Raw    string
	Reason string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parse model reply: %s", e.Reason)
}

// TransportError wraps network, auth, and quota failures talking to an external provider.
// Retryable marks throttling, 5xx, and network failures that may succeed on a later attempt.
type TransportError struct {
	Op        string
	Err       error
	Retryable bool
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration %s is required", e.Key)
}

func (e *ConfigError) Unwrap() error { return ErrServiceUnavailable }

// KindOf classifies err into the failure taxonomy.
// Unknown errors are treated as transport errors: they come from I/O the
// pipeline does not control.
func KindOf(err error) FailureKind {
	var (
		pf *ParseFailure
		ce *ConfigError
	)

	switch {
	case errors.Is(err, ErrNoCoordinate):
		return KindMetadataAbsent
	case errors.Is(err, ErrModelRefusal):
		return KindModelRefusal
	case errors.As(err, &pf):
		return KindParseFailure
	case errors.As(err, &ce), errors.Is(err, ErrServiceUnavailable):
		return KindConfigError
	default:
		return KindTransportError
	}
}
