package fio

import (
	"errors"
	"fmt"
)

// AuthenticationError means the upstream rejected the credential (HTTP 401).
// The stored credential is permanently invalid.
type AuthenticationError struct {
	Endpoint string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("fio: authentication failed for %s - check API key", e.Endpoint)
}

// TransientError covers network failures, timeouts, undecodable bodies, an open
// circuit and any unexpected status. Retrying later may succeed.
type TransientError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransientError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fio: %s returned status %d", e.Endpoint, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fio: %s failed: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("fio: %s failed", e.Endpoint)
	}
}

func (e *TransientError) Unwrap() error { return e.Err }

// DataError marks a single malformed upstream record. The record is skipped and
// the rest of the batch is processed.
type DataError struct {
	Record string
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("fio: malformed record %s: %s", e.Record, e.Reason)
}

// NotConfiguredError means no FIO credential is on file for the user.
type NotConfiguredError struct {
	Username string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("fio: no API key configured for %s", e.Username)
}

// IsAuthentication reports whether err is or wraps an *AuthenticationError.
func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// IsTransient reports whether err is or wraps a *TransientError.
func IsTransient(err error) bool {
	var target *TransientError
	return errors.As(err, &target)
}

// IsData reports whether err is or wraps a *DataError.
func IsData(err error) bool {
	var target *DataError
	return errors.As(err, &target)
}

// IsNotConfigured reports whether err is or wraps a *NotConfiguredError.
func IsNotConfigured(err error) bool {
	var target *NotConfiguredError
	return errors.As(err, &target)
}
