package cli

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// CheckFailedError reports that a verification ran and returned false.
type CheckFailedError struct {
	// Check is the name of the verification, e.g. "e2t-initialized".
	Check string
	// Subject is what was checked, e.g. an E2T address or a log file.
	Subject string
}

func (e *CheckFailedError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("check %s failed", e.Check)
	}
	return fmt.Sprintf("check %s failed for %s", e.Check, e.Subject)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *CheckFailedError) Is(target error) bool {
	_, ok := target.(*CheckFailedError)
	return ok
}

// CheckResult turns a boolean verification into an error.
// A nil error with ok false becomes a *CheckFailedError.
func CheckResult(check, subject string, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return &CheckFailedError{Check: check, Subject: subject}
	}
	return nil
}

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorNetwork indicates a refused or unreachable endpoint.
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates the store at Endpoint could not be reached.
type ConnectionError struct {
	// Endpoint is the host:port that could not be reached.
	Endpoint string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: cannot reach %s: %v", e.Type, e.Endpoint, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// ClassifyConnectionError returns a *ConnectionError when err looks like a
// reachability failure, and nil otherwise.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorDNS, Reason: err}
	}

	if isTimeoutError(err) {
		return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorTimeout, Reason: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) || isNetworkError(err.Error()) {
		return &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorNetwork, Reason: err}
	}

	return nil
}

// WrapConnectionError converts reachability failures into a *ConnectionError
// and returns any other error unchanged.
func WrapConnectionError(err error, endpoint string) error {
	if connErr := ClassifyConnectionError(err, endpoint); connErr != nil {
		return connErr
	}
	return err
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "i/o timeout")
}

// isNetworkError checks if the error string indicates a network connectivity issue.
func isNetworkError(errStr string) bool {
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
