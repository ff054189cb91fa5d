package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: "is required",
		}
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidatePort checks that a port number is in the TCP range
func ValidatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return ValidationError{
			Field:   field,
			Value:   port,
			Message: "must be between 1 and 65535",
		}
	}
	return nil
}

func (ve *ValidationErrors) collect(err error) {
	if err == nil {
		return
	}
	if v, ok := err.(ValidationError); ok {
		*ve = append(*ve, v)
		return
	}
	ve.Add("", err.Error())
}

// Validate checks the whole configuration and returns every problem found.
func (c E2MCheckConfig) Validate() error {
	var errs ValidationErrors

	errs.collect(ValidateRequired("store.host", c.Store.Host))
	errs.collect(ValidatePort("store.port", c.Store.Port))
	if c.Store.DB < 0 {
		errs.Add("store.db", "must not be negative", c.Store.DB)
	}
	if c.Store.DialTimeout < 0 {
		errs.Add("store.dialTimeout", "must not be negative", c.Store.DialTimeout)
	}

	errs.collect(ValidateRequired("cluster.namespace", c.Cluster.Namespace))
	errs.collect(ValidateOneOf("cluster.resolver", c.Cluster.Resolver, []string{ResolverKubectl, ResolverAPI}))
	errs.collect(ValidateRequired("cluster.e2mgrService", c.Cluster.E2MgrService))
	errs.collect(ValidatePort("cluster.e2mgrPort", c.Cluster.E2MgrPort))
	errs.collect(ValidateRequired("cluster.e2tService", c.Cluster.E2TService))
	errs.collect(ValidatePort("cluster.e2tPort", c.Cluster.E2TPort))

	errs.collect(ValidateRequired("logs.e2mgrLog", c.Logs.E2MgrLog))

	if errs.HasErrors() {
		return errs
	}
	return nil
}
