package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents transport/HTTP failures
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypePriceNotFound represents a product page where no extraction tier matched
	ErrorTypePriceNotFound ErrorType = "price_not_found"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeSnapshot represents snapshot read/write errors
	ErrorTypeSnapshot ErrorType = "snapshot"
	// ErrorTypeDelivery represents notification channel errors
	ErrorTypeDelivery ErrorType = "delivery"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// MonitorError represents a monitor-specific error
type MonitorError struct {
	Type      ErrorType
	Component string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *MonitorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Component, e.Message)
}

// Unwrap returns the underlying error
func (e *MonitorError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether the error aborts the whole cycle.
// A snapshot read error is the one kind recovered locally: the prior
// state is treated as empty and the run continues.
func (e *MonitorError) IsFatal() bool {
	return e.Type != ErrorTypeSnapshot
}

// New creates a new MonitorError
func New(errType ErrorType, component, message string, err error) *MonitorError {
	return &MonitorError{
		Type:      errType,
		Component: component,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(component, message string, err error) *MonitorError {
	return New(ErrorTypeNetwork, component, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(component, message string, err error) *MonitorError {
	return New(ErrorTypeParsing, component, message, err)
}

// NewPriceNotFound creates a new price-not-found error
func NewPriceNotFound(component, url string) *MonitorError {
	message := fmt.Sprintf("no price found on %s", url)
	return New(ErrorTypePriceNotFound, component, message, nil)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(component string, duration time.Duration) *MonitorError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, component, message, nil)
}

// NewSnapshot creates a new snapshot error
func NewSnapshot(component, message string, err error) *MonitorError {
	return New(ErrorTypeSnapshot, component, message, err)
}

// NewDelivery creates a new delivery error
func NewDelivery(component, message string, err error) *MonitorError {
	return New(ErrorTypeDelivery, component, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(component, message string, err error) *MonitorError {
	return New(ErrorTypePublisher, component, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *MonitorError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// TypeOf returns the ErrorType of err, or the empty string when err is
// not a MonitorError.
func TypeOf(err error) ErrorType {
	var me *MonitorError
	if errors.As(err, &me) {
		return me.Type
	}
	return ""
}

// IsPriceNotFound reports whether err is a price-not-found error
func IsPriceNotFound(err error) bool {
	return TypeOf(err) == ErrorTypePriceNotFound
}

// IsSnapshot reports whether err is a snapshot error
func IsSnapshot(err error) bool {
	return TypeOf(err) == ErrorTypeSnapshot
}

// IsDelivery reports whether err is a delivery error
func IsDelivery(err error) bool {
	return TypeOf(err) == ErrorTypeDelivery
}

// IsRateLimit reports whether err is a rate limit error
func IsRateLimit(err error) bool {
	return TypeOf(err) == ErrorTypeRateLimit
}
