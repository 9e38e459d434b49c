package domain

import "fmt"

// StatusError reports a non-success HTTP response from the dataset endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dataset request failed: status %d", e.Code)
}

// ParseError reports a response body that could not be decoded as a GeoJSON
// feature collection.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse dataset: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
