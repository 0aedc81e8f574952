package arcgis

import (
	"errors"
	"fmt"
)

// Sentinel kinds for ArcGIS client errors.
var (
	ErrRequest  = errors.New("arcgis request failed")
	ErrResponse = errors.New("arcgis response invalid")
)

// APIError describes a failed call to an ArcGIS REST endpoint, either a
// non-2xx status or an error envelope inside a 200 response.
type APIError struct {
	Endpoint   string
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("arcgis %s: error %d: %s", e.Endpoint, e.Code, e.Message)
	}
	return fmt.Sprintf("arcgis %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Unwrap lets callers match with errors.Is(err, ErrResponse).
func (e *APIError) Unwrap() error { return ErrResponse }
