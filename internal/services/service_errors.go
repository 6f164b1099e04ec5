// filepath: internal/services/service_errors.go
package services

import "errors"

// Standard errors returned by the service layer.
var (
	ErrValidation     = errors.New("validation failed")
	ErrUnsupported    = errors.New("not supported by the active storage model")
	ErrNotImplemented = errors.New("not implemented")
)
