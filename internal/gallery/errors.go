// filepath: internal/gallery/errors.go
package gallery

import (
	"errors"
	"fmt"

	"gallerysaver/internal/models"
)

// Kind classifies a save failure.
type Kind int

const (
	KindInvalidRequest Kind = iota + 1
	KindContextUnavailable
	KindSourceNotFound
	KindWriteFailure
	KindInsertRefused
	KindCollectionUnavailable
)

var (
	ErrInvalidRequest        = errors.New("parameters error")
	ErrContextUnavailable    = errors.New("context unavailable")
	ErrSourceNotFound        = errors.New("source not found")
	ErrWriteFailure          = errors.New("write failure")
	ErrInsertRefused         = errors.New("insert refused")
	ErrCollectionUnavailable = errors.New("collection unavailable")
)

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidRequest:
		return ErrInvalidRequest
	case KindContextUnavailable:
		return ErrContextUnavailable
	case KindSourceNotFound:
		return ErrSourceNotFound
	case KindInsertRefused:
		return ErrInsertRefused
	case KindCollectionUnavailable:
		return ErrCollectionUnavailable
	default:
		return ErrWriteFailure
	}
}

func (k Kind) String() string {
	return k.sentinel().Error()
}

// Error is a classified save failure. errors.Is matches both the kind
// sentinel and the wrapped cause.
type Error struct {
	Kind  Kind
	Model StorageModel
	Op    string
	// Path is the source file for KindSourceNotFound.
	Path string
	Err  error
}

func newError(kind Kind, model StorageModel, op string, err error) *Error {
	return &Error{Kind: kind, Model: model, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("gallery %s (%s): %s", e.Op, e.Model, e.Kind)
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// Message is the errorMessage reported to the caller. The registry model
// reports reserve and write failures with an empty message; the cause only
// goes to the log.
func (e *Error) Message() string {
	switch e.Kind {
	case KindInvalidRequest:
		return ErrInvalidRequest.Error()
	case KindContextUnavailable:
		return "application context unavailable"
	case KindSourceNotFound:
		return e.Path + " does not exist"
	case KindInsertRefused, KindCollectionUnavailable:
		if e.Model == RegistryInsert {
			return ""
		}
	case KindWriteFailure:
		if e.Model == RegistryInsert {
			return ""
		}
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

// ResultFromError maps any error to a failed SaveResult.
func ResultFromError(err error) models.SaveResult {
	var ge *Error
	if errors.As(err, &ge) {
		return models.Failed(ge.Message())
	}
	return models.Failed(err.Error())
}
