package services

import "errors"

// Kind classifies a service failure so the HTTP layer can pick a status
// code without parsing messages.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUnauthorized
	KindNotFound
	KindDepthLimit
	KindConflict
)

// Error is a classified service failure. The message is safe to return
// to the client verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func invalid(msg string) error      { return &Error{Kind: KindInvalid, Message: msg} }
func unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }
func notFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }
func depthLimit(msg string) error   { return &Error{Kind: KindDepthLimit, Message: msg} }
func conflict(msg string) error     { return &Error{Kind: KindConflict, Message: msg} }

// KindOf returns the classification of err, or 0 for unclassified errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
