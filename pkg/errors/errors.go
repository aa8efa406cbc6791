// Package errors holds the service-level error taxonomy. Each type
// maps to exactly one HTTP status at the handler boundary and carries
// a short message meant for direct display.
package errors

type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

// UnauthenticatedError means the request carried no resolvable
// identity at all. It maps to the same 401 status as UnauthorizedError
// but the two are distinct failure modes: one is "who are you", the
// other "you may not".
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string {
	return e.Message
}

func NewUnauthenticatedError(message string) *UnauthenticatedError {
	return &UnauthenticatedError{Message: message}
}

// UnauthorizedError means an authenticated actor was denied for a
// specific document or operation.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return e.Message
}

func NewInternalError(message string) *InternalError {
	return &InternalError{Message: message}
}
