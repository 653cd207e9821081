package errors

import "net/http"

// Error is a business-rule failure carrying the HTTP status it maps to at
// the transport boundary. Every failure returns a message string; nothing
// internal leaks through it.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Invalid reports malformed or missing input. Recoverable by resubmitting.
func Invalid(msg string) error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Conflict reports a uniqueness violation (username, email, institution
// domain, duplicate decision). The original client contract surfaces these
// as 400, so the status matches that rather than 409.
func Conflict(msg string) error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// SelfReference reports actor == target in a decision.
func SelfReference(msg string) error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthenticated reports a missing, invalid or expired token.
func Unauthenticated(msg string) error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Forbidden reports a valid identity lacking the required privilege.
func Forbidden(msg string) error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// NotFound reports an absent referenced entity.
func NotFound(msg string) error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}
