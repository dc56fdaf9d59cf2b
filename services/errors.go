package services

import "fmt"

// Kind is the stable machine-readable class of a workflow failure. It is
// what clients branch on; Detail is for humans.
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
	KindForbidden     Kind = "forbidden"
	KindInvalidState  Kind = "invalid_state"
	KindNotApproved   Kind = "not_approved"
	KindAlreadyMember Kind = "already_member"
)

type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func errInvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Detail: fmt.Sprintf(format, args...)}
}

func errNotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Detail: fmt.Sprintf(format, args...)}
}

func errForbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Detail: fmt.Sprintf(format, args...)}
}

func errInvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Detail: fmt.Sprintf(format, args...)}
}

func errNotApproved(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotApproved, Detail: fmt.Sprintf(format, args...)}
}

func errAlreadyMember(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAlreadyMember, Detail: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error kind to the status code the API reports it with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return 400
	case KindNotFound:
		return 404
	case KindForbidden, KindNotApproved:
		return 403
	case KindInvalidState, KindAlreadyMember:
		return 409
	}
	return 500
}
