// Package apperr holds the coded errors shared by the services and mapped to
// transport statuses by the controllers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind groups error codes by how the caller should react.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindForbidden         Kind = "FORBIDDEN"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
)

type ErrCode string

const (
	ErrInvalidInput    ErrCode = "INVALID_INPUT"
	ErrISBNTaken       ErrCode = "ISBN_TAKEN"
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrLoanNotFound    ErrCode = "LOAN_NOT_FOUND"
	ErrUserNotFound    ErrCode = "USER_NOT_FOUND"
	ErrNoCopies        ErrCode = "NO_COPIES_AVAILABLE"
	ErrAlreadyBorrowed ErrCode = "ALREADY_BORROWED"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrNotOwner        ErrCode = "NOT_OWNER"
	ErrInvalidDueDate  ErrCode = "INVALID_DUE_DATE"
)

var kinds = map[ErrCode]Kind{
	ErrInvalidInput:    KindValidation,
	ErrISBNTaken:       KindValidation,
	ErrBookNotFound:    KindNotFound,
	ErrLoanNotFound:    KindNotFound,
	ErrUserNotFound:    KindNotFound,
	ErrNoCopies:        KindConflict,
	ErrAlreadyBorrowed: KindConflict,
	ErrAlreadyReturned: KindConflict,
	ErrForbidden:       KindForbidden,
	ErrNotOwner:        KindForbidden,
	ErrInvalidDueDate:  KindInvalidTransition,
}

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg == "" {
		return string(e.code)
	}
	return string(e.code) + ": " + e.msg
}

func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Kind() Kind    { return kinds[e.code] }

// Is lets errors.Is match on the code alone, ignoring the detail message.
func (e codedError) Is(target error) bool {
	var t codedError
	if errors.As(target, &t) {
		return t.code == e.code
	}
	return false
}

// New returns an error carrying code c.
func New(c ErrCode) error { return codedError{code: c} }

// Newf returns an error carrying code c and a formatted detail message.
func Newf(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// KindOf returns the kind of a coded error, or "" for anything else
// (storage failures, programming errors).
func KindOf(err error) Kind {
	var ce interface{ Kind() Kind }
	if errors.As(err, &ce) {
		return ce.Kind()
	}
	return ""
}

// Detail returns the detail message of a coded error, if any.
func Detail(err error) string {
	var ce codedError
	if errors.As(err, &ce) {
		return ce.msg
	}
	return ""
}
