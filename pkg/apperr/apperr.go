// Package apperr defines the error taxonomy shared by services and
// controllers: validation failures, permission denials and missing
// entities. Controllers map each kind to an HTTP status.
package apperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota
	KindPermission
	KindNotFound
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func Validation(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }
func Permission(msg string) error { return &Error{Kind: KindPermission, Msg: msg} }
func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Msg: msg} }

func is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func IsValidation(err error) bool { return is(err, KindValidation) }
func IsPermission(err error) bool { return is(err, KindPermission) }
func IsNotFound(err error) bool   { return is(err, KindNotFound) }
