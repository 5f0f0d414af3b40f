// Copyright 2026 The LR Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ring

import "fmt"

// Code identifies one of the closed set of error conditions the ring
// buffer can report. It mirrors the lr_result_t taxonomy of the original
// C implementation.
type Code int

const (
	// CodeOK is never returned as an error; it exists so the zero Code
	// is not mistaken for a real failure.
	CodeOK Code = iota
	CodeUnknown
	CodeNoMemory
	CodeLock
	CodeUnlock
	CodeBufferFull
	CodeBufferEmpty
	CodeInvalidIndex
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeUnknown:
		return "unknown"
	case CodeNoMemory:
		return "no memory"
	case CodeLock:
		return "lock"
	case CodeUnlock:
		return "unlock"
	case CodeBufferFull:
		return "buffer full"
	case CodeBufferEmpty:
		return "buffer empty"
	case CodeInvalidIndex:
		return "invalid index"
	default:
		return "unrecognized code"
	}
}

// Error is the error type returned by every ring operation. Code is
// comparable directly, and Error also supports errors.Is against the
// package-level sentinels below.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "ring: " + e.Code.String()
	}
	return fmt.Sprintf("ring: %s: %s", e.Code, e.Message)
}

// Is makes Error compatible with errors.Is against the sentinel values
// below: two *Error values match if their Codes match, regardless of
// Message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for errors.Is comparisons. Callers should not compare
// against these with ==; use errors.Is.
var (
	ErrUnknown      = &Error{Code: CodeUnknown}
	ErrNoMemory     = &Error{Code: CodeNoMemory}
	ErrLock         = &Error{Code: CodeLock}
	ErrUnlock       = &Error{Code: CodeUnlock}
	ErrBufferFull   = &Error{Code: CodeBufferFull}
	ErrBufferEmpty  = &Error{Code: CodeBufferEmpty}
	ErrInvalidIndex = &Error{Code: CodeInvalidIndex}
)

func newErr(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
