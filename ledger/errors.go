// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a box is unknown or already spent.
var ErrNotFound = errors.New("box not found")

// RejectError is returned when a transaction violates a ledger rule. The
// transaction is rejected as a whole.
type RejectError struct {
	reason string
	cause  error
}

// Reject creates a RejectError.
func Reject(format string, args ...any) *RejectError {
	return &RejectError{reason: fmt.Sprintf(format, args...)}
}

// RejectWith creates a RejectError caused by err, which stays reachable
// through errors.Is and errors.As.
func RejectWith(err error, format string, args ...any) *RejectError {
	reason := fmt.Sprintf(format, args...)
	if reason == "" {
		reason = err.Error()
	} else {
		reason += ": " + err.Error()
	}
	return &RejectError{reason: reason, cause: err}
}

func (e *RejectError) Error() string {
	return "transaction rejected: " + e.reason
}

// Reason returns the rejection detail.
func (e *RejectError) Reason() string {
	return e.reason
}

// Unwrap returns the cause, if any.
func (e *RejectError) Unwrap() error {
	return e.cause
}

// IsRejected reports whether err is a RejectError.
func IsRejected(err error) bool {
	if err == nil {
		return false
	}
	var re *RejectError
	return errors.As(err, &re)
}

// IsNotFound reports whether err is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
