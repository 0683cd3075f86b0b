// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInputBox is returned when a presented box is not the record
	// it is expected to be. Retrying with the same box never succeeds.
	ErrInvalidInputBox = errors.New("invalid input box")
	// ErrInvalidTransactionConditions is returned when valid records do not
	// satisfy the preconditions of a transition at this time.
	ErrInvalidTransactionConditions = errors.New("invalid transaction conditions")
)

// Error is a transition failure of one of the two kinds above.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.kind.Error() + ": " + e.msg
}

// Unwrap returns the error kind, so errors.Is matches the sentinels.
func (e *Error) Unwrap() error {
	return e.kind
}

// Message returns the detail without the kind prefix.
func (e *Error) Message() string {
	return e.msg
}

func invalidInput(format string, args ...any) error {
	return &Error{ErrInvalidInputBox, fmt.Sprintf(format, args...)}
}

func invalidConditions(format string, args ...any) error {
	return &Error{ErrInvalidTransactionConditions, fmt.Sprintf(format, args...)}
}

// IsInvalidInputBox reports whether err is an invalid input box error.
func IsInvalidInputBox(err error) bool {
	return errors.Is(err, ErrInvalidInputBox)
}

// IsInvalidTransactionConditions reports whether err is an invalid conditions error.
func IsInvalidTransactionConditions(err error) bool {
	return errors.Is(err, ErrInvalidTransactionConditions)
}
