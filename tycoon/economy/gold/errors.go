package gold

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrModifierTypeNotFound   = errors.New("modifier type not found")
	ErrModifierNotFound       = errors.New("modifier not found")
	ErrAssetNotFound          = errors.New("asset not found")
	ErrConcurrentModification = errors.New("concurrent modification conflict")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidLevel           = errors.New("invalid level")
	ErrInvalidDuration        = errors.New("invalid duration")
	ErrInvalidAccountID       = errors.New("invalid account id")
	ErrInvalidModifierType    = errors.New("invalid modifier type")
	ErrInvalidUpdate          = errors.New("invalid account update")
)

// ModifierTypeNotFoundError carries close matches for an unknown type id.
type ModifierTypeNotFoundError struct {
	TypeID      string
	Suggestions []string
}

func (e *ModifierTypeNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("modifier type %q not found", e.TypeID)
	}
	return fmt.Sprintf("modifier type %q not found (did you mean %s?)", e.TypeID, strings.Join(e.Suggestions, ", "))
}

func (e *ModifierTypeNotFoundError) Is(target error) bool {
	return target == ErrModifierTypeNotFound
}

// ConflictError is returned once optimistic retries are exhausted. The caller
// may retry the whole operation.
type ConflictError struct {
	Operation string
	AccountID string
	Attempts  int
	Err       error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s on account %s: gave up after %d attempts: %v", e.Operation, e.AccountID, e.Attempts, e.Err)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConcurrentModification
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the caller should retry the operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
