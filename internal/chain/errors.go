package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage wraps every failure to read, write, create, or lock the log.
	ErrStorage = errors.New("chain: storage failure")

	// ErrCorruptRecord marks a record that cannot be parsed, including a
	// partially written final line. It matches ErrStorage.
	ErrCorruptRecord = fmt.Errorf("%w: corrupt record", ErrStorage)

	// ErrIntegrity is matched by every *IntegrityError.
	ErrIntegrity = errors.New("chain: integrity violation")

	ErrInvalidEvent    = errors.New("chain: event must not be empty")
	ErrInvalidPayload  = errors.New("chain: invalid payload")
	ErrLockUnsupported = fmt.Errorf("%w: file locking is not supported on this platform", ErrStorage)
)

// IntegrityError describes the first broken link found while verifying.
type IntegrityError struct {
	// Line is the 1-based position of the offending entry.
	Line   int
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("chain: integrity violation at entry %d: %s", e.Line, e.Reason)
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
