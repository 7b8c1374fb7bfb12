package exam

import (
	"errors"
	"fmt"
)

// ErrTopicNotFound is returned when a draw targets a topic with no
// questions in the bank.
var ErrTopicNotFound = errors.New("topic has no questions")

// ErrNoActiveExam is returned when grading is attempted without a bound
// exam instance. It signals a caller protocol violation, not a zero score.
var ErrNoActiveExam = errors.New("no exam bound to session")

// StorageError wraps a persistence failure. Callers decide whether to
// retry (writes leave prior state intact) or degrade (reads).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
