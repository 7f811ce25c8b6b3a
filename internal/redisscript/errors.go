package redisscript

import "fmt"

// StorageError wraps any error surfaced by Redis (connection failure,
// timeout, cancelled context, EVAL error, ...) so callers can distinguish a
// storage-layer fault from a programming error with a single errors.As
// check, without importing go-redis themselves.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("redisscript: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func wrapStorageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

var errUnexpectedReply = fmt.Errorf("script returned a non-array reply")
