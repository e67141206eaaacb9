package core

import (
	"errors"
	"fmt"
)

// ChainCommunicationError is the single error kind every remote-chain
// operation fails with: node unreachable, malformed response, or a decoding
// failure of structured data. It is transient from the caller's point of
// view; retry policy lives in the orchestration layer above, never here.
type ChainCommunicationError struct {
	// Op names the failed operation, e.g. "tx_search" or "latest_checkpoint".
	Op string

	Cause error
}

func (e *ChainCommunicationError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("chain communication error: %v", e.Cause)
	}
	return fmt.Sprintf("chain communication error in %s: %v", e.Op, e.Cause)
}

func (e *ChainCommunicationError) Unwrap() error { return e.Cause }

// CommErr wraps err as a ChainCommunicationError for operation op. A nil err
// returns nil.
func CommErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ChainCommunicationError{Op: op, Cause: err}
}

// CommErrf builds a ChainCommunicationError from a formatted message.
func CommErrf(op, format string, args ...any) error {
	return &ChainCommunicationError{Op: op, Cause: fmt.Errorf(format, args...)}
}

// IsChainCommunicationError reports whether err is (or wraps) a
// ChainCommunicationError.
func IsChainCommunicationError(err error) bool {
	var ce *ChainCommunicationError
	return errors.As(err, &ce)
}
