package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedExtraction marks an internally inconsistent extraction
	// result (missing label or order index). It is an adapter defect, never
	// a regression finding.
	ErrMalformedExtraction = errors.New("malformed extraction output")

	// ErrBaselineNotFound marks a regression run against a key that has no
	// stored baseline yet.
	ErrBaselineNotFound = errors.New("baseline not found")

	// ErrRegressionFailed is the single aggregated failure kind; its message
	// carries the full numbered report of every finding.
	ErrRegressionFailed = errors.New("regression failed")

	// ErrStoreWrite marks an I/O fault while persisting a baseline or rebase
	// artifact.
	ErrStoreWrite = errors.New("store write failure")

	// ErrConfiguration marks invalid or ambiguous mode/settings, raised
	// before any extraction or I/O.
	ErrConfiguration = errors.New("configuration error")

	ErrTemporary = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
