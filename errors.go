package mapper

import (
	"errors"
	"fmt"

	"github.com/hupe1980/gomapper/cover"
	"github.com/hupe1980/gomapper/internal/resource"
)

var (
	// ErrConfiguration is matched by every configuration fault.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNilBackend is returned when no clustering backend is supplied.
	ErrNilBackend = fmt.Errorf("%w: clustering backend is nil", ErrConfiguration)

	// ErrNilPredicate is returned when neither a predicate nor a lens is supplied.
	ErrNilPredicate = fmt.Errorf("%w: membership predicate is nil", ErrConfiguration)

	// ErrNoClusters is returned when a graph is requested before clustering.
	ErrNoClusters = errors.New("no clusters: MakeClusters has not completed")

	// ErrMemoryLimitExceeded aborts a run with a cell larger than WithMemoryLimit.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
)

// ErrInvalidCover indicates malformed cover parameters.
//
// It matches ErrConfiguration via errors.Is. The underlying error
// (if any) can be accessed via errors.Unwrap.
type ErrInvalidCover struct {
	// Dimension is the offending lens dimension, or -1.
	Dimension int
	Reason    string
	cause     error
}

func (e *ErrInvalidCover) Error() string {
	if e.Dimension < 0 {
		return fmt.Sprintf("invalid cover: %s", e.Reason)
	}
	return fmt.Sprintf("invalid cover: dimension %d: %s", e.Dimension, e.Reason)
}

func (e *ErrInvalidCover) Unwrap() error { return e.cause }

// Is reports ErrConfiguration as a match.
func (e *ErrInvalidCover) Is(target error) bool { return target == ErrConfiguration }

// ErrDimensionMismatch indicates that lens, cover and point dimensions disagree.
//
// It matches ErrConfiguration via errors.Is.
type ErrDimensionMismatch struct {
	// Subject names what was measured, e.g. "cover" or "point 7".
	Subject  string
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: %s: expected %d, got %d", e.Subject, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// Is reports ErrConfiguration as a match.
func (e *ErrDimensionMismatch) Is(target error) bool { return target == ErrConfiguration }

// ErrBackend wraps a clustering backend failure on one cell.
// It only ever appears inside Result.Failures.
type ErrBackend struct {
	Cell  int
	cause error
}

func (e *ErrBackend) Error() string {
	return fmt.Sprintf("backend failed on cell %d: %v", e.Cell, e.cause)
}

func (e *ErrBackend) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pe *cover.ParamError
	if errors.As(err, &pe) {
		return &ErrInvalidCover{Dimension: pe.Dimension, Reason: pe.Reason, cause: err}
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	}

	return err
}
