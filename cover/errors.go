package cover

import "fmt"

// ParamError reports an invalid cover parameter.
type ParamError struct {
	// Dimension is the offending lens dimension, or -1 when the fault is not
	// tied to one dimension (e.g. mismatched argument lengths).
	Dimension int
	Reason    string
	err       error
}

func (e *ParamError) Error() string {
	if e.Dimension < 0 {
		return "cover: " + e.Reason
	}
	return fmt.Sprintf("cover: dimension %d: %s", e.Dimension, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *ParamError) Unwrap() error { return e.err }

func paramErrorf(dim int, format string, args ...any) error {
	return &ParamError{Dimension: dim, Reason: fmt.Sprintf(format, args...)}
}
