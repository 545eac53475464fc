package kinchain

import "fmt"

// SchemaError indicates a description whose shape does not match the
// documented schema: missing blocks or fields, wrong vector arity, an
// unrecognized joint type or rotation encoding, or input that cannot be
// decoded at all.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema: " + e.Reason
}

func newSchemaErrorf(format string, args ...interface{}) *SchemaError {
	return &SchemaError{Reason: fmt.Sprintf(format, args...)}
}

// ValidationError indicates a well-formed description that violates a semantic
// invariant: a zero joint axis, inverted limits, a home position outside the
// limits, a duplicated joint name, a non-unit offset rotation, or a chain with
// no links.
type ValidationError struct {
	// Joint names the offending joint, when one is known.
	Joint  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Joint != "" {
		return fmt.Sprintf("joint %q: %s", e.Joint, e.Reason)
	}
	return e.Reason
}

// ShapeError indicates a joint vector whose length does not match the number
// of links in the chain being evaluated.
type ShapeError struct {
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("joint vector length %d does not match chain length %d", e.Got, e.Want)
}

// LimitError indicates a joint value outside its joint's declared limits,
// detected during validating evaluation.
type LimitError struct {
	Joint string
	Value float64
	Limit Limit
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%.5f input out of bounds for joint %q, limits [%.5f, %.5f]",
		e.Value, e.Joint, e.Limit.Min, e.Limit.Max)
}
