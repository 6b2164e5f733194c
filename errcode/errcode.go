package errcode

// Code is a stable, comparable error identifier.
// It is a string newtype, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Formatting engine. The engine collapses every failure class
	// (malformed directive, unsupported conversion, argument type
	// mismatch, sink rejection) into BadFormat; callers get a single
	// sentinel and no further diagnostic payload.
	BadFormat Code = "bad_format"

	// Sinks and wrappers.
	BufferFull Code = "buffer_full"

	// Device/demo side.
	Timeout  Code = "timeout"
	NotReady Code = "not_ready"
	Protocol Code = "protocol_error"

	Error Code = "error" // generic fallback
)

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
