package format

// argReader walks the variadic argument list in order. Conversions pull
// arguments as they need them; a missing or wrongly typed argument is a
// call-site bug and surfaces as ErrBadFormat.
type argReader struct {
	args []any
	pos  int
}

func (r *argReader) take() (any, error) {
	if r.pos >= len(r.args) {
		return nil, ErrBadFormat
	}
	a := r.args[r.pos]
	r.pos++
	return a, nil
}

// takeInt pulls the next argument as an int, for *-supplied widths,
// precisions, bases and grouping counts.
func (r *argReader) takeInt() (int, error) {
	a, err := r.take()
	if err != nil {
		return 0, err
	}
	v, ok := asInt64(a)
	if !ok {
		return 0, ErrBadFormat
	}
	return int(v), nil
}

func asInt64(a any) (int64, bool) {
	switch v := a.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uintptr:
		return int64(v), true
	}
	return 0, false
}

func asUint64(a any) (uint64, bool) {
	switch v := a.(type) {
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uintptr:
		return uint64(v), true
	case int:
		return uint64(v), true
	case int8:
		return uint64(v), true
	case int16:
		return uint64(v), true
	case int32:
		return uint64(v), true
	case int64:
		return uint64(v), true
	}
	return 0, false
}

func asFloat64(a any) (float64, bool) {
	switch v := a.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	return 0, false
}

// narrowSigned truncates to the width the length qualifier claims,
// preserving the sign-extension behaviour of the narrower type.
func narrowSigned(v int64, q qualifier) int64 {
	switch q {
	case qualH:
		return int64(int16(v))
	case qualHH:
		return int64(int8(v))
	}
	return v
}

func narrowUnsigned(v uint64, q qualifier) uint64 {
	switch q {
	case qualH:
		return uint64(uint16(v))
	case qualHH:
		return uint64(uint8(v))
	}
	return v
}
