package format

import "math/bits"

// conv dispatches one parsed directive.
func (f *formatter) conv(sp *spec, ar *argReader, letter byte) error {
	switch letter {
	case 'n':
		return f.convCount(sp, ar)
	case '%':
		// All modifiers are ignored.
		return f.emitByte('%')
	case 'c', 'C':
		return f.convChar(sp, ar, letter)
	case 's':
		return f.convString(sp, ar)
	case 'p':
		return f.convPointer(sp, ar)
	case 'e', 'E', 'f', 'F', 'g', 'G':
		return f.convFloat(sp, ar, letter)
	case 'a', 'A':
		return f.convHexFloat(sp, ar, letter)
	case 'k':
		return f.convFixed(sp, ar)
	}
	return f.convNumeric(sp, ar, letter)
}

// convCount implements %n: store the running output count through the
// argument pointer. Nothing is emitted and flags and width are
// ignored. A nil pointer is a no-op.
func (f *formatter) convCount(sp *spec, ar *argReader) error {
	a, err := ar.take()
	if err != nil {
		return err
	}
	switch p := a.(type) {
	case nil:
	case *int:
		if p != nil {
			*p = f.n
		}
	case *int8:
		if p != nil {
			*p = int8(f.n)
		}
	case *int16:
		if p != nil {
			*p = int16(f.n)
		}
	case *int32:
		if p != nil {
			*p = int32(f.n)
		}
	case *int64:
		if p != nil {
			*p = int64(f.n)
		}
	case *uint:
		if p != nil {
			*p = uint(f.n)
		}
	case *uint8:
		if p != nil {
			*p = uint8(f.n)
		}
	case *uint16:
		if p != nil {
			*p = uint16(f.n)
		}
	case *uint32:
		if p != nil {
			*p = uint32(f.n)
		}
	case *uint64:
		if p != nil {
			*p = uint64(f.n)
		}
	case *uintptr:
		if p != nil {
			*p = uintptr(f.n)
		}
	default:
		return ErrBadFormat
	}
	return nil
}

// convChar implements %c and %C. The precision is a repeat count;
// width and the padding flags are ignored.
func (f *formatter) convChar(sp *spec, ar *argReader, letter byte) error {
	var cc byte
	if letter == 'c' {
		a, err := ar.take()
		if err != nil {
			return err
		}
		v, ok := asInt64(a)
		if !ok {
			return ErrBadFormat
		}
		cc = byte(v)
	} else {
		cc = sp.repChar
	}

	rep := 1
	if sp.prec > 1 {
		rep = sp.prec
	}
	for ; rep > 0; rep-- {
		if err := f.emitByte(cc); err != nil {
			return err
		}
	}
	return nil
}

// convString implements %s. The precision limits the number of bytes
// taken from the string; width and the alignment flags then lay out
// the field. With the '#' flag the argument is a ByteSource.
func (f *formatter) convString(sp *spec, ar *argReader) error {
	a, err := ar.take()
	if err != nil {
		return err
	}

	if sp.flags&fHash != 0 {
		src, ok := a.(ByteSource)
		if !ok {
			return ErrBadFormat
		}
		length := src.Len()
		if sp.prec >= 0 && sp.prec < length {
			length = sp.prec
		}
		ps1, ps2 := calcSpacePadding(sp.flags, sp.width, length)
		if err := f.pad(spaces, ps1); err != nil {
			return err
		}
		for i := 0; i < length; i++ {
			if err := f.emitByte(src.ByteAt(i)); err != nil {
				return err
			}
		}
		return f.pad(spaces, ps2)
	}

	var s string
	switch v := a.(type) {
	case nil:
		s = "(null)"
	case string:
		s = v
	case []byte:
		if sp.prec >= 0 && sp.prec < len(v) {
			v = v[:sp.prec]
		}
		ps1, ps2 := calcSpacePadding(sp.flags, sp.width, len(v))
		return f.genOutBytes(ps1, "", 0, v, ps2)
	default:
		return ErrBadFormat
	}
	if sp.prec >= 0 && sp.prec < len(s) {
		s = s[:sp.prec]
	}
	ps1, ps2 := calcSpacePadding(sp.flags, sp.width, len(s))
	return f.genOut(ps1, "", 0, s, ps2)
}

// convPointer implements the %p meta-conversion: upper-case hex with
// the width and precision pinned to the full machine word, users'
// flags, width, precision and qualifier all ignored. The one exception
// is '#', which asks for the 0x prefix.
func (f *formatter) convPointer(sp *spec, ar *argReader) error {
	a, err := ar.take()
	if err != nil {
		return err
	}
	uv, ok := asUint64(a)
	if !ok {
		return ErrBadFormat
	}

	n := bits.UintSize / 4
	psp := spec{
		flags: fBang | sp.flags&fHash,
		width: n,
		prec:  n,
	}
	// Bang keeps the prefix letter lower-case against the upper-case
	// digits.
	prefix := [2]byte{'0', 'x'}
	return f.emitInteger(&psp, ar, uv, 16, true, prefix[:], 2)
}
