// Package microformat is a severely cut-down sibling of package
// format, sized for 16-bit parts: a byte-at-a-time sink, 16-bit
// values, flags " +-0" only and the conversions % c s d u x X b p.
package microformat

import "format-go/errcode"

// ErrBadFormat is reported for malformed directives, missing or
// wrongly typed arguments and sink errors.
const ErrBadFormat = errcode.BadFormat

// Field limits.
const (
	MaxWidth = 80
	MaxPrec  = 80
)

const (
	fSpace = 1 << iota
	fPlus
	fMinus
	fZero
)

// PutFunc is the output sink, one byte at a time. A non-nil error
// fails the conversion.
type PutFunc func(c byte) error

type state struct {
	put PutFunc
	n   int
}

func (st *state) emitRun(c byte, n int) error {
	for ; n > 0; n-- {
		if err := st.put(c); err != nil {
			return ErrBadFormat
		}
		st.n++
	}
	return nil
}

func (st *state) emitStr(s string) error {
	for i := 0; i < len(s); i++ {
		if err := st.put(s[i]); err != nil {
			return ErrBadFormat
		}
		st.n++
	}
	return nil
}

func (st *state) emitBytes(b []byte) error {
	for _, c := range b {
		if err := st.put(c); err != nil {
			return ErrBadFormat
		}
		st.n++
	}
	return nil
}

func calcSpacePadding(flags uint, width, length int) (ps1, ps2 int) {
	pad := 0
	if length < width {
		pad = width - length
	}
	if flags&fMinus != 0 {
		return 0, pad
	}
	return pad, 0
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

type spec struct {
	flags uint
	width int
	prec  int // -1 when unset
}

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

func (r *argReader) takeInt16() (int16, error) {
	a, err := r.take()
	if err != nil {
		return 0, err
	}
	switch v := a.(type) {
	case int:
		return int16(v), nil
	case int8:
		return int16(v), nil
	case int16:
		return v, nil
	case int32:
		return int16(v), nil
	case int64:
		return int16(v), nil
	case uint:
		return int16(v), nil
	case uint8:
		return int16(v), nil
	case uint16:
		return int16(v), nil
	case uint32:
		return int16(v), nil
	case uint64:
		return int16(v), nil
	}
	return 0, ErrBadFormat
}

func (r *argReader) takeUint16() (uint16, error) {
	v, err := r.takeInt16()
	return uint16(v), err
}

// Format interprets the directives in format, sending output bytes to
// put. It returns the number of bytes emitted; on any failure the
// error is ErrBadFormat and output already sent stays sent.
func Format(put PutFunc, format string, args ...any) (int, error) {
	st := state{put: put}
	ar := argReader{args: args}

	i := 0
	for i < len(format) {
		if format[i] != '%' {
			if err := st.emitRun(format[i], 1); err != nil {
				return st.n, err
			}
			i++
			continue
		}
		i++

		var sp spec
	flags:
		for i < len(format) {
			switch format[i] {
			case ' ':
				sp.flags |= fSpace
			case '+':
				sp.flags |= fPlus
			case '-':
				sp.flags |= fMinus
			case '0':
				sp.flags |= fZero
			default:
				break flags
			}
			i++
		}

		for i < len(format) && isDigit(format[i]) && sp.width <= MaxWidth/10 {
			sp.width = sp.width*10 + int(format[i]-'0')
			i++
		}
		if sp.width > MaxWidth {
			return st.n, ErrBadFormat
		}

		sp.prec = -1
		if i < len(format) && format[i] == '.' {
			i++
			sp.prec = 0
			for i < len(format) && isDigit(format[i]) && sp.prec <= MaxPrec/10 {
				sp.prec = sp.prec*10 + int(format[i]-'0')
				i++
			}
			if sp.prec > MaxPrec {
				return st.n, ErrBadFormat
			}
		}

		if i >= len(format) {
			return st.n, ErrBadFormat
		}
		letter := format[i]
		i++

		if err := conv(&st, &sp, &ar, letter); err != nil {
			return st.n, err
		}
	}
	return st.n, nil
}

func conv(st *state, sp *spec, ar *argReader, letter byte) error {
	if letter == '%' {
		return st.emitRun('%', 1)
	}

	if letter == 'c' {
		v, err := ar.takeInt16()
		if err != nil {
			return err
		}
		return st.emitRun(byte(v), 1)
	}

	if letter == 's' {
		return convString(st, sp, ar)
	}

	// %p rewrites itself as %4.4X on a 16-bit word.
	if letter == 'p' {
		letter = 'X'
		sp.width = 4
		sp.prec = 4
	}

	signed := false
	base := 0
	switch letter {
	case 'd':
		signed = true
		base = 10
	case 'u':
		base = 10
	case 'x', 'X':
		base = 16
	case 'b':
		base = 2
	}
	if base == 0 {
		return ErrBadFormat
	}
	return convNumeric(st, sp, ar, letter, base, signed)
}

// convString prints a string argument. A nil argument prints a single
// '?', ignoring all modifiers.
func convString(st *state, sp *spec, ar *argReader) error {
	a, err := ar.take()
	if err != nil {
		return err
	}
	if a == nil {
		return st.emitRun('?', 1)
	}
	s, ok := a.(string)
	if !ok {
		return ErrBadFormat
	}
	if sp.prec >= 0 && sp.prec < len(s) {
		s = s[:sp.prec]
	}
	ps1, ps2 := calcSpacePadding(sp.flags, sp.width, len(s))
	if err := st.emitRun(' ', ps1); err != nil {
		return err
	}
	if err := st.emitStr(s); err != nil {
		return err
	}
	return st.emitRun(' ', ps2)
}

func convNumeric(st *state, sp *spec, ar *argReader, letter byte, base int, signed bool) error {
	const digits = "0123456789ABCDEF"

	var uv uint16
	var pfx byte
	pfxN := 0

	if signed {
		v, err := ar.takeInt16()
		if err != nil {
			return err
		}
		uv = uint16(v)
		if v < 0 {
			uv = -uv
			pfx = '-'
		} else if sp.flags&fPlus != 0 {
			pfx = '+'
		} else if sp.flags&fSpace != 0 {
			pfx = ' '
		}
		if pfx != 0 {
			pfxN = 1
		}
	} else {
		v, err := ar.takeUint16()
		if err != nil {
			return err
		}
		uv = v
	}

	var buf [16]byte
	digitW := 0
	for uv != 0 {
		cc := digits[uv%uint16(base)]
		uv /= uint16(base)
		if letter == 'x' {
			cc |= 0x20
		}
		digitW++
		buf[len(buf)-digitW] = cc
	}

	if sp.prec < 0 {
		sp.prec = 1
	} else {
		sp.flags &^= fZero
	}
	numW := digitW
	if sp.prec > numW {
		numW = sp.prec
	}

	length := pfxN + numW
	ps1, ps2 := calcSpacePadding(sp.flags, sp.width, length)
	pz := numW - digitW
	if sp.flags&fZero != 0 {
		pz += ps1
		ps1 = 0
	}

	if err := st.emitRun(' ', ps1); err != nil {
		return err
	}
	if pfxN > 0 {
		if err := st.emitRun(pfx, 1); err != nil {
			return err
		}
	}
	if err := st.emitRun('0', pz); err != nil {
		return err
	}
	if err := st.emitBytes(buf[len(buf)-digitW:]); err != nil {
		return err
	}
	return st.emitRun(' ', ps2)
}
