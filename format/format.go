// Package format is a self-contained text formatting engine in the
// printf tradition, built for small targets: no allocation on the
// common paths, no floating-point arithmetic in the float conversions,
// and output through a caller-supplied sink.
//
// Beyond the usual conversions it supports binary (%b), arbitrary
// bases (:N), digit grouping ([...]), centred padding (^), character
// repetition (%C), engineering/SI notation (!), fixed-point values
// ({m.n}k) and format string continuation across arguments.
package format

import (
	"io"
	"strings"

	"format-go/errcode"
)

// ErrBadFormat is reported for every failure: a malformed directive,
// an argument of the wrong type, exhausted arguments or a sink error.
// Output already emitted is not retracted.
const ErrBadFormat = errcode.BadFormat

// Field limits. A directive asking for more than this is malformed.
const (
	MaxWidth = 500
	MaxPrec  = 500
)

const (
	fSpace = 1 << iota
	fPlus
	fMinus
	fHash
	fZero
	fBang
	fCaret
)

type qualifier uint8

const (
	qualNone qualifier = iota
	qualH
	qualHH
	qualL
	qualLL
	qualJ
	qualZ
	qualT
	qualLD
)

// spec carries one parsed conversion directive.
type spec struct {
	flags    uint
	width    int
	prec     int // -1 when unset
	base     int // 0 means the conversion's implied base
	qual     qualifier
	repChar  byte
	group    string
	hasGroup bool
	wInt     int
	wFrac    int
}

// segment is one format string, either in memory or behind a
// ByteSource for storage that cannot be addressed as a string.
type segment struct {
	str string
	src ByteSource
}

func (s segment) size() int {
	if s.src != nil {
		return s.src.Len()
	}
	return len(s.str)
}

func (s segment) byteAt(i int) byte {
	if s.src != nil {
		return s.src.ByteAt(i)
	}
	return s.str[i]
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// Format interprets the directives in format, emitting text to w.
// It returns the number of bytes emitted. On failure ErrBadFormat is
// returned along with the count emitted before the failure.
func Format(w io.Writer, format string, args ...any) (int, error) {
	f := formatter{w: w}
	err := f.run(segment{str: format}, &argReader{args: args})
	return f.n, err
}

// FormatBytes is Format for a format string held behind a ByteSource.
// A nil format is an error, not an empty format.
func FormatBytes(w io.Writer, format ByteSource, args ...any) (int, error) {
	if format == nil {
		return 0, ErrBadFormat
	}
	f := formatter{w: w}
	err := f.run(segment{src: format}, &argReader{args: args})
	return f.n, err
}

// Sprintf formats into a string. Errors are swallowed; the text
// produced before any failure is returned.
func Sprintf(format string, args ...any) string {
	var b strings.Builder
	Format(&b, format, args...)
	return b.String()
}

// Bprintf formats into buf and returns the number of bytes written.
// Output beyond the end of buf fails the conversion.
func Bprintf(buf []byte, format string, args ...any) (int, error) {
	w := limitWriter{buf: buf}
	n, err := Format(&w, format, args...)
	return n, err
}

// limitWriter refuses writes past the end of its buffer.
type limitWriter struct {
	buf []byte
	n   int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if len(p) > len(w.buf)-w.n {
		return 0, errcode.BufferFull
	}
	copy(w.buf[w.n:], p)
	w.n += len(p)
	return len(p), nil
}

func (w *limitWriter) WriteString(s string) (int, error) {
	if len(s) > len(w.buf)-w.n {
		return 0, errcode.BufferFull
	}
	copy(w.buf[w.n:], s)
	w.n += len(s)
	return len(s), nil
}

// run walks a format segment, emitting literal text and dispatching
// conversion directives. A directive cut short by the end of the
// segment continues in the next argument, which supplies the rest of
// the format; with the '#' flag the continuation is a ByteSource.
func (f *formatter) run(seg segment, ar *argReader) error {
	i := 0
	for {
		// Literal text up to the next directive.
		if seg.src == nil {
			if i >= len(seg.str) {
				return nil
			}
			j := strings.IndexByte(seg.str[i:], '%')
			if j < 0 {
				return f.emit(seg.str[i:])
			}
			if j > 0 {
				if err := f.emit(seg.str[i : i+j]); err != nil {
					return err
				}
			}
			i += j
		} else {
			n := seg.src.Len()
			for i < n && seg.src.ByteAt(i) != '%' {
				if err := f.emitByte(seg.src.ByteAt(i)); err != nil {
					return err
				}
				i++
			}
			if i >= n {
				return nil
			}
		}
		i++ // step over '%'

		sp := spec{prec: -1}
		size := seg.size()

	flags:
		for i < size {
			switch seg.byteAt(i) {
			case ' ':
				sp.flags |= fSpace
			case '+':
				sp.flags |= fPlus
			case '-':
				sp.flags |= fMinus
			case '#':
				sp.flags |= fHash
			case '0':
				sp.flags |= fZero
			case '!':
				sp.flags |= fBang
			case '^':
				sp.flags |= fCaret
			default:
				break flags
			}
			i++
		}

		// Width, literal or from the next argument.
		if i < size && seg.byteAt(i) == '*' {
			v, err := ar.takeInt()
			if err != nil {
				return err
			}
			if v < 0 {
				v = -v
				sp.flags |= fMinus
			}
			sp.width = v
			i++
		} else {
			for i < size && isDigit(seg.byteAt(i)) {
				sp.width = sp.width*10 + int(seg.byteAt(i)-'0')
				if sp.width > MaxWidth {
					return ErrBadFormat
				}
				i++
			}
		}
		if sp.width > MaxWidth {
			return ErrBadFormat
		}

		// Precision. A negative argument means unset.
		if i < size && seg.byteAt(i) == '.' {
			i++
			if i < size && seg.byteAt(i) == '*' {
				v, err := ar.takeInt()
				if err != nil {
					return err
				}
				if v > MaxPrec {
					return ErrBadFormat
				}
				if v >= 0 {
					sp.prec = v
				}
				i++
			} else {
				sp.prec = 0
				for i < size && isDigit(seg.byteAt(i)) {
					sp.prec = sp.prec*10 + int(seg.byteAt(i)-'0')
					if sp.prec > MaxPrec {
						return ErrBadFormat
					}
					i++
				}
			}
		}

		// Base override for the numeric conversions.
		if i < size && seg.byteAt(i) == ':' {
			i++
			base := 0
			if i < size && seg.byteAt(i) == '*' {
				v, err := ar.takeInt()
				if err != nil {
					return err
				}
				base = v
				i++
			} else {
				for i < size && isDigit(seg.byteAt(i)) {
					base = base*10 + int(seg.byteAt(i)-'0')
					if base > 36 {
						return ErrBadFormat
					}
					i++
				}
			}
			if base == 1 || base > 36 {
				return ErrBadFormat
			}
			if base > 0 {
				sp.base = base
			}
		}

		// Grouping span, captured raw and applied after conversion.
		if i < size && seg.byteAt(i) == '[' {
			i++
			start := i
			for {
				if i >= size {
					return ErrBadFormat
				}
				if seg.byteAt(i) == ']' {
					break
				}
				i++
			}
			if seg.src == nil {
				sp.group = seg.str[start:i]
			} else {
				var b strings.Builder
				for j := start; j < i; j++ {
					b.WriteByte(seg.src.ByteAt(j))
				}
				sp.group = b.String()
			}
			sp.hasGroup = true
			i++
		}

		// Fixed-point layout {int.frac}.
		if i < size && seg.byteAt(i) == '{' {
			i++
			for i < size && isDigit(seg.byteAt(i)) {
				sp.wInt = sp.wInt*10 + int(seg.byteAt(i)-'0')
				i++
			}
			if i < size && seg.byteAt(i) == '.' {
				i++
				for i < size && isDigit(seg.byteAt(i)) {
					sp.wFrac = sp.wFrac*10 + int(seg.byteAt(i)-'0')
					i++
				}
			}
			if i >= size || seg.byteAt(i) != '}' {
				return ErrBadFormat
			}
			i++
		}

		// Length qualifier, with doubling for hh and ll.
		if i < size {
			var q qualifier
			switch seg.byteAt(i) {
			case 'h':
				q = qualH
			case 'l':
				q = qualL
			case 'j':
				q = qualJ
			case 'z':
				q = qualZ
			case 't':
				q = qualT
			case 'L':
				q = qualLD
			}
			if q != qualNone {
				c := seg.byteAt(i)
				i++
				if (q == qualH || q == qualL) && i < size && seg.byteAt(i) == c {
					i++
					if q == qualH {
						q = qualHH
					} else {
						q = qualLL
					}
				}
				sp.qual = q
			}
		}

		// Continuation: the rest of the format arrives as the next
		// argument. Everything parsed so far is discarded except the
		// '#' flag, which selects a ByteSource continuation.
		if i >= size {
			a, err := ar.take()
			if err != nil {
				return err
			}
			if sp.flags&fHash != 0 {
				src, ok := a.(ByteSource)
				if !ok {
					return ErrBadFormat
				}
				seg = segment{src: src}
			} else {
				str, ok := a.(string)
				if !ok {
					return ErrBadFormat
				}
				seg = segment{str: str}
			}
			i = 0
			continue
		}

		letter := seg.byteAt(i)
		if letter == 'C' {
			i++
			if i >= size {
				return ErrBadFormat
			}
			sp.repChar = seg.byteAt(i)
		}
		i++

		if err := f.conv(&sp, ar, letter); err != nil {
			return err
		}
	}
}
