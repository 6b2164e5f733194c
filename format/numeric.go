package format

import "math/bits"

const (
	digitsLower = "0123456789abcdefghijklmnopqrstuvwxyz"
	digitsUpper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// div10 divides by 10 using the fixed-point reciprocal from Granlund &
// Montgomery's "Division by Invariant Integers Using Multiplication"
// (magic constant per Hacker's Delight). Exact for all uint64 inputs.
func div10(v uint64) (q, r uint64) {
	hi, _ := bits.Mul64(v, 0xCCCCCCCCCCCCCCCD)
	q = hi >> 3
	return q, v - q*10
}

// encodeUint fills buf right to left with the digits of uv in the given
// base and returns the digit count. Zero yields no digits; callers apply
// the default precision of one.
func encodeUint(buf []byte, uv uint64, base int, upper bool) int {
	alpha := digitsLower
	if upper {
		alpha = digitsUpper
	}
	w := 0
	switch {
	case base == 10:
		for uv != 0 {
			q, r := div10(uv)
			w++
			buf[len(buf)-w] = byte('0' + r)
			uv = q
		}
	case base&(base-1) == 0:
		shift := uint(bits.TrailingZeros(uint(base)))
		mask := uint64(base - 1)
		for uv != 0 {
			w++
			buf[len(buf)-w] = alpha[uv&mask]
			uv >>= shift
		}
	default:
		b := uint64(base)
		for uv != 0 {
			w++
			buf[len(buf)-w] = alpha[uv%b]
			uv /= b
		}
	}
	return w
}

// numClass is the canonical description a conversion letter resolves to
// before the shared integer path runs.
type numClass struct {
	base   int
	signed bool
	upper  bool
	prefix byte // 'o', 'x', 'X' or 'b' radix prefix behaviour, 0 for none
}

func resolveNumeric(letter byte) (numClass, bool) {
	switch letter {
	case 'd', 'i':
		return numClass{base: 10, signed: true}, true
	case 'I':
		return numClass{base: 10, signed: true, upper: true}, true
	case 'u':
		return numClass{base: 10}, true
	case 'U':
		return numClass{base: 10, upper: true}, true
	case 'o':
		return numClass{base: 8, prefix: 'o'}, true
	case 'x':
		return numClass{base: 16, prefix: 'x'}, true
	case 'X':
		return numClass{base: 16, upper: true, prefix: 'X'}, true
	case 'b':
		return numClass{base: 2, prefix: 'b'}, true
	}
	return numClass{}, false
}

func (f *formatter) convNumeric(sp *spec, ar *argReader, letter byte) error {
	nc, ok := resolveNumeric(letter)
	if !ok {
		return ErrBadFormat
	}
	if nc.signed {
		// Decimal conversions ignore the alternate form; the flag is
		// reused internally to mean "emit the prefix".
		sp.flags &^= fHash
	}

	var uv uint64
	var prefix [2]byte
	pfxW := 0

	if nc.signed {
		a, err := ar.take()
		if err != nil {
			return err
		}
		v, ok := asInt64(a)
		if !ok {
			return ErrBadFormat
		}
		v = narrowSigned(v, sp.qual)
		uv = uint64(v)
		if v < 0 {
			uv = -uv
			prefix[0] = '-'
		} else if sp.flags&fPlus != 0 {
			prefix[0] = '+'
		} else if sp.flags&fSpace != 0 {
			prefix[0] = ' '
		}
		if prefix[0] != 0 {
			pfxW = 1
			sp.flags |= fHash
		}
	} else {
		a, err := ar.take()
		if err != nil {
			return err
		}
		v, ok := asUint64(a)
		if !ok {
			return ErrBadFormat
		}
		uv = narrowUnsigned(v, sp.qual)
		prefix[0] = '0'
	}

	base := nc.base
	if sp.base != 0 {
		base = sp.base
	}

	switch nc.prefix {
	case 'o':
		if uv != 0 {
			pfxW = 1
		}
	case 'x', 'X', 'b':
		if sp.flags&fBang != 0 || uv != 0 {
			prefix[1] = nc.prefix
			pfxW = 2
			// Bang flag forces a lower-case prefix letter.
			if sp.flags&fBang != 0 {
				prefix[1] |= 0x20
			}
		}
	}

	return f.emitInteger(sp, ar, uv, base, nc.upper, prefix[:], pfxW)
}

// emitInteger renders an unsigned magnitude with the prefix, precision,
// grouping and field layout the directive asks for. %p reaches this
// directly with a pre-resolved directive.
func (f *formatter) emitInteger(sp *spec, ar *argReader, uv uint64, base int, upper bool, prefix []byte, pfxW int) error {
	buf := f.scratch[:]
	digitW := encodeUint(buf, uv, base, upper)

	if sp.prec < 0 {
		sp.prec = 1
	} else {
		sp.flags &^= fZero
	}
	numW := digitW
	if sp.prec > numW {
		numW = sp.prec
	}

	body := buf[len(buf)-digitW:]
	pz := numW - digitW
	if sp.hasGroup {
		// Grouping acts on the significant digits only; precision
		// zeros go on plain. Separators count towards the field width.
		g, err := groupRun(body, sp.group, ar)
		if err != nil {
			return err
		}
		body = g
	}

	length := len(body) + pz
	if sp.flags&fHash != 0 {
		length += pfxW
	}

	ps1, ps2 := calcSpacePadding(sp.flags, sp.width, length)
	if sp.flags&fZero != 0 {
		pz += ps1
		ps1 = 0
	}

	if err := f.pad(spaces, ps1); err != nil {
		return err
	}
	if sp.flags&fHash != 0 {
		for _, c := range prefix[:pfxW] {
			if err := f.emitByte(c); err != nil {
				return err
			}
		}
	}
	if err := f.pad(zeroes, pz); err != nil {
		return err
	}
	if err := f.emitBytes(body); err != nil {
		return err
	}
	return f.pad(spaces, ps2)
}
