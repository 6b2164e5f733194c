package format

import (
	"math"

	"format-go/x/mathx"
)

// Decimal mantissa layout: one integer digit followed by an assumed
// decimal point and decSigFig-1 fractional digits.
const (
	decOne    uint64 = 1000000000000000
	decSigFig        = 16
)

const (
	binMantWidth = 52
	binExpBias   = 1023
	binExpMask   = 0x7FF
	binMantMask  = uint64(1)<<binMantWidth - 1
)

// expSpecial marks Inf and NaN in the decimal domain.
const expSpecial = math.MaxInt

// Engineering and scientific suffixes only cover the range defined by
// the BIPM (Resolution 4, 19th CGPM, 1991).
const compExpLimit = 24

// radixConvert translates an IEEE 754 double from radix-2 to radix-10
// without floating-point arithmetic. The result is a decSigFig-digit
// decimal mantissa of the form D.ddd... with an assumed point, plus a
// power-of-ten exponent. Inf and NaN report expSpecial; NaN keeps a
// nonzero mantissa.
func radixConvert(v float64) (sign int, mantissa uint64, exponent int) {
	b := math.Float64bits(v)
	binMant := b & binMantMask
	binExp := int(b>>binMantWidth) & binExpMask
	sign = int(b >> 63)

	if binExp == binExpMask {
		return sign, binMant, expSpecial
	}
	if binMant == 0 && binExp == 0 {
		return sign, 0, 0
	}

	if binExp == 0 {
		// Denormal: normalise by hand with an expanded exponent range.
		binExp = 1
		mantissa = 0
		for binMant&(1<<(binMantWidth-1)) == 0 {
			binMant <<= 1
			binExp--
		}
	} else {
		mantissa = decOne
	}

	// Accumulate the fractional bits as halving decimal increments.
	inc := (decOne + 1) / 2
	binMant <<= 12
	for binMant != 0 {
		if binMant&(1<<63) != 0 {
			mantissa += inc
		}
		binMant <<= 1
		inc = (inc + 1) / 2
	}

	// Walk the binary exponent into the decimal one, renormalising the
	// mantissa as it crosses a decade.
	binExp -= binExpBias
	for ; binExp > 0; binExp-- {
		mantissa *= 2
		if mantissa >= decOne*10 {
			mantissa = (mantissa + 5) / 10
			exponent++
		}
	}
	for ; binExp < 0; binExp++ {
		if mantissa < decOne*2 {
			mantissa *= 10
			exponent--
		}
		mantissa = (mantissa + 1) / 2
	}
	return sign, mantissa, exponent
}

// mantToChar converts part of the mantissa into decimal digit bytes.
// Unwanted low digits are dropped without rounding; roundMantissa has
// already been applied to the full value.
func mantToChar(buf []byte, m uint64, digitsTotal, digitsToConvert int) int {
	for i := digitsTotal - digitsToConvert; i > 0; i-- {
		m /= 10
	}
	for i := digitsToConvert; i > 0; i-- {
		buf[i-1] = byte('0' + m%10)
		m /= 10
	}
	return digitsToConvert
}

// roundMantissa adds half of the least significant output digit. The
// shift distance depends on the conversion style: f counts digits from
// the decimal point, e always keeps a single integer digit, and the
// compressed (engineering/SI) styles fold the exponent to a multiple
// of three first.
func roundMantissa(mantissa *uint64, exponent *int, prec int, isF, compressed bool) {
	addend := decOne * 5
	e := *exponent

	if compressed {
		e %= 3
		if e < 0 {
			e += 3
		}
		if isF {
			// SI suffixes run out beyond yocto/yotta.
			if absexp := mathx.Abs(*exponent); absexp > compExpLimit {
				e += absexp - compExpLimit
			}
		}
	}

	if !isF {
		if e < 0 {
			e++
		}
		e = mathx.Abs(e)
	}
	shift := mathx.Max(e+prec+1, 0)
	for ; shift > 0; shift-- {
		addend /= 10
	}
	*mantissa += addend

	if *mantissa >= decOne*10 {
		*mantissa = (*mantissa + 5) / 10
		*exponent++
	}
}

func fpPrefix(flags uint, sign int) string {
	switch {
	case sign != 0:
		return "-"
	case flags&fPlus != 0:
		return "+"
	case flags&fSpace != 0:
		return " "
	}
	return ""
}

// convInfNaN emits the text forms of infinities and NaNs. Lower-case
// conversion letters produce "inf"/"nan", upper-case "INF"/"NAN".
func (f *formatter) convInfNaN(sp *spec, letter byte, sign int, mantissa uint64) error {
	var body string
	upper := letter < 'a'
	switch {
	case mantissa != 0 && upper:
		body = "NAN"
	case mantissa != 0:
		body = "nan"
	case upper:
		body = "INF"
	default:
		body = "inf"
	}

	pfx := fpPrefix(sp.flags, sign)
	ps1, ps2 := calcSpacePadding(sp.flags, sp.width, len(body)+len(pfx))
	return f.genOut(ps1, pfx, 0, body, ps2)
}

// convEFG renders the decimal mantissa/exponent pair in style e, E, f,
// F, g or G. The two layouts share one output model:
//
//	e: [space][sign][zero][digit]       [.]      [digit][zero][eE][sign][digits][space]
//	f: [space][sign][zero][digits][zero][.][zero][digit][zero]                  [space]
//	      ps1         pz1  n_left  pz2      pz3  n_right pz4                     ps2
func (f *formatter) convEFG(sp *spec, letter byte, sign int, mantissa uint64, exponent int) error {
	reallyG := false

	if letter == 'g' || letter == 'G' {
		reallyG = true

		// Engineering notation and g do not mix.
		sp.flags &^= fBang

		if sp.prec == 0 {
			sp.prec = 1
		}
		// Style e only when the exponent falls outside [-4, prec).
		if exponent < -4 || exponent >= sp.prec {
			letter -= 'g' - 'e'
		} else {
			letter -= 'g' - 'f'
		}
	}
	isF := letter == 'f' || letter == 'F'

	if sp.prec < 0 {
		sp.prec = 6
	}

	pfx := fpPrefix(sp.flags, sign)

	roundMantissa(&mantissa, &exponent, sp.prec, isF, sp.flags&fBang != 0)

	// Trim trailing zeros, counting the significant figures left.
	sigfig := 0
	if mantissa != 0 {
		for sigfig = decSigFig; sigfig > 0; sigfig-- {
			if mantissa%10 != 0 {
				break
			}
			mantissa /= 10
		}
	}

	var nLeft int
	var si byte
	if isF {
		if sp.flags&fBang != 0 {
			sitab := [...]byte{'y', 'z', 'a', 'f', 'p', 'n', 'u', 'm',
				0,
				'k', 'M', 'G', 'T', 'P', 'E', 'Z', 'Y'}
			idx := len(sitab) / 2
			for idx > 0 && idx < len(sitab)-1 {
				if exponent >= 3 {
					idx++
					exponent -= 3
					continue
				}
				if exponent < 0 {
					idx--
					exponent += 3
					continue
				}
				break
			}
			si = sitab[idx]
		}
		if exponent > -1 {
			nLeft = 1 + exponent
		}
	} else {
		nLeft = 1
		// Engineering format forces the exponent to a multiple of 3.
		if sp.flags&fBang != 0 {
			m := exponent % 3
			if m < 0 {
				m += 3
			}
			nLeft += m
			exponent -= m
		}
	}

	nRight := mathx.Min(mathx.Max(sigfig-nLeft, 0), sp.prec)

	// g in style f shows significant digits, not a fixed fraction.
	if isF && reallyG {
		m := mantissa
		for i := sigfig; i > nLeft+nRight; i-- {
			m /= 10
		}
		for nRight > 0 && m%10 == 0 {
			m /= 10
			nRight--
		}
	}

	length := len(pfx) + nLeft + nRight
	var pz1, pz2, pz3, pz4 int
	nExp := 0

	if isF {
		// At least one digit appears before the point.
		if nLeft == 0 {
			pz1 = 1
			length++
		}
		if nLeft > sigfig {
			pz2 = nLeft - sigfig
		}
		if exponent < -1 && sp.prec > 0 {
			pz3 = mathx.Min(-1-exponent, sp.prec)
			length += pz3
		}
		if si != 0 {
			length += 2
		}
	} else {
		for i := mathx.Abs(exponent); i > 0; i /= 10 {
			nExp++
		}
		nExp = mathx.Max(nExp, 2)
		// 'e' or 'E', the sign, then the digits.
		length += 2 + nExp
	}

	if pz3+nRight < sp.prec && !(reallyG && sp.flags&fHash == 0) {
		pz4 = sp.prec - pz3 - nRight
		length += pz4
	} else if isF && pz3+nRight > sp.prec {
		x := pz3 + nRight - sp.prec
		length -= x
		nRight -= x
	}

	wantDP := pz3 != 0 || pz4 != 0 || nRight > 0 || sp.flags&fHash != 0
	if wantDP {
		length++
	}

	ps1, ps2 := calcSpacePadding(sp.flags, sp.width, length)
	if sp.flags&fZero != 0 {
		pz1 += ps1
		ps1 = 0
	}

	dig := f.scratch[:decSigFig]

	// Left of the point, with leading space, sign and zeros.
	eN := 0
	if nLeft > 0 {
		eN = mantToChar(dig[:], mantissa, sigfig, nLeft-pz2)
	}
	sigfig -= eN
	if err := f.genOutBytes(ps1, pfx, pz1, dig[:eN], 0); err != nil {
		return err
	}
	if err := f.pad(zeroes, pz2); err != nil {
		return err
	}

	// Right of the point.
	eN = 0
	if nRight > 0 {
		eN = mantToChar(dig[:], mantissa, sigfig, nRight)
	}
	dp := ""
	if wantDP {
		dp = "."
	}
	if err := f.genOutBytes(0, dp, pz3, dig[:eN], 0); err != nil {
		return err
	}
	if err := f.pad(zeroes, pz4); err != nil {
		return err
	}

	if nExp > 0 {
		esign := byte('+')
		if exponent < 0 {
			esign = '-'
		}
		absexp := mathx.Abs(exponent)
		for i := nExp; i > 0; i-- {
			dig[i-1] = byte('0' + absexp%10)
			absexp /= 10
		}
		if err := f.emitByte(letter); err != nil {
			return err
		}
		if err := f.emitByte(esign); err != nil {
			return err
		}
		if err := f.emitBytes(dig[:nExp]); err != nil {
			return err
		}
	}

	// SI multiplier and trailing space.
	if si != 0 {
		if err := f.emitByte(' '); err != nil {
			return err
		}
		if err := f.emitByte(si); err != nil {
			return err
		}
		return f.pad(spaces, ps2)
	}
	return f.pad(spaces, ps2)
}

// convFloat is the entry point for %e, %E, %f, %F, %g and %G.
func (f *formatter) convFloat(sp *spec, ar *argReader, letter byte) error {
	if sp.qual == qualLD {
		return ErrBadFormat
	}
	a, err := ar.take()
	if err != nil {
		return err
	}
	dv, ok := asFloat64(a)
	if !ok {
		return ErrBadFormat
	}
	sign, mantissa, exponent := radixConvert(dv)
	if exponent == expSpecial {
		return f.convInfNaN(sp, letter, sign, mantissa)
	}
	return f.convEFG(sp, letter, sign, mantissa, exponent)
}
