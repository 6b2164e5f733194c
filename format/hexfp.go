package format

import (
	"math"

	"format-go/x/mathx"
)

// convHexFloat implements %a and %A: hexadecimal floating point in
// the style [-]0xh.hhhhp+d. The default precision prints the 13
// fraction nibbles with trailing zeros removed; an explicit precision
// rounds or extends to exactly that many.
func (f *formatter) convHexFloat(sp *spec, ar *argReader, letter byte) error {
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

	b := math.Float64bits(dv)
	frac := b & binMantMask
	binExp := int(b>>binMantWidth) & binExpMask
	sign := int(b >> 63)
	upper := letter == 'A'

	if binExp == binExpMask {
		return f.convInfNaN(sp, letter, sign, frac)
	}

	var lead byte
	var exp int
	switch {
	case binExp == 0 && frac == 0:
		lead = '0'
		exp = 0
	case binExp == 0:
		lead = '0'
		exp = -1022
	default:
		lead = '1'
		exp = binExp - binExpBias
	}

	const fracNibbles = binMantWidth / 4
	prec := sp.prec
	if prec >= 0 && prec < fracNibbles {
		// Round at the first dropped nibble; a carry out of the
		// fraction bumps the leading digit.
		frac += 1 << (binMantWidth - 1 - 4*prec)
		if frac > binMantMask {
			frac &= binMantMask
			lead++
		}
	}

	alpha := digitsLower
	xpfx := "0x"
	pchar := byte('p')
	if upper {
		alpha = digitsUpper
		xpfx = "0X"
		pchar = 'P'
	}

	var nib [fracNibbles]byte
	n := 0
	for i := 0; i < fracNibbles; i++ {
		nib[i] = alpha[(frac>>(binMantWidth-4*(i+1)))&0xF]
		if nib[i] != '0' {
			n = i + 1
		}
	}
	digits := fracNibbles
	if prec < 0 {
		digits = n
	} else if prec < fracNibbles {
		digits = prec
	}

	pfx := fpPrefix(sp.flags, sign) + xpfx

	var body []byte
	body = append(body, lead)
	if digits > 0 || sp.flags&fHash != 0 {
		body = append(body, '.')
	}
	body = append(body, nib[:mathx.Min(digits, fracNibbles)]...)
	for i := fracNibbles; i < digits; i++ {
		body = append(body, '0')
	}
	body = append(body, pchar)
	if exp < 0 {
		body = append(body, '-')
	} else {
		body = append(body, '+')
	}
	var eb [4]byte
	en := 0
	for v := mathx.Abs(exp); ; {
		en++
		eb[len(eb)-en] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	body = append(body, eb[len(eb)-en:]...)

	length := len(pfx) + len(body)
	ps1, ps2 := calcSpacePadding(sp.flags, sp.width, length)
	pz := 0
	if sp.flags&fZero != 0 {
		pz = ps1
		ps1 = 0
	}
	return f.genOutBytes(ps1, pfx, pz, body, ps2)
}
