package format

import (
	"math"
	"math/bits"
)

// convFixed implements %k: a signed two's-complement fixed-point value
// whose layout comes from the {int.frac} part of the directive. The
// value is repacked as a binary float and rendered in style f, so all
// the f modifiers, including '!', apply.
func (f *formatter) convFixed(sp *spec, ar *argReader) error {
	totalBits := sp.wInt + sp.wFrac
	if totalBits == 0 || totalBits > 64 {
		return ErrBadFormat
	}

	a, err := ar.take()
	if err != nil {
		return err
	}
	v, ok := asInt64(a)
	if !ok {
		return ErrBadFormat
	}

	sign := 0
	var mantissa uint64
	exponent := 0

	if v != 0 {
		sign = int(uint64(v) >> (totalBits - 1) & 1)
		if sign != 0 {
			v = -v
		}
		uv := uint64(v) & (1<<(totalBits-1) - 1)
		if uv != 0 {
			exp := bits.Len64(uv) - 1 - sp.wFrac

			// Shift the top bit just past the mantissa field, where
			// packing drops it: in binary floating point the leading
			// '1' is implied.
			mantissa = uv
			for mantissa&^binMantMask == 0 {
				mantissa <<= 1
			}

			b := uint64(sign)<<63 |
				uint64(exp+binExpBias)<<binMantWidth |
				mantissa&binMantMask
			sign, mantissa, exponent = radixConvert(math.Float64frombits(b))
		}
	}

	return f.convEFG(sp, 'f', sign, mantissa, exponent)
}
