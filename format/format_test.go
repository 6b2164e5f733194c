package format

import (
	"math"
	"math/bits"
	"strings"
	"testing"
)

type fmtTest struct {
	want   string
	format string
	args   []any
}

func runFmtTests(t *testing.T, tests []fmtTest) {
	t.Helper()
	for _, tc := range tests {
		var b strings.Builder
		n, err := Format(&b, tc.format, tc.args...)
		if err != nil {
			t.Fatalf("Format(%q, %v): %v", tc.format, tc.args, err)
		}
		if got := b.String(); got != tc.want {
			t.Fatalf("Format(%q, %v) = %q, want %q", tc.format, tc.args, got, tc.want)
		}
		if n != len(tc.want) {
			t.Fatalf("Format(%q, %v) reported %d bytes, want %d", tc.format, tc.args, n, len(tc.want))
		}
	}
}

func runFailTests(t *testing.T, tests []fmtTest) {
	t.Helper()
	for _, tc := range tests {
		var b strings.Builder
		if _, err := Format(&b, tc.format, tc.args...); err != ErrBadFormat {
			t.Fatalf("Format(%q, %v): err = %v, want ErrBadFormat", tc.format, tc.args, err)
		}
	}
}

func TestLiterals(t *testing.T) {
	long := strings.Repeat("abcdefghij", 10)
	runFmtTests(t, []fmtTest{
		{"", "", nil},
		{"a", "a", nil},
		{"abc", "abc", nil},
		{long, long, nil},
		{"\a\b\f\n\r\t\v", "\a\b\f\n\r\t\v", nil},
		{"'\"\\?", "'\"\\?", nil},
	})
}

func TestPercent(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"%", "%%", nil},
		{"%", "%-+ #0!^12.h%", nil},
		{"%", "%-+ #0!^12.24h%", nil},
		{"%c", "%%c", nil},
		{"%%%", "%%%%%%", nil},
		{"% % %", "%% %% %%", nil},
	})
}

func TestChar(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"a", "%c", []any{'a'}},
		{"a", "%-+ #0!^12hc", []any{'a'}},
		{"a", "%-+ #0!^12lc", []any{'a'}},
		{"ac", "%cc", []any{'a'}},
		{"abc", "%c%c%c", []any{'a', 'b', 'c'}},
		{"a b c", "%c %c %c", []any{'a', 'b', 'c'}},

		// Precision is a repeat count; zero means one.
		{"a", "%.c", []any{'a'}},
		{"aaaa", "%.4c", []any{'a'}},
		{"aaaabbbbcccc", "%.4c%.4c%.4c", []any{'a', 'b', 'c'}},
		{strings.Repeat("-", 12), "%.12c", []any{'-'}},

		// Inline repetition takes the repeated character from the
		// format itself.
		{"aaaa", "%.4Ca", nil},
		{strings.Repeat("-", 12), "%.12C-", nil},
		{"----", "%.*c", []any{4, '-'}},
		{"aaaa", "%.*Ca", []any{4}},
	})

	// %C at the end of the format has no character to repeat.
	runFailTests(t, []fmtTest{
		{"", "%.4C", nil},
	})
}

func TestCount(t *testing.T) {
	var n int
	check := func(format string, want string, wantN int, args ...any) {
		t.Helper()
		var b strings.Builder
		if _, err := Format(&b, format, args...); err != nil {
			t.Fatalf("Format(%q): %v", format, err)
		}
		if b.String() != want {
			t.Fatalf("Format(%q) = %q, want %q", format, b.String(), want)
		}
		if n != wantN {
			t.Fatalf("Format(%q): count = %d, want %d", format, n, wantN)
		}
	}

	check("hello%n", "hello", 5, &n)
	check("hel%nlo", "hello", 3, &n)
	check("%nhello", "hello", 0, &n)

	var n64 int64
	var n16 int16
	runFmtTests(t, []fmtTest{
		{"hello", "hello%ln", []any{&n64}},
		{"hello", "hello%hn", []any{&n16}},
	})
	if n64 != 5 || n16 != 5 {
		t.Fatalf("length-qualified %%n: got %d, %d, want 5, 5", n64, n16)
	}

	// A count wider than the target type wraps.
	var c int8
	long := strings.Repeat("hello", 64)
	runFmtTests(t, []fmtTest{
		{long, long + "%hhn", []any{&c}},
	})
	if c != 64 {
		t.Fatalf("%%hhn wrap: got %d, want 64", c)
	}

	// Nil pointers are ignored.
	runFmtTests(t, []fmtTest{
		{"hello", "hello%n", []any{nil}},
		{"hello", "hello%hn", []any{(*int16)(nil)}},
		{"hello", "hello%ln", []any{(*int64)(nil)}},
		{"hello", "hello%-+ #0!^12.24n", []any{&n}},
	})
	if n != 5 {
		t.Fatalf("modifiers on %%n: count = %d, want 5", n)
	}
}

func TestString(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"hello", "%s", []any{"hello"}},
		{"goodbye", "%sbye", []any{"good"}},

		{"   hello", "%8s", []any{"hello"}},
		{"hello   ", "%-8s", []any{"hello"}},
		{"     hel", "%8.3s", []any{"hello"}},
		{"hel     ", "%-8.3s", []any{"hello"}},
		{"hel", "%.3s", []any{"hello"}},

		// Centred fields put the odd space on the right.
		{"  hello  ", "%^9s", []any{"hello"}},
		{"  hello ", "%^8s", []any{"hello"}},
		{" hello  ", "%-^8s", []any{"hello"}},
		{"hello", "%^3s", []any{"hello"}},

		{"(null)", "%s", []any{nil}},

		{"hello", "%+ 0!ls", []any{"hello"}},
		{"hello", "%+ 0!hs", []any{"hello"}},
	})
}

func TestStringByteSource(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"funky monkey", "%#s", []any{MemBytes("funky monkey")}},
		{"  fun", "%#5.3s", []any{MemBytes("funky")}},
	})
}

func TestPointer(t *testing.T) {
	digits := bits.UintSize / 4
	all := strings.Repeat("F", digits)

	runFmtTests(t, []fmtTest{
		{strings.Repeat("0", digits), "%p", []any{uintptr(0)}},
		{strings.Repeat("0", digits-4) + "1234", "%p", []any{uintptr(0x1234)}},
		{all, "%p", []any{^uintptr(0)}},

		// Every modifier except '#' is ignored.
		{"0x" + all, "%-+ #0!^24.48lp", []any{^uintptr(0)}},
		{"0x" + all, "%-+ #0!^24.48hp", []any{^uintptr(0)}},
	})
}

func TestDecimal(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"0", "%d", []any{0}},
		{"1234", "%d", []any{1234}},
		{"-1234", "%d", []any{-1234}},

		// Zero with zero precision prints nothing.
		{"", "%.0d", []any{0}},

		{"001234", "%.6d", []any{1234}},
		{"  1234", "%6d", []any{1234}},
		{" -1234", "%6d", []any{-1234}},
		{"1234", "%2d", []any{1234}},
		{"1234", "%02d", []any{1234}},

		{"1234  ", "%-6d", []any{1234}},
		{"-1234 ", "%-6d", []any{-1234}},

		{"001234", "%06d", []any{1234}},
		{"1234  ", "%-06d", []any{1234}},
		{"  1234", "%06.1d", []any{1234}},

		{"+1234", "%+d", []any{1234}},
		{"-1234", "%+d", []any{-1234}},
		{" 1234", "% d", []any{1234}},
		{"-1234", "% d", []any{-1234}},
		{" ", "% .0d", []any{0}},
		{"+1234", "%+ d", []any{1234}},
		{"-1234", "%+ d", []any{-1234}},
		{"+", "%+ .0d", []any{0}},

		{"  1234  ", "%^8d", []any{1234}},

		{"1234", "%!#d", []any{1234}},

		{"24", "%hd", []any{int16(24)}},
		{"1234567890", "%ld", []any{int64(1234567890)}},
		{"123456789123456789", "%lld", []any{int64(123456789123456789)}},
	})
}

func TestDecimalGrouping(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"12,34", "%[,2]d", []any{1234}},
		{"12,34,56", "%[,2]d", []any{123456}},
		{"1234,56", "%[-,2]d", []any{123456}},
		{"1,234.56", "%[,3.2]d", []any{123456}},
		{"12,345,678.90", "%[,3.2]d", []any{1234567890}},
		{"1234", "%[_0]d", []any{1234}},
		{"1_2_3_4", "%[_1]d", []any{1234}},
		{"12_34", "%[_2]d", []any{1234}},
		{"1234", "%[]d", []any{1234}},

		// Separators come out of the field width, not on top of it.
		{"0012_34", "%.6[_2]d", []any{1234}},
		{" 0012_34", "%8.6[_2]d", []any{1234}},
		{"0012_34 ", "%-8.6[_2]d", []any{1234}},

		{"AB_CD", "%[_2]X", []any{uint(0xABCD)}},
		{"1_1_1_1_0_0_0_0", "%[_1]b", []any{uint(0xF0)}},
		{"1111_00_11", "%[-_2_2]b", []any{uint(0xF3)}},
	})

	runFailTests(t, []fmtTest{
		{"", "%[,2d", []any{1234}},
	})
}

func TestDecimalBases(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"11", "%:3i", []any{4}},
		{"11", "%:*i", []any{3, 4}},

		// No base digits, or a negative star base, means the implied
		// base.
		{"11", "%:i", []any{11}},
		{"12", "%:*i", []any{-1, 12}},

		{"g", "%:17i", []any{16}},
		{"G", "%:17I", []any{16}},
		{"XYZ", "%:36I", []any{44027}},
		{"  0XYZ", "%6.4:36I", []any{44027}},
		{"-G", "%:17I", []any{-16}},
	})

	runFailTests(t, []fmtTest{
		{"", "%:1i", []any{0}},
		{"", "%:9999i", []any{0}},
		{"", "%:*i", []any{9999, 0}},
	})
}

func TestUnsignedBases(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"0", "%b", []any{uint(0)}},
		{"0", "%o", []any{uint(0)}},
		{"0", "%u", []any{uint(0)}},
		{"0", "%x", []any{uint(0)}},
		{"0", "%X", []any{uint(0)}},

		{"1101", "%b", []any{uint(13)}},
		{"1234", "%o", []any{uint(0o1234)}},
		{"1234", "%u", []any{uint(1234)}},
		{"1234abcd", "%x", []any{uint(0x1234abcd)}},
		{"1234ABCD", "%X", []any{uint(0x1234abcd)}},

		{"", "%.0b", []any{uint(0)}},
		{"", "%.0o", []any{uint(0)}},
		{"", "%.0u", []any{uint(0)}},
		{"", "%.0x", []any{uint(0)}},
		{"", "%.0X", []any{uint(0)}},

		{"001101", "%.6b", []any{uint(13)}},
		{"001234", "%.6o", []any{uint(0o1234)}},
		{"001234", "%.6u", []any{uint(1234)}},
		{"001234abcd", "%.10x", []any{uint(0x1234abcd)}},
		{"001234ABCD", "%.10X", []any{uint(0x1234abcd)}},

		{"  1101", "%6b", []any{uint(13)}},
		{"1101", "%2b", []any{uint(13)}},
		{"  1234", "%6u", []any{uint(1234)}},
		{"1234", "%02u", []any{uint(1234)}},
		{"  1234abcd", "%10x", []any{uint(0x1234abcd)}},

		{"1101  ", "%-6b", []any{uint(13)}},
		{"1234abcd  ", "%-10x", []any{uint(0x1234abcd)}},

		{"001101", "%06b", []any{uint(13)}},
		{"1101  ", "%-06b", []any{uint(13)}},
		{"  1101", "%06.1b", []any{uint(13)}},
		{"001234abcd", "%010x", []any{uint(0x1234abcd)}},
		{"1234abcd  ", "%-010x", []any{uint(0x1234abcd)}},
		{"  1234abcd", "%010.1x", []any{uint(0x1234abcd)}},

		// Alternate form: no prefix on zero unless '!' forces it.
		{"0", "%#b", []any{uint(0)}},
		{"0", "%#o", []any{uint(0)}},
		{"0", "%#x", []any{uint(0)}},
		{"0", "%#X", []any{uint(0)}},
		{"0b1101", "%#b", []any{uint(13)}},
		{"01234", "%#o", []any{uint(0o1234)}},
		{"0x1234abcd", "%#x", []any{uint(0x1234abcd)}},
		{"0X1234ABCD", "%#X", []any{uint(0x1234abcd)}},

		{"0b0", "%!#b", []any{uint(0)}},
		{"0", "%!#o", []any{uint(0)}},
		{"0x0", "%!#x", []any{uint(0)}},
		{"0x0", "%!#X", []any{uint(0)}},
		{"0x1234abcd", "%!#x", []any{uint(0x1234abcd)}},
		{"0x1234ABCD", "%!#X", []any{uint(0x1234abcd)}},

		{"1101", "%!b", []any{uint(13)}},
		{"1234abcd", "%!x", []any{uint(0x1234abcd)}},
		{"1234ABCD", "%!X", []any{uint(0x1234abcd)}},

		{"  0b1101", "%#8b", []any{uint(13)}},
		{"   01234", "%#8o", []any{uint(0o1234)}},
		{"  0x1234abcd", "%#12x", []any{uint(0x1234abcd)}},

		{"0b00001101", "%#.8b", []any{uint(13)}},
		{"000001234", "%#.8o", []any{uint(0o1234)}},
		{"0x00001234abcd", "%#.12x", []any{uint(0x1234abcd)}},

		{"  0b00001101", "%#12.8b", []any{uint(13)}},
		{"   000001234", "%#12.8o", []any{uint(0o1234)}},
		{"  0x00001234abcd", "%#16.12x", []any{uint(0x1234abcd)}},
		{"0b00001101  ", "%-#12.8b", []any{uint(13)}},
		{"0x00001234abcd  ", "%-#16.12x", []any{uint(0x1234abcd)}},

		{"  ABCD  ", "%^8X", []any{uint(0xABCD)}},
		{" 0XABCD ", "%^#8X", []any{uint(0xABCD)}},
		{" 0X0000ABCD ", "%^#12.8X", []any{uint(0xABCD)}},

		{"1101", "%+ b", []any{uint(13)}},
		{"1234", "%+ o", []any{uint(0o1234)}},
		{"1234abcd", "%+ x", []any{uint(0x1234abcd)}},

		{"11", "%:3u", []any{uint(4)}},
		{"g", "%:17u", []any{uint(16)}},
		{"G", "%:17U", []any{uint(16)}},
		{"XYZ", "%:36U", []any{uint(44027)}},
		{" 00XYZ", "%6.5:36U", []any{uint(44027)}},

		{"123456789123456789", "%llu", []any{uint64(123456789123456789)}},
		{"1B69B4BACD05F15", "%llX", []any{uint64(123456789123456789)}},
	})
}

func TestFloat(t *testing.T) {
	inf := math.Inf(1)

	runFmtTests(t, []fmtTest{
		// e and E.
		{"inf", "%e", []any{inf}},
		{"+inf", "%+e", []any{inf}},
		{"-inf", "%e", []any{-inf}},
		{"INF", "%E", []any{inf}},
		{"nan", "%e", []any{math.NaN()}},
		{"NAN", "%E", []any{math.NaN()}},

		{"1.0e+00", "%.1e", []any{1.0}},
		{"+1.0e+00", "%+.1e", []any{1.0}},
		{"1.0e-01", "%.1e", []any{0.1}},
		{"1.1e+00", "%.1e", []any{1.1}},
		{"1.000000e+00", "%e", []any{1.0}},
		{"1.000000E+00", "%E", []any{1.0}},
		{"1.234567e+123", "%e", []any{1.234567e+123}},
		{"-000001.0e+00", "%013.1e", []any{-1.0}},
		{"     -1.0e+00", "% 13.1e", []any{-1.0}},
		{"-1.0e+00     ", "%-13.1e", []any{-1.0}},
		{"   -1.0e+00  ", "%^13.1e", []any{-1.0}},
		{"1e+00", "%.0e", []any{1.0}},
		{"1.e+00", "%#.0e", []any{1.0}},

		// f and F.
		{"0.000000", "%f", []any{0.0}},
		{"0", "%.0f", []any{0.0}},
		{"1.00", "%.2f", []any{float32(0.999)}},
		{"1.0", "%.1f", []any{1.0}},
		{"0.1", "%.1f", []any{0.1}},
		{"10.010", "%.3f", []any{10.010}},
		{"+1.0", "%+.1f", []any{1.0}},
		{" 1.0", "% .1f", []any{1.0}},
		{"-1.0", "%.1f", []any{-1.0}},
		{"   1.0", "%6.1f", []any{1.0}},
		{"1.0   ", "%-6.1f", []any{1.0}},
		{"  1.0 ", "%^6.1f", []any{1.0}},
		{"+001.0", "%+06.1f", []any{1.0}},
		{"001.0 ", "%^06.1f", []any{1.0}},
		{"1234.568", "%.3f", []any{1234.5678}},
		{"12.4", "%.1f", []any{12.449}},
		{"12.45", "%.2f", []any{12.449}},
		{"1200.00", "%.2f", []any{1200.0}},
		{"0.000100", "%.6f", []any{0.0001}},
		{"0.000000", "%.6f", []any{0.0000001}},
		{"0.0000001000", "%.10f", []any{0.0000001}},
		{"1234567800000006" + strings.Repeat("0", 288) + "." + strings.Repeat("0", 100),
			"%.100f", []any{1234.5678e300}},

		{"inf", "%f", []any{inf}},
		{"-inf", "%f", []any{-inf}},
		{"+inf", "%+f", []any{inf}},
		{" inf", "% f", []any{inf}},
		{"INF", "%F", []any{inf}},
		{"   inf", "%6f", []any{inf}},
		{"inf   ", "%-6f", []any{inf}},
		{"  inf ", "%^6f", []any{inf}},
		{" inf  ", "%-^6f", []any{inf}},
		{" -inf ", "%^6f", []any{-inf}},

		// g and G.
		{"1.2", "%.0g", []any{1.2345}},
		{"1.234500e-05", "%g", []any{1.2345e-5}},
		{"0.000123", "%g", []any{1.2345e-4}},
		{"12.35", "%.2g", []any{12.345}},
		{"1.23e+02", "%.2g", []any{123.45}},
		{"1.23e+03", "%.2g", []any{1234.5}},
		{"1.2300", "%#.4g", []any{1.23}},
		{"1.23", "%.4g", []any{1.23}},
		{"1", "%.1g", []any{1.01}},
		{"1.01", "%.2g", []any{1.01}},
		{"123", "%.6g", []any{123.0}},
		{"123.000000", "%#.6g", []any{123.0}},
		{"123.4", "%.6g", []any{123.4}},

		// Rounding.
		{"1", "%1.f", []any{float32(0.99)}},
		{"1.0e+00", "%.1e", []any{float32(0.999)}},

		// Denormals.
		{"4.94e-324", "%.2e", []any{math.SmallestNonzeroFloat64}},
		{"-4.94e-324", "%.2e", []any{-math.SmallestNonzeroFloat64}},
		{"2.22e-308", "%.2e", []any{(1.0 - math.Pow(2, -52)) * math.Pow(2, -1022)}},
	})
}

func TestFloatMixed(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"Characters: a A \n", "Characters: %c %c \n", []any{'a', 65}},
		{"Decimals: 1977 650000\n", "Decimals: %d %ld\n", []any{1977, int64(650000)}},
		{"Preceding with blanks:       1977 \n", "Preceding with blanks: %10d \n", []any{1977}},
		{"Preceding with zeros: 0000001977 \n", "Preceding with zeros: %010d \n", []any{1977}},
		{"Some different radices: 100 64 144 0x64 0144 \n",
			"Some different radices: %d %x %o %#x %#o \n",
			[]any{100, uint(100), uint(100), uint(100), uint(100)}},
		{"floats: 3.14 +3e+00 3.141600E+00 \n", "floats: %4.2f %+.0e %E \n",
			[]any{3.1416, 3.1416, 3.1416}},
		{"Width trick:    10 \n", "Width trick: %*d \n", []any{5, 10}},
		{"A string \n", "%s \n", []any{"A string"}},
	})
}

func TestFloatEngineering(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"12.345e+03", "%!.3e", []any{12345.0}},
		{"12.345e-03", "%!.3e", []any{0.012345}},

		{"123.45", "%!.2f", []any{123.45}},
		{"1.2345", "%!.4f", []any{1.2345}},
		{"12.345 k", "%!.3f", []any{12345.0}},
		{"12.345 m", "%!.3f", []any{0.012345}},
		{"1234.5 Y", "%!.1f", []any{1.2345e+27}},
		{"123.45 Y", "%!.2f", []any{123.45e+24}},
		{"0.12345 y", "%!.5f", []any{0.12345e-24}},
		{"1.2345 y", "%!.4f", []any{1.2345e-24}},
	})
}

func TestHexFloat(t *testing.T) {
	inf := math.Inf(1)

	runFmtTests(t, []fmtTest{
		{"inf", "%a", []any{inf}},
		{"+inf", "%+a", []any{inf}},
		{"-inf", "%a", []any{-inf}},
		{"INF", "%A", []any{inf}},

		{"0x1p+0", "%a", []any{1.0}},
		{"0X1P+0", "%A", []any{1.0}},
		{"-0x1p+0", "%a", []any{-1.0}},

		{"0x2.0p+0", "%.1a", []any{1.998046875}},
		{"-0x2.0p+0", "%.1a", []any{-1.998046875}},

		{"0x1.de18f06716de4p+408", "%a", []any{1.234567e+123}},

		{"-0x00001.0p+0", "%013.1a", []any{-1.0}},
		{"    -0x1.0p+0", "% 13.1a", []any{-1.0}},
		{"-0x1.0p+0    ", "%-13.1a", []any{-1.0}},
		{"    +0x1.0p+0", "%+13.1a", []any{1.0}},
		{"   0x1.0p+0  ", "%^13.1a", []any{1.0}},

		{"0x1p+0", "%.0a", []any{1.0}},
		{"0x1.p+0", "%#.0a", []any{1.0}},
	})
}

func TestFixedPoint(t *testing.T) {
	s4p4 := 1<<4 | 8
	s4p8 := 1<<8 | 128

	runFmtTests(t, []fmtTest{
		{"0.000000", "%{4.4}k", []any{0}},

		{"1.500000", "%{4.4}k", []any{s4p4}},
		{"1.500000", "%{8.4}k", []any{s4p4}},
		{"1.500000", "%{4.8}k", []any{s4p8}},

		{"-1.500000", "%{4.4}k", []any{-s4p4}},
		{"-1.500000", "%{8.4}k", []any{-s4p4}},
		{"-1.500000", "%{4.8}k", []any{-s4p8}},

		{"  1.50  ", "%^8.2{4.8}k", []any{s4p8}},
	})

	runFailTests(t, []fmtTest{
		{"", "%{0.0}k", []any{0}},
		{"", "%{4.4k", []any{0}},
	})
}

func TestAsterisk(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"001234", "%.*d", []any{6, 1234}},
		{"1234", "%.*d", []any{-6, 1234}},
		{"  1234", "%*d", []any{6, 1234}},
		{"1234  ", "%*d", []any{-6, 1234}},
		{"  001234", "%*.*d", []any{8, 6, 1234}},

		// Grouping star widths resolve after the value argument.
		{"1,2_34", "%[,*_*]d", []any{1234, 2, 1}},
		{"1234", "%[_1,*]d", []any{1234, -1}},

		{strings.Repeat("0", 500), "%.500d", []any{0}},
		{strings.Repeat(" ", 499) + "0", "%500d", []any{0}},
	})

	runFailTests(t, []fmtTest{
		{"", "%.501d", []any{0}},
		{"", "%501d", []any{0}},
		{"", "%*d", []any{501, 0}},
		{"", "%.*d", []any{501, 0}},
	})
}

func TestContinuation(t *testing.T) {
	runFmtTests(t, []fmtTest{
		{"hello world", "hello %", []any{"world"}},
		{"hello old world", "hello %", []any{"old %", "world"}},

		{"One: 1,Two: 2,Three: 3", "One: %d,%", []any{1,
			"Two: %c,%", '2',
			"Three: %s", "3"}},

		// Everything parsed before the break is discarded.
		{"hello world", "hello % +-!^12.24l", []any{"world"}},

		// '#' switches the continuation to a ByteSource.
		{"hello brave new world", "hello %#",
			[]any{MemBytes("brave %s %"), "new", "world"}},
	})

	runFailTests(t, []fmtTest{
		{"", "hello %", nil},
		{"", "hello %#", []any{"not a byte source"}},
	})
}

func TestUnknownConversion(t *testing.T) {
	runFailTests(t, []fmtTest{
		{"", "%q", []any{1}},
		{"", "%Lf", []any{1.0}},
		{"", "%La", []any{1.0}},
	})
}

func TestSprintf(t *testing.T) {
	if got := Sprintf("x=%d y=%s", 42, "ok"); got != "x=42 y=ok" {
		t.Fatalf("Sprintf = %q", got)
	}
	// Output before the failure point is kept.
	if got := Sprintf("keep %q"); got != "keep " {
		t.Fatalf("Sprintf partial = %q", got)
	}
}

func TestBprintf(t *testing.T) {
	var buf [16]byte
	n, err := Bprintf(buf[:], "%6.1f", 1.0)
	if err != nil {
		t.Fatalf("Bprintf: %v", err)
	}
	if got := string(buf[:n]); got != "   1.0" {
		t.Fatalf("Bprintf = %q", got)
	}

	var tiny [4]byte
	if _, err := Bprintf(tiny[:], "too long for the buffer"); err != ErrBadFormat {
		t.Fatalf("Bprintf overflow: err = %v, want ErrBadFormat", err)
	}
}

func TestFormatBytes(t *testing.T) {
	var b strings.Builder
	n, err := FormatBytes(&b, MemBytes("val=%d"), 7)
	if err != nil {
		t.Fatalf("FormatBytes: %v", err)
	}
	if b.String() != "val=7" || n != 5 {
		t.Fatalf("FormatBytes = %q, %d", b.String(), n)
	}
}

func TestFormatBytesNil(t *testing.T) {
	var b strings.Builder
	n, err := FormatBytes(&b, nil)
	if err != ErrBadFormat || n != 0 {
		t.Fatalf("FormatBytes(nil) = %d, %v; want 0, %v", n, err, ErrBadFormat)
	}
	if b.String() != "" {
		t.Fatalf("FormatBytes(nil) emitted %q", b.String())
	}
}

func TestConversionAllocs(t *testing.T) {
	var out [128]byte
	w := &limitWriter{buf: out[:]}
	f := &formatter{w: w}
	args := []any{-1234567, uint(48879), 3.25, "on"}
	const want = "v=-1234567 x=0xbeef t=3.25 s=on"

	allocs := testing.AllocsPerRun(200, func() {
		w.n = 0
		f.n = 0
		if err := f.run(segment{str: "v=%08d x=%#x t=%.2f s=%s"}, &argReader{args: args}); err != nil {
			t.Fatalf("run: %v", err)
		}
	})
	if got := string(out[:w.n]); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if allocs != 0 {
		t.Fatalf("conversion path allocated %v times per run", allocs)
	}
}

func TestDiv10(t *testing.T) {
	vals := []uint64{0, 1, 9, 10, 11, 99, 100, 12345678901234567,
		math.MaxUint64, math.MaxUint64 - 1, 1 << 63}
	for _, v := range vals {
		q, r := div10(v)
		if q != v/10 || r != v%10 {
			t.Fatalf("div10(%d) = %d, %d; want %d, %d", v, q, r, v/10, v%10)
		}
	}
}
