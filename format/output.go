package format

import "io"

// Padding source strings. Pad runs are emitted in slices of these so a
// 500-wide field never needs a 500-byte scratch buffer.
const (
	padRun = 16
	spaces = "                "
	zeroes = "0000000000000000"
)

// formatter carries the sink and the running character count for one
// Format call. All other state is per directive. The scratch buffers
// live here rather than on conversion stack frames so that slices of
// them handed to the sink do not force a heap allocation per directive.
type formatter struct {
	w       io.Writer
	n       int
	scratch [64]byte
	b1      [1]byte
}

func (f *formatter) emit(s string) error {
	if len(s) == 0 {
		return nil
	}
	if _, err := io.WriteString(f.w, s); err != nil {
		return ErrBadFormat
	}
	f.n += len(s)
	return nil
}

func (f *formatter) emitBytes(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := f.w.Write(b); err != nil {
		return ErrBadFormat
	}
	f.n += len(b)
	return nil
}

func (f *formatter) emitByte(c byte) error {
	f.b1[0] = c
	if _, err := f.w.Write(f.b1[:]); err != nil {
		return ErrBadFormat
	}
	f.n++
	return nil
}

func (f *formatter) pad(pat string, n int) error {
	for n > 0 {
		j := n
		if j > padRun {
			j = padRun
		}
		if err := f.emit(pat[:j]); err != nil {
			return err
		}
		n -= j
	}
	return nil
}

// genOut emits one field: left spaces, prefix, zero fill, body, right
// spaces. Conversions compose their output from calls to this.
func (f *formatter) genOut(ps1 int, pfx string, pz int, body string, ps2 int) error {
	if err := f.pad(spaces, ps1); err != nil {
		return err
	}
	if err := f.emit(pfx); err != nil {
		return err
	}
	if err := f.pad(zeroes, pz); err != nil {
		return err
	}
	if err := f.emit(body); err != nil {
		return err
	}
	return f.pad(spaces, ps2)
}

// genOutBytes is genOut for a body assembled in a scratch buffer,
// written without converting to a string.
func (f *formatter) genOutBytes(ps1 int, pfx string, pz int, body []byte, ps2 int) error {
	if err := f.pad(spaces, ps1); err != nil {
		return err
	}
	if err := f.emit(pfx); err != nil {
		return err
	}
	if err := f.pad(zeroes, pz); err != nil {
		return err
	}
	if err := f.emitBytes(body); err != nil {
		return err
	}
	return f.pad(spaces, ps2)
}

// calcSpacePadding splits the space padding for a field of the given
// content length. Left-justify puts it all on the right; the centre flag
// splits it with any odd space going left, or right if left-justify is
// also set.
func calcSpacePadding(flags uint, width, length int) (ps1, ps2 int) {
	pad := 0
	if length < width {
		pad = width - length
	}
	if flags&fMinus != 0 {
		ps2 = pad
	} else {
		ps1 = pad
	}
	if flags&fCaret != 0 {
		if flags&fMinus != 0 {
			ps1 = pad / 2
		} else {
			ps1 = pad - pad/2
		}
		ps2 = pad - ps1
	}
	return ps1, ps2
}
