package format

// Digit grouping. A grouping spec is a sequence of (separator, width)
// pairs, e.g. ",3" or ",3.2" or "_2_2", optionally prefixed with '-' to
// stop once the pairs run out instead of repeating the first pair. A
// width may be '*', pulled from the argument list when the pair is first
// applied. Groups are counted from the least significant digit, pairs
// consumed last first.

type groupPair struct {
	sep      byte
	width    int
	star     bool
	resolved bool
}

func parseGroupSpec(raw string) (pairs []groupPair, noRepeat bool) {
	i := 0
	if i < len(raw) && raw[i] == '-' {
		noRepeat = true
		i++
	}
	for i < len(raw) {
		p := groupPair{sep: raw[i]}
		i++
		if i < len(raw) && raw[i] == '*' {
			p.star = true
			i++
		} else {
			for i < len(raw) && isDigit(raw[i]) && p.width <= MaxPrec {
				p.width = p.width*10 + int(raw[i]-'0')
				i++
			}
		}
		pairs = append(pairs, p)
	}
	return pairs, noRepeat
}

// groupRun inserts separators into a digit run. A zero or negative group
// width stops grouping silently; whatever separators were already placed
// stay. Star widths are resolved once, in application order.
func groupRun(run []byte, raw string, ar *argReader) ([]byte, error) {
	pairs, noRepeat := parseGroupSpec(raw)
	if len(pairs) == 0 {
		return run, nil
	}

	resolve := func(p *groupPair) (int, error) {
		if p.star && !p.resolved {
			v, err := ar.takeInt()
			if err != nil {
				return 0, err
			}
			p.width = v
		}
		p.resolved = true
		return p.width, nil
	}

	idx := len(pairs) - 1
	w, err := resolve(&pairs[idx])
	if err != nil {
		return nil, err
	}
	if w <= 0 {
		return run, nil
	}

	out := make([]byte, 0, 2*len(run))
	rem := w
	stopped := false
	for i := len(run) - 1; i >= 0; i-- {
		out = append(out, run[i])
		rem--
		if rem == 0 && i > 0 && !stopped {
			out = append(out, pairs[idx].sep)
			if idx > 0 {
				idx--
			} else if noRepeat {
				stopped = true
			}
			if !stopped {
				w, err = resolve(&pairs[idx])
				if err != nil {
					return nil, err
				}
				if w <= 0 {
					stopped = true
				} else {
					rem = w
				}
			}
			if stopped {
				rem = len(run) + 1
			}
		}
	}

	// Built least significant first; flip into place.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out, nil
}
