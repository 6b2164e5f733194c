// Command fmtcli drives the format engine from the terminal. Each
// input line is a format string followed by its arguments:
//
//	$ fmtcli
//	"%8.2f|%[,3]d|%#x" 3.14159 1234567 48879
//	    3.14|1,234,567|0xbeef  (24)
//
// Lines are tokenized with shell quoting rules, so format strings and
// string arguments may contain spaces. Numeric-looking tokens become
// numbers, "null" becomes a nil argument, everything else stays a
// string.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"format-go/format"
)

func parseArg(tok string) any {
	if tok == "null" {
		return nil
	}
	if v, err := strconv.ParseInt(tok, 0, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseUint(tok, 0, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(tok, 64); err == nil {
		return v
	}
	if strings.HasPrefix(tok, "'") && len(tok) >= 2 {
		return rune(tok[1])
	}
	return tok
}

func runLine(line string) error {
	toks, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		return nil
	}

	args := make([]any, 0, len(toks)-1)
	for _, tok := range toks[1:] {
		args = append(args, parseArg(tok))
	}

	var b strings.Builder
	n, err := format.Format(&b, toks[0], args...)
	if err != nil {
		return fmt.Errorf("%s (emitted %q)", err, b.String())
	}
	fmt.Printf("%s  (%d)\n", b.String(), n)
	return nil
}

func main() {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if err := runLine(sc.Text()); err != nil {
			fmt.Fprintln(os.Stderr, "fmtcli:", err)
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "fmtcli:", err)
		os.Exit(1)
	}
}
