// Package input expands command arguments that name a list source: "-"
// reads item references from stdin, "@path" reads them from a file.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrStdinReused is returned when "-" appears more than once.
var ErrStdinReused = errors.New("stdin can only be read once")

// ExpandArgs replaces "-" and "@file" arguments with the lines they contain.
// Blank lines and lines starting with # are skipped. Duplicates are kept
// once, in first-seen order.
func ExpandArgs(args []string, stdin io.Reader) ([]string, error) {
	var (
		out       []string
		seen      = make(map[string]bool)
		stdinUsed bool
	)
	add := func(vals ...string) {
		for _, v := range vals {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}

	for _, a := range args {
		switch {
		case a == "-":
			if stdinUsed {
				return nil, ErrStdinReused
			}
			stdinUsed = true
			lines, err := ReadLines(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			add(lines...)
		case strings.HasPrefix(a, "@") && len(a) > 1:
			path := a[1:]
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			lines, err := ReadLines(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			add(lines...)
		default:
			add(strings.TrimSpace(a))
		}
	}
	return out, nil
}

// ReadLines reads non-empty, non-comment lines from r.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
