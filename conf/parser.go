package conf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// ParseFile reads and parses a configuration file from fsys.
func ParseFile(fsys afero.Fs, name string) (*Directive, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return root, nil
}

// Parse reads an Apache-style configuration and returns the root of the
// directive tree. The root itself is a synthetic block with no name whose
// children are the top-level directives.
//
// Supported syntax: one directive per line, `#` comment lines, double
// quotes around arguments containing whitespace, trailing-backslash line
// continuation, and `<Block arg>` ... `</Block>` containers.
func Parse(r io.Reader) (*Directive, error) {
	root := &Directive{block: true}
	current := root

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		startLine := lineNo
		line := strings.TrimSpace(scanner.Text())

		for strings.HasSuffix(line, "\\") && scanner.Scan() {
			lineNo++
			line = strings.TrimSuffix(line, "\\") + " " + strings.TrimSpace(scanner.Text())
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "</"):
			name := strings.TrimSuffix(strings.TrimPrefix(line, "</"), ">")
			if current == root || !current.Is(name) {
				return nil, fmt.Errorf("line %d: unexpected </%s>", startLine, name)
			}
			current = current.Parent

		case strings.HasPrefix(line, "<"):
			if !strings.HasSuffix(line, ">") {
				return nil, fmt.Errorf("line %d: unterminated block header %q", startLine, line)
			}
			fields, err := splitArgs(strings.TrimSuffix(strings.TrimPrefix(line, "<"), ">"))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", startLine, err)
			}
			if len(fields) == 0 {
				return nil, fmt.Errorf("line %d: empty block header", startLine)
			}
			block := &Directive{
				Name:   fields[0],
				Args:   fields[1:],
				Line:   startLine,
				Parent: current,
				block:  true,
			}
			current.Children = append(current.Children, block)
			current = block

		default:
			fields, err := splitArgs(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", startLine, err)
			}
			current.Children = append(current.Children, &Directive{
				Name:   fields[0],
				Args:   fields[1:],
				Line:   startLine,
				Parent: current,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != root {
		return nil, fmt.Errorf("line %d: unclosed <%s> block", current.Line, current.Name)
	}
	return root, nil
}

// splitArgs tokenizes a directive line, honoring double-quoted arguments.
func splitArgs(s string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inQuote := false
	pending := false

	flush := func() {
		if pending {
			args = append(args, cur.String())
			cur.Reset()
			pending = false
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			pending = true
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unbalanced quote in %q", s)
	}
	flush()
	return args, nil
}
