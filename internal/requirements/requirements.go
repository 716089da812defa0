// Package requirements parses pip requirements files. The parser covers
// the subset the data-entry workflow uses: one requirement per line,
// optional version specifiers, extras, environment markers, comments,
// and line continuations. Option lines (-r, --index-url, ...) are
// skipped; pip itself receives the file unmodified, so the parsed view
// only drives plan display and accounting.
package requirements

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Requirement is a single parsed requirement line.
type Requirement struct {
	// Name is the PEP 503 normalized distribution name.
	Name string

	// Specifier is the raw version specifier, e.g. "==2.7.3" or ">=4.8,<5".
	Specifier string

	// Raw is the original line with comments stripped.
	Raw string
}

// specifierOperators are checked in order; two-character operators first
// so that ">=" is not cut at ">".
var specifierOperators = []string{"===", "==", ">=", "<=", "~=", "!=", ">", "<"}

// ParseFile reads and parses the requirements file at path.
func ParseFile(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requirements file: %w", err)
	}
	defer f.Close()
	reqs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return reqs, nil
}

// Parse reads requirements from r, one logical line at a time.
func Parse(r io.Reader) ([]Requirement, error) {
	var reqs []Requirement

	scanner := bufio.NewScanner(r)
	var continued strings.Builder
	for scanner.Scan() {
		line := scanner.Text()

		// Join backslash continuations into one logical line.
		if trimmed := strings.TrimRight(line, " \t"); strings.HasSuffix(trimmed, "\\") {
			continued.WriteString(strings.TrimSuffix(trimmed, "\\"))
			continue
		}
		if continued.Len() > 0 {
			continued.WriteString(line)
			line = continued.String()
			continued.Reset()
		}

		req, ok := parseLine(line)
		if ok {
			reqs = append(reqs, req)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read requirements: %w", err)
	}

	// A backslash on the final line leaves a joined fragment pending;
	// parse it as its own logical line instead of dropping it.
	if continued.Len() > 0 {
		if req, ok := parseLine(continued.String()); ok {
			reqs = append(reqs, req)
		}
	}

	return reqs, nil
}

// parseLine parses one logical requirement line. The second return value
// is false for blank lines, comments, and option lines.
func parseLine(line string) (Requirement, bool) {
	// Strip comments. A '#' inside a URL fragment is not a concern for
	// plain requirement lines.
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "-") {
		return Requirement{}, false
	}

	raw := line

	// Environment markers follow a semicolon.
	if i := strings.Index(line, ";"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	name := line
	specifier := ""
	for i := 0; i < len(line); i++ {
		rest := line[i:]
		for _, op := range specifierOperators {
			if strings.HasPrefix(rest, op) {
				name = strings.TrimSpace(line[:i])
				specifier = strings.TrimSpace(line[i:])
				goto done
			}
		}
	}
done:

	// Extras like "paddleocr[full]" do not affect the distribution name.
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	name = NormalizeName(name)
	if name == "" {
		return Requirement{}, false
	}

	return Requirement{Name: name, Specifier: specifier, Raw: raw}, true
}

// NormalizeName applies PEP 503 normalization: lowercase, with runs of
// '-', '_' and '.' collapsed to a single '-'.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	prevSep := false
	for _, r := range name {
		if r == '-' || r == '_' || r == '.' {
			if !prevSep {
				b.WriteByte('-')
			}
			prevSep = true
			continue
		}
		prevSep = false
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), "-")
}

// Names returns the requirement names in file order.
func Names(reqs []Requirement) []string {
	names := make([]string, len(reqs))
	for i, r := range reqs {
		names[i] = r.Name
	}
	return names
}
