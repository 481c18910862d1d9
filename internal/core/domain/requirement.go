package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Operator is a version comparison operator in a requirement specifier.
type Operator string

const (
	OpArbitrary  Operator = "==="
	OpCompatible Operator = "~="
	OpEqual      Operator = "=="
	OpNotEqual   Operator = "!="
	OpLessEq     Operator = "<="
	OpGreaterEq  Operator = ">="
	OpLess       Operator = "<"
	OpGreater    Operator = ">"
)

// operators is ordered longest first so that prefix matching is unambiguous.
var operators = []Operator{
	OpArbitrary, OpCompatible, OpEqual, OpNotEqual, OpLessEq, OpGreaterEq, OpLess, OpGreater,
}

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?`)
	versionPattern = regexp.MustCompile(`^[A-Za-z0-9.*+!_-]+$`)
)

// Specifier is a single version constraint such as ">=6.6".
type Specifier struct {
	Op      Operator
	Version string
}

// String renders the specifier without whitespace.
func (s Specifier) String() string {
	return string(s.Op) + s.Version
}

// Requirement is one package entry of a dependency manifest.
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers []Specifier
	// Marker is the environment marker after ';', kept verbatim.
	Marker string
}

// String renders the requirement in canonical manifest form.
func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(r.Extras, ","))
		b.WriteString("]")
	}
	for i, s := range r.Specifiers {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(s.String())
	}
	if r.Marker != "" {
		b.WriteString("; ")
		b.WriteString(r.Marker)
	}
	return b.String()
}

// NormalizedName returns the name lowercased with runs of '-', '_' and '.' folded to '-'.
func (r Requirement) NormalizedName() string {
	var b strings.Builder
	prevSep := false
	for _, c := range strings.ToLower(r.Name) {
		if c == '-' || c == '_' || c == '.' {
			if !prevSep {
				b.WriteByte('-')
			}
			prevSep = true
			continue
		}
		prevSep = false
		b.WriteRune(c)
	}
	return b.String()
}

// ParseRequirement parses a single requirement line like "PySide6>=6.6,<7".
// Inline comments are stripped. Lines holding pip options, URLs or paths are rejected.
func ParseRequirement(line string) (Requirement, error) {
	text := stripComment(line)
	if text == "" {
		return Requirement{}, invalidRequirement(line, "empty requirement")
	}

	var req Requirement
	if spec, marker, ok := strings.Cut(text, ";"); ok {
		text = strings.TrimSpace(spec)
		req.Marker = strings.TrimSpace(marker)
	}

	name := namePattern.FindString(text)
	if name == "" {
		return Requirement{}, invalidRequirement(line, "missing package name")
	}
	req.Name = name
	rest := strings.TrimSpace(text[len(name):])

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Requirement{}, invalidRequirement(line, "unterminated extras")
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				continue
			}
			if namePattern.FindString(extra) != extra {
				return Requirement{}, invalidRequirement(line, "invalid extra "+extra)
			}
			req.Extras = append(req.Extras, extra)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	if rest == "" {
		return req, nil
	}

	for _, part := range strings.Split(rest, ",") {
		spec, err := parseSpecifier(strings.TrimSpace(part))
		if err != nil {
			return Requirement{}, invalidRequirement(line, err.Error())
		}
		req.Specifiers = append(req.Specifiers, spec)
	}

	return req, nil
}

// MustParseRequirement is like ParseRequirement but panics on error.
// It is meant for package-level defaults.
func MustParseRequirement(line string) Requirement {
	req, err := ParseRequirement(line)
	if err != nil {
		panic(err)
	}
	return req
}

func parseSpecifier(text string) (Specifier, error) {
	for _, op := range operators {
		if !strings.HasPrefix(text, string(op)) {
			continue
		}
		version := strings.TrimSpace(text[len(op):])
		if !versionPattern.MatchString(version) {
			return Specifier{}, zerr.With(zerr.New("invalid version"), "specifier", text)
		}
		return Specifier{Op: op, Version: version}, nil
	}
	return Specifier{}, zerr.With(zerr.New("missing comparison operator"), "specifier", text)
}

func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func invalidRequirement(line, reason string) error {
	return zerr.With(zerr.Wrap(ErrInvalidRequirement, reason), "line", line)
}
