package domain

import (
	"strings"
)

// DefaultRequirementLines is the manifest synthesized when none exists:
// the GUI toolkit binding, the PDF library and the test framework.
var DefaultRequirementLines = []string{
	"PySide6>=6.6,<7",
	"PyMuPDF>=1.23",
	"pytest>=7.4",
}

// ManifestLine is a single line of a dependency manifest.
// Requirement is nil for blank lines, comments and lines muleboot does not
// interpret (pip options, URLs, local paths).
type ManifestLine struct {
	Raw         string
	Requirement *Requirement
}

// Manifest is a parsed dependency manifest. It keeps every line verbatim so
// that rendering it back yields the original bytes.
type Manifest struct {
	Lines []ManifestLine
}

// ParseManifest parses manifest content. It never fails: lines that are not
// requirements are kept as raw lines.
func ParseManifest(data []byte) *Manifest {
	m := &Manifest{}
	if len(data) == 0 {
		return m
	}
	for _, raw := range strings.Split(string(data), "\n") {
		line := ManifestLine{Raw: raw}
		if text := stripComment(raw); text != "" {
			if req, err := ParseRequirement(text); err == nil {
				line.Requirement = &req
			}
		}
		m.Lines = append(m.Lines, line)
	}
	return m
}

// NewManifest builds a manifest with one canonical line per requirement and a
// trailing newline.
func NewManifest(reqs []Requirement) *Manifest {
	m := &Manifest{Lines: make([]ManifestLine, 0, len(reqs)+1)}
	for i := range reqs {
		req := reqs[i]
		m.Lines = append(m.Lines, ManifestLine{Raw: req.String(), Requirement: &req})
	}
	m.Lines = append(m.Lines, ManifestLine{Raw: ""})
	return m
}

// DefaultRequirements returns the parsed default requirement set.
func DefaultRequirements() []Requirement {
	reqs := make([]Requirement, 0, len(DefaultRequirementLines))
	for _, line := range DefaultRequirementLines {
		reqs = append(reqs, MustParseRequirement(line))
	}
	return reqs
}

// DefaultManifest returns the manifest written when none exists.
func DefaultManifest() *Manifest {
	return NewManifest(DefaultRequirements())
}

// Requirements returns the requirement entries in file order.
func (m *Manifest) Requirements() []Requirement {
	var reqs []Requirement
	for _, line := range m.Lines {
		if line.Requirement != nil {
			reqs = append(reqs, *line.Requirement)
		}
	}
	return reqs
}

// Duplicates returns the names of packages listed more than once, compared by
// normalized name, in order of first appearance.
func (m *Manifest) Duplicates() []string {
	seen := make(map[string]int)
	var dups []string
	for _, req := range m.Requirements() {
		name := req.NormalizedName()
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, req.Name)
		}
	}
	return dups
}

// Unrecognized returns the non-blank, non-comment lines that are not requirements.
func (m *Manifest) Unrecognized() []string {
	var lines []string
	for _, line := range m.Lines {
		if line.Requirement == nil && stripComment(line.Raw) != "" {
			lines = append(lines, line.Raw)
		}
	}
	return lines
}

// Bytes renders the manifest.
func (m *Manifest) Bytes() []byte {
	raws := make([]string, len(m.Lines))
	for i, line := range m.Lines {
		raws[i] = line.Raw
	}
	return []byte(strings.Join(raws, "\n"))
}
