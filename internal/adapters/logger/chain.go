package logger

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager describes an error that can report its own message without the chain.
type messager interface {
	Message() string
}

// metadataCarrier is implemented by zerr.Error.
type metadataCarrier interface {
	Metadata() map[string]any
}

// errorEntry is one link of an error chain.
type errorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the cause chain of err. Links without a message of
// their own (zerr.With on a plain error) contribute their metadata to the next
// link that has one.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var pending map[string]any

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		var meta map[string]any
		if c, ok := current.(metadataCarrier); ok {
			meta = c.Metadata()
		}

		if m.Message() == "" {
			pending = merge(pending, meta)
		} else {
			entries = append(entries, errorEntry{Message: m.Message(), Metadata: merge(meta, pending)})
			pending = nil
		}

		current = cause(current)
	}

	if len(pending) > 0 && len(entries) > 0 {
		last := &entries[len(entries)-1]
		last.Metadata = merge(last.Metadata, pending)
	}
	return entries
}

// cause returns the next link of the chain. For errors joining several
// errors the last one is the cause; a single joined error is a classifier
// that is already part of the message.
func cause(err error) error {
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return u.Unwrap()
	case interface{ Unwrap() []error }:
		errs := u.Unwrap()
		if len(errs) > 1 {
			return errs[len(errs)-1]
		}
	}
	return nil
}

func merge(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
	return dst
}

// formatErrorEntries renders the chain as a headline followed by a
// "Caused by" list. Metadata is printed under the link that carries it.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var indent string
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			indent = "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    → "+msgLines[0])
			indent = "      "
		}
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			value := strings.TrimRight(fmt.Sprint(entry.Metadata[key]), "\n")
			valueLines := strings.Split(value, "\n")
			lines = append(lines, indent+key+": "+valueLines[0])
			for _, line := range valueLines[1:] {
				lines = append(lines, indent+"  "+line)
			}
		}
	}

	return strings.Join(lines, "\n")
}
