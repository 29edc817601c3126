package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager is implemented by zerr errors: Message omits the wrapped cause.
type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks err's chain. zerr links contribute their own
// message and metadata; the first foreign error ends the walk with its full
// text. Links without a message, as produced by zerr.With on a standard error,
// hand their metadata to the next link.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var carried map[string]any

	for current := err; current != nil; {
		var entry ErrorEntry
		m, ok := current.(messager)
		if ok {
			entry.Message = m.Message()
			if md, ok := current.(metadataer); ok {
				entry.Metadata = md.Metadata()
			}
		} else {
			entry.Message = current.Error()
		}

		if carried != nil {
			if entry.Metadata == nil {
				entry.Metadata = make(map[string]any, len(carried))
			}
			maps.Copy(entry.Metadata, carried)
			carried = nil
		}

		if ok && entry.Message == "" && errors.Unwrap(current) != nil {
			carried = entry.Metadata
			current = errors.Unwrap(current)
			continue
		}

		entries = append(entries, entry)
		if !ok {
			break
		}
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders the chain as
//
//	Error: outer
//	       key: value
//
//	  Caused by:
//	    → inner
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		lead, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lead, indent = "    → ", "      "
		}

		lines = append(lines, lead+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
