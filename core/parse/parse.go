// Package parse turns raw git numstat log output into structured commit
// records.
package parse

import (
	"errors"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fcuny/git-stats/schema"
)

var (
	shaLinePattern    = regexp.MustCompile(`^[0-9a-f]{40}$`)
	authorLinePattern = regexp.MustCompile(`^Author: (.*) <(.*)>$`)
)

const dateLinePrefix = "Date: "

// looseDateFormat is accepted when the log was produced without
// --date=iso-strict.
const looseDateFormat = "2006-01-02 15:04:05 -0700"

// Malformed block errors.
var (
	ErrMissingSHA    = errors.New("commit block missing sha line")
	ErrMissingAuthor = errors.New("commit block missing author line")
	ErrMissingDate   = errors.New("commit block missing date line")
)

// Stream wraps raw git log output and exposes it as a lazy, restartable
// sequence of commit records. Iteration never aborts on a bad block; the
// malformed count is available after a full pass.
type Stream struct {
	raw       string
	malformed int
}

// NewStream creates a Stream over raw git log output.
func NewStream(raw []byte) *Stream {
	return &Stream{raw: string(raw)}
}

// Blocks yields one raw text block per commit. A block starts at a bare
// 40-character SHA line; any non-blank content before the first SHA line is
// yielded as its own (malformed) block so it can be counted.
func (s *Stream) Blocks() iter.Seq[string] {
	return func(yield func(string) bool) {
		var cur strings.Builder
		nonBlank := false
		for line := range strings.Lines(s.raw) {
			if shaLinePattern.MatchString(strings.TrimRight(line, "\r\n")) {
				if nonBlank && !yield(cur.String()) {
					return
				}
				cur.Reset()
				nonBlank = true
			} else if !nonBlank && strings.TrimSpace(line) != "" {
				nonBlank = true
			}
			cur.WriteString(line)
		}
		if nonBlank {
			yield(cur.String())
		}
	}
}

// Records yields one CommitRecord per well-formed block. The malformed
// counter is reset at the start of each pass, so the sequence is restartable.
func (s *Stream) Records() iter.Seq[schema.CommitRecord] {
	return func(yield func(schema.CommitRecord) bool) {
		s.malformed = 0
		for block := range s.Blocks() {
			rec, err := ParseBlock(block)
			if err != nil {
				s.malformed++
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Malformed returns the number of blocks skipped during the most recent pass
// over Records.
func (s *Stream) Malformed() int {
	return s.malformed
}

// ParseBlock parses a single raw commit block. Line dispatch is positional
// only for the three header lines; every other line either matches the
// numstat grammar or is ignored as message text.
func ParseBlock(block string) (schema.CommitRecord, error) {
	var rec schema.CommitRecord
	for line := range strings.Lines(block) {
		line = strings.TrimRight(line, "\r\n")
		switch {
		case rec.SHA == "" && shaLinePattern.MatchString(line):
			rec.SHA = line
		case rec.Author == (schema.Identity{}) && strings.HasPrefix(line, "Author: "):
			if m := authorLinePattern.FindStringSubmatch(line); m != nil {
				rec.Author = schema.Identity{Name: strings.TrimSpace(m[1]), Email: m[2]}
			}
		case rec.Timestamp.IsZero() && strings.HasPrefix(line, dateLinePrefix):
			rec.Timestamp = parseDate(strings.TrimSpace(line[len(dateLinePrefix):]))
		default:
			if fc, ok := parseChangeLine(line); ok {
				rec.Files = append(rec.Files, fc)
			}
		}
	}

	switch {
	case rec.SHA == "":
		return schema.CommitRecord{}, ErrMissingSHA
	case rec.Author == (schema.Identity{}):
		return schema.CommitRecord{}, ErrMissingAuthor
	case rec.Timestamp.IsZero():
		return schema.CommitRecord{}, ErrMissingDate
	}
	return rec, nil
}

// parseDate accepts iso-strict timestamps, with a fallback for the default
// git date format.
func parseDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(looseDateFormat, s); err == nil {
		return t
	}
	return time.Time{}
}

// parseChangeLine parses one numstat line. Returns false for lines that are
// not numstat lines, and for binary lines with no rename arrow (both counts
// unknown carries no line-count signal).
func parseChangeLine(line string) (schema.FileChange, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) != 3 {
		return schema.FileChange{}, false
	}

	added, addedUnknown, ok := parseCount(parts[0])
	if !ok {
		return schema.FileChange{}, false
	}
	removed, removedUnknown, ok := parseCount(parts[1])
	if !ok {
		return schema.FileChange{}, false
	}

	path := parts[2]
	if path == "" {
		return schema.FileChange{}, false
	}
	if strings.Contains(path, " => ") {
		oldPath, newPath := parseRenamePath(path)
		if newPath == "" {
			return schema.FileChange{}, false
		}
		// Renames carry no line-count mass; the new path starts a fresh
		// timeline with no history inherited from the old one.
		return schema.FileChange{Path: newPath, OldPath: oldPath}, true
	}

	if addedUnknown && removedUnknown {
		return schema.FileChange{}, false
	}
	return schema.FileChange{Path: path, Added: added, Removed: removed}, true
}

// parseCount converts a numstat count. "-" means unknown (binary side) and
// contributes zero.
func parseCount(s string) (n int, unknown, ok bool) {
	if s == "-" {
		return 0, true, true
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, false, false
	}
	return v, false, true
}

// parseRenamePath extracts old and new paths from a rename string, handling
// both the plain "old => new" and braced "prefix{old => new}suffix" forms.
func parseRenamePath(path string) (string, string) {
	if !strings.Contains(path, "{") {
		parts := strings.SplitN(path, " => ", 2)
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
		return "", ""
	}

	braceStart := strings.Index(path, "{")
	braceEnd := strings.Index(path, "}")
	if braceEnd == -1 || braceStart >= braceEnd {
		return "", ""
	}

	prefix := path[:braceStart]
	renamePart := path[braceStart+1 : braceEnd]
	suffix := path[braceEnd+1:]

	if !strings.Contains(renamePart, " => ") {
		return "", ""
	}

	renameParts := strings.SplitN(renamePart, " => ", 2)
	oldPath := cleanRenameJoin(prefix, renameParts[0], suffix)
	newPath := cleanRenameJoin(prefix, renameParts[1], suffix)
	return oldPath, newPath
}

// cleanRenameJoin rebuilds a path from braced rename segments, collapsing the
// double slash left behind when one side of the brace is empty.
func cleanRenameJoin(prefix, mid, suffix string) string {
	joined := prefix + mid + suffix
	return strings.ReplaceAll(joined, "//", "/")
}
