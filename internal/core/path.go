package core

import (
	"strconv"
	"strings"
)

// ParsePath splits a dotted/bracketed path into its segments.
//
//	"a.b"          -> ["a", "b"]
//	"a[0].b"       -> ["a", "0", "b"]
//	`a["x.y"]`     -> ["a", "x.y"]
//	"a['x'][+2]"   -> ["a", "x", "+2"]
//	""             -> nil
//
// Parsing is lenient: an unterminated bracket or quote consumes the rest of
// the input as a single segment.
func ParsePath(path string) []string {
	if path == "" {
		return nil
	}

	var segs []string
	i := 0
	for i < len(path) {
		switch c := path[i]; c {
		case '.':
			i++
		case '[':
			seg, next := parseBracket(path, i+1)
			segs = append(segs, seg)
			i = next
		case '"', '\'':
			seg, next := parseQuoted(path, i)
			segs = append(segs, seg)
			i = next
		default:
			j := i
			for j < len(path) && path[j] != '.' && path[j] != '[' {
				j++
			}
			segs = append(segs, path[i:j])
			i = j
		}
	}
	return segs
}

// parseBracket parses the inside of a bracket starting at i (just past '[')
// and returns the segment and the index just past the closing ']'.
func parseBracket(path string, i int) (string, int) {
	if i < len(path) && (path[i] == '"' || path[i] == '\'') {
		seg, next := parseQuoted(path, i)
		if next < len(path) && path[next] == ']' {
			next++
		}
		return seg, next
	}
	end := strings.IndexByte(path[i:], ']')
	if end < 0 {
		return path[i:], len(path)
	}
	return path[i : i+end], i + end + 1
}

// parseQuoted parses a quoted segment starting at the quote character at i and
// returns the unescaped segment and the index just past the closing quote.
func parseQuoted(path string, i int) (string, int) {
	quote := path[i]
	var b strings.Builder
	j := i + 1
	for j < len(path) {
		c := path[j]
		if c == '\\' && j+1 < len(path) {
			b.WriteByte(path[j+1])
			j += 2
			continue
		}
		if c == quote {
			return b.String(), j + 1
		}
		b.WriteByte(c)
		j++
	}
	return b.String(), len(path)
}

// FormatPath is the inverse of ParsePath.
func FormatPath(segs []string) string {
	var b strings.Builder
	for _, seg := range segs {
		writeSegment(&b, seg)
	}
	return b.String()
}

// JoinPath appends a single segment to an already formatted path.
func JoinPath(parent, seg string) string {
	var b strings.Builder
	b.WriteString(parent)
	writeSegment(&b, seg)
	return b.String()
}

func writeSegment(b *strings.Builder, seg string) {
	switch {
	case IsIndexSegment(seg):
		b.WriteByte('[')
		b.WriteString(seg)
		b.WriteByte(']')
	case isPlainSegment(seg):
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	default:
		b.WriteByte('[')
		b.WriteString(strconv.Quote(seg))
		b.WriteByte(']')
	}
}

// IsIndexSegment reports whether seg is an array index ("3") or an insertion
// index ("+3").
func IsIndexSegment(seg string) bool {
	_, _, ok := ParseIndexSegment(seg)
	return ok
}

// ParseIndexSegment decodes "N" and "+N" segments.
func ParseIndexSegment(seg string) (n int, insert bool, ok bool) {
	if strings.HasPrefix(seg, "+") {
		insert = true
		seg = seg[1:]
	}
	if seg == "" {
		return 0, false, false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return 0, false, false
		}
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false, false
	}
	return n, insert, true
}

func isPlainSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		switch c := seg[i]; c {
		case '.', '[', ']', '"', '\'', '\\', ' ', '\t', '\n':
			return false
		}
	}
	return true
}

// Overlap reports whether two segment lists agree on every segment up to the
// length of the shorter one, i.e. one is a prefix of (or equal to) the other.
func Overlap(a, b []string) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
