package builtin

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	maxLines = 2000
	maxBytes = 50 << 10
)

// Sanitize strips ANSI escape sequences and control characters from
// command output. Tabs and newlines survive, CRLF becomes LF, and a lone CR
// overwrites the start of its line the way a terminal would.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.ContainsRune(line, '\r') {
			lines[i] = overwrite(line)
		}
	}
	return strings.Join(lines, "\n")
}

func overwrite(line string) string {
	segments := strings.Split(line, "\r")
	buf := []rune(segments[0])
	for _, seg := range segments[1:] {
		for j, r := range []rune(seg) {
			if j < len(buf) {
				buf[j] = r
			} else {
				buf = append(buf, r)
			}
		}
	}
	return string(buf)
}

// TruncateTail keeps the last lines of s that fit both limits. It returns
// the kept text with the number of lines kept and the total number of
// lines. A single line longer than limitBytes is cut to its tail.
func TruncateTail(s string, limitLines, limitBytes int) (tail string, kept, total int) {
	if s == "" {
		return "", 0, 0
	}
	trailing := strings.HasSuffix(s, "\n")
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	total = len(lines)
	if total <= limitLines && len(s) <= limitBytes {
		return s, total, total
	}

	budget := limitBytes
	if trailing {
		budget--
	}
	start, size := total, 0
	for start > 0 && total-start < limitLines {
		n := len(lines[start-1])
		if start < total {
			n++
		}
		if size+n > budget {
			break
		}
		size += n
		start--
	}
	if start == total {
		last := lines[total-1]
		if len(last) > limitBytes {
			last = strings.ToValidUTF8(last[len(last)-limitBytes:], "")
		}
		return last, 1, total
	}

	tail = strings.Join(lines[start:], "\n")
	if trailing {
		tail += "\n"
	}
	return tail, total - start, total
}
