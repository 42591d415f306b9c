/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package finalizer normalizes the tail of generated text files so repeated
// runs write identical bytes.
package finalizer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NormalizeEOF strips a UTF-8 BOM, optionally trims trailing spaces and tabs
// on every line, and ends the content with exactly one line ending. An empty
// lineEnding is detected from the content. Binary input is returned as is.
func NormalizeEOF(input []byte, trimTrailingSpaces bool, lineEnding string) (out []byte, changed bool, err error) {
	if len(input) == 0 || !IsText(input) {
		return input, false, nil
	}

	content := string(bytes.TrimPrefix(input, utf8BOM))
	if lineEnding == "" {
		lineEnding = detectLineEnding(content)
	}

	if trimTrailingSpaces {
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			cr := strings.HasSuffix(line, "\r")
			line = strings.TrimRight(strings.TrimSuffix(line, "\r"), " \t")
			if cr {
				line += "\r"
			}
			lines[i] = line
		}
		content = strings.Join(lines, "\n")
	}

	content = strings.TrimRight(content, " \t\r\n") + lineEnding
	out = []byte(content)
	return out, !bytes.Equal(out, input), nil
}

// IsText reports whether content is valid UTF-8 without NUL bytes.
func IsText(content []byte) bool {
	return !bytes.Contains(content, []byte{0}) && utf8.Valid(content)
}

// detectLineEnding returns the dominant line ending, defaulting to LF.
func detectLineEnding(content string) string {
	crlf := strings.Count(content, "\r\n")
	lf := strings.Count(content, "\n") - crlf
	if crlf > lf {
		return "\r\n"
	}
	return "\n"
}
