package content

import (
	"bytes"
	"errors"
)

const frontMatterDelimiter = "---"

var (
	// ErrNoFrontMatter is returned when a Markdown file does not open with "---".
	ErrNoFrontMatter = errors.New("missing front-matter block")
	// ErrUnterminatedFrontMatter is returned when the closing "---" is absent.
	ErrUnterminatedFrontMatter = errors.New("unterminated front-matter block")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SplitFrontMatter separates the YAML front-matter from the Markdown body.
// The opening delimiter must be the first line. The closing delimiter is a
// line containing only "---" (or "..."). bodyLine is the 1-based file line on
// which the body starts.
func SplitFrontMatter(data []byte) (meta, body []byte, bodyLine int, err error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	first, rest, ok := cutLine(data)
	if !isDelimiter(first) {
		return nil, nil, 0, ErrNoFrontMatter
	}
	if !ok {
		return nil, nil, 0, ErrUnterminatedFrontMatter
	}

	line := 1
	start := len(data) - len(rest)
	for len(rest) > 0 {
		lineStart := len(data) - len(rest)
		var current []byte
		current, rest, _ = cutLine(rest)
		line++
		if isDelimiter(current) || string(trimLine(current)) == "..." {
			return data[start:lineStart], rest, line + 1, nil
		}
	}
	return nil, nil, 0, ErrUnterminatedFrontMatter
}

// cutLine returns the first line of data without its terminator and the
// remainder. ok is false when data contains no newline.
func cutLine(data []byte) (line, rest []byte, ok bool) {
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		return data, nil, false
	}
	return data[:idx], data[idx+1:], true
}

func trimLine(line []byte) []byte {
	return bytes.TrimRight(line, " \t\r")
}

func isDelimiter(line []byte) bool {
	return string(trimLine(line)) == frontMatterDelimiter
}
