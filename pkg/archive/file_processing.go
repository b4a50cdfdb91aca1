package archive

import (
	"io"
	"strings"
	"unicode/utf8"
)

// readLines loads a source as UTF-8 text and splits it into lines. The whole
// file is decoded before anything is returned, so a failing source yields no
// partial lines. Terminators "\r\n" and "\r" become "\n"; a final line
// without a terminator is returned as is.
func (a *Archiver) readLines(path string) ([]string, error) {
	f, err := a.open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Kind: KindOpen, Cause: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &ReadError{Path: path, Kind: KindRead, Cause: err}
	}

	if offset := invalidUTF8Offset(data); offset >= 0 {
		return nil, &ReadError{Path: path, Kind: KindDecode, Offset: offset, Cause: ErrInvalidUTF8}
	}
	return splitLines(data), nil
}

// invalidUTF8Offset returns the offset of the first byte that does not start
// a valid UTF-8 sequence, or -1.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines = append(lines, string(data[start:i])+"\n")
			start = i + 1
		case '\r':
			lines = append(lines, string(data[start:i])+"\n")
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}

// singleLine keeps an error description on one archive line.
func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
