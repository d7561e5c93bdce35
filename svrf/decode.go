package svrf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText returns the deck text as UTF-8. Legacy decks exported from
// older flows are sometimes Latin-1 encoded; when the bytes are not valid
// UTF-8 they are reinterpreted as ISO 8859-1, which cannot fail.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// unreachable for ISO 8859-1, but keep the raw bytes if it ever is
		return string(data)
	}
	return string(decoded)
}

// ParseFile reads, decodes, and parses one deck file.
func ParseFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return Parse(DecodeText(data)), nil
}

// ParseReader parses UTF-8 deck text from a reader, feeding the parser one
// line at a time. Use ParseFile for legacy-encoding fallback, which needs
// the whole input up front.
func ParseReader(r io.Reader) (*Deck, error) {
	p := NewParser()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := p.Feed([]string{scanner.Text()}); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return p.Finish(), nil
}
