package blocklist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/p4th0r/domaincheck/internal/domain"
)

// inputSource names the count-prefixed stream in entries and errors.
const inputSource = "input"

// Stream is the content of a count-prefixed input: a count line, that many
// forbidden names, a second count line, that many queries.
type Stream struct {
	Forbidden []Entry
	Queries   []string
}

// lineReader wraps a scanner and tracks the current line number.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineReader{scanner: scanner}
}

// next returns the next line with surrounding whitespace removed.
func (lr *lineReader) next() (string, bool, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", false, fmt.Errorf("reading %s: %w", inputSource, err)
		}
		return "", false, nil
	}
	lr.line++
	return strings.TrimSpace(lr.scanner.Text()), true, nil
}

func (lr *lineReader) count(what string) (int, error) {
	text, ok, err := lr.next()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s: missing %s count", inputSource, what)
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s line %d: invalid %s count %q", inputSource, lr.line, what, text)
	}
	return n, nil
}

// names reads n names. With strict set each name is validated and passed to
// fn without its trailing root dot; raw is the line as written.
func (lr *lineReader) names(what string, n int, strict bool, fn func(raw, name string, line int)) error {
	for i := 0; i < n; i++ {
		name, ok, err := lr.next()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: expected %d %s, got %d", inputSource, n, what, i)
		}
		raw := name
		if strict {
			if name, err = NormalizeQuery(name); err != nil {
				return fmt.Errorf("%s line %d: %w", inputSource, lr.line, err)
			}
		}
		fn(raw, name, lr.line)
	}
	return nil
}

// ReadStream reads the count-prefixed format. Names are kept as written
// apart from surrounding whitespace, and with strict set a trailing root
// dot; lines after the last query are ignored.
func ReadStream(r io.Reader, strict bool) (Stream, error) {
	lr := newLineReader(r)
	var s Stream

	n, err := lr.count("forbidden domain")
	if err != nil {
		return Stream{}, err
	}
	s.Forbidden = make([]Entry, 0, n)
	err = lr.names("forbidden domains", n, strict, func(raw, name string, line int) {
		s.Forbidden = append(s.Forbidden, Entry{
			Raw:    raw,
			Domain: domain.New(name),
			Source: inputSource,
			Line:   line,
		})
	})
	if err != nil {
		return Stream{}, err
	}

	m, err := lr.count("query")
	if err != nil {
		return Stream{}, err
	}
	s.Queries = make([]string, 0, m)
	err = lr.names("queries", m, strict, func(_, name string, _ int) {
		s.Queries = append(s.Queries, name)
	})
	if err != nil {
		return Stream{}, err
	}

	return s, nil
}

// ReadQueries reads one query per line, skipping blank lines and # comments.
func ReadQueries(r io.Reader, strict bool) ([]string, error) {
	lr := newLineReader(r)
	var queries []string

	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return queries, nil
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strict {
			if line, err = NormalizeQuery(line); err != nil {
				return nil, fmt.Errorf("%s line %d: %w", inputSource, lr.line, err)
			}
		}
		queries = append(queries, line)
	}
}
