package csvtab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyTable is returned when a table has no header line.
var ErrEmptyTable = errors.New("empty file: table has no header row")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader reads a table one record at a time. The first non-blank line is the
// header. A UTF-8 BOM is skipped, invalid UTF-8 is replaced with '?' and line
// endings may be LF or CRLF. Empty lines are ignored; a line holding only
// whitespace is still a record.
type Reader struct {
	br      *bufio.Reader
	columns ColumnMap
	line    int
	started bool
}

// NewReader wraps r. The header is read lazily by Columns or Next.
func NewReader(r io.Reader) *Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == string(utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return &Reader{br: br}
}

// Columns reads the header if needed and returns its column map.
func (r *Reader) Columns() (ColumnMap, error) {
	if err := r.readHeader(); err != nil {
		return ColumnMap{}, err
	}
	return r.columns, nil
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() ([]string, error) {
	if err := r.readHeader(); err != nil {
		return nil, err
	}
	line, err := r.nextLine(false)
	if err != nil {
		return nil, err
	}
	return SplitLine(line), nil
}

// Line returns the 1-based line number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) readHeader() error {
	if r.started {
		return nil
	}
	r.started = true

	line, err := r.nextLine(true)
	if errors.Is(err, io.EOF) {
		return ErrEmptyTable
	}
	if err != nil {
		return err
	}
	r.columns = NewColumnMap(SplitLine(line))
	return nil
}

// nextLine returns the next non-empty line without its terminator. With
// skipBlank, whitespace-only lines are skipped too.
func (r *Reader) nextLine(skipBlank bool) (string, error) {
	for {
		raw, err := r.br.ReadString('\n')
		if raw == "" && err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf("read line %d: %w", r.line+1, err)
		}
		r.line++

		line := strings.TrimRight(raw, "\r\n")
		line = strings.ToValidUTF8(line, "?")
		if line == "" || (skipBlank && strings.TrimSpace(line) == "") {
			if err != nil {
				return "", io.EOF
			}
			continue
		}
		return line, nil
	}
}
