// Package csvtab reads the comma-separated club and player tables.
//
// The format is deliberately loose: one record per line, double-quoted
// fields may contain commas and doubled quotes, and numeric columns are
// parsed permissively because source spreadsheets carry unit suffixes and
// stray formatting.
package csvtab

import (
	"strconv"
	"strings"
)

// SplitLine splits one line into fields. Inside double quotes a comma is
// literal and "" is a single quote character. Unquoted fields end at the
// next comma. The result always has at least one field.
func SplitLine(line string) []string {
	fields := make([]string, 0, strings.Count(line, ",")+1)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		if inQuotes {
			switch {
			case c == '"' && i+1 < len(line) && line[i+1] == '"':
				current.WriteByte('"')
				i++
			case c == '"':
				inQuotes = false
			default:
				current.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	return append(fields, current.String())
}

// ParseNumber extracts the first number in s.
//
// Characters before the number are skipped. A '-' starts the number only
// when nothing has been collected yet, and the number ends at the first
// character that is not a digit, so "-x5" and "--5" are 0 while "x-5" is -5.
// No digits, or a value outside the 32-bit range, yields 0.
func ParseNumber(s string) int {
	start, end := -1, len(s)
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) || (s[i] == '-' && start < 0) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			end = i
			break
		}
	}
	if start < 0 {
		return 0
	}

	n, err := strconv.ParseInt(s[start:end], 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
