package csvtab

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"simple", "a,b,c", []string{"a", "b", "c"}},
		{"empty line", "", []string{""}},
		{"empty fields", ",,", []string{"", "", ""}},
		{"trailing comma", "a,", []string{"a", ""}},
		{"quoted comma", `1,"Smith, J",3`, []string{"1", "Smith, J", "3"}},
		{"doubled quote", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"quoted empty", `"",b`, []string{"", "b"}},
		{"unterminated quote", `"abc,def`, []string{"abc,def"}},
		{"quote mid field", `ab"c,d"e`, []string{"abc,de"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLine(tt.line))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"-", 0},
		{"42", 42},
		{"-17", -17},
		{"  -3", -3},
		{"85kg", 85},
		{"€1200", 1200},
		{"12-3", 12},
		{"1.5", 1},
		{"v2", 2},
		{"2147483647", 2147483647},
		{"2147483648", 0},
		{"-2147483648", -2147483648},
		{"99999999999999999999", 0},
		{"-7", -7},
		{" 12kg", 12},
		{"-x5", 0},
		{"--5", 0},
		{"- 5", 0},
		{"x-5", -5},
		{"a-", 0},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestColumnMap(t *testing.T) {
	cols := NewColumnMap([]string{"club_id", "club_name", "league", "club_name"})

	t.Run("last duplicate wins", func(t *testing.T) {
		idx, ok := cols.Index("club_name")
		require.True(t, ok)
		assert.Equal(t, 3, idx)
	})

	t.Run("unknown column", func(t *testing.T) {
		assert.False(t, cols.Has("manager_name"))
		assert.Equal(t, "", cols.Field([]string{"1", "a", "0", "b"}, "manager_name"))
	})

	t.Run("short row", func(t *testing.T) {
		assert.Equal(t, "", cols.Field([]string{"1", "a"}, "league"))
		assert.Equal(t, 0, cols.Int([]string{"1", "a"}, "league"))
	})

	t.Run("case sensitive", func(t *testing.T) {
		assert.False(t, cols.Has("CLUB_ID"))
	})

	t.Run("missing", func(t *testing.T) {
		assert.Equal(t, []string{"overall"}, cols.Missing([]string{"club_id", "overall"}))
	})
}

func readRows(t *testing.T, r *Reader) ([][]string, []int) {
	t.Helper()
	var (
		rows  [][]string
		lines []int
	)
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows, lines
		}
		require.NoError(t, err)
		rows = append(rows, row)
		lines = append(lines, r.Line())
	}
}

func TestReader(t *testing.T) {
	input := "\xEF\xBB\xBFclub_id,club_name\r\n1,Alpha\r\n\r\n2,\"Beta, FC\"\n3,Caf\xE9"
	r := NewReader(strings.NewReader(input))

	cols, err := r.Columns()
	require.NoError(t, err)
	assert.True(t, cols.Has("club_id"), "BOM should be stripped from first header")
	assert.Equal(t, 1, r.Line())

	rows, lines := readRows(t, r)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "Alpha"}, rows[0])
	assert.Equal(t, []string{"2", "Beta, FC"}, rows[1])
	assert.Equal(t, []string{"3", "Caf?"}, rows[2])
	assert.Equal(t, []int{2, 4, 5}, lines)
}

func TestReader_WhitespaceLines(t *testing.T) {
	input := "  \n\t\nplayer_id,overall\n   \n\n1,70\n \t \r\n"
	r := NewReader(strings.NewReader(input))

	cols, err := r.Columns()
	require.NoError(t, err)
	assert.True(t, cols.Has("player_id"), "blank lines before the header are skipped")

	rows, lines := readRows(t, r)
	assert.Equal(t, [][]string{{"   "}, {"1", "70"}, {" \t "}}, rows)
	assert.Equal(t, []int{4, 6, 7}, lines)
}

func TestReader_EmptyTable(t *testing.T) {
	for _, input := range []string{"", "\n\n", "\xEF\xBB\xBF"} {
		r := NewReader(strings.NewReader(input))
		_, err := r.Columns()
		if !errors.Is(err, ErrEmptyTable) {
			t.Errorf("Columns(%q) error = %v, want ErrEmptyTable", input, err)
		}
	}
}

func TestReader_HeaderOnly(t *testing.T) {
	r := NewReader(strings.NewReader("player_id,overall\n"))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}
