// Package kitexport dumps the kit colours stored in a club table.
package kitexport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/pm3import/internal/pm3"
)

// ErrUnknownFormat is returned by ParseFormat for an unrecognised name.
var ErrUnknownFormat = errors.New("unknown kit export format")

// Format selects the output layout.
type Format int

const (
	FormatText Format = iota
	FormatCSV
)

// ParseFormat maps "csv" and "text" (or "") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

var kitLabels = [pm3.KitsPerClub]string{"Home", "Away1", "Away2"}

var kitPrefixes = [pm3.KitsPerClub]string{"home", "away1", "away2"}

var partNames = [4]string{"primary", "secondary", "shorts", "socks"}

// Entry is one exported club.
type Entry struct {
	Index int
	Name  string
	Kits  [pm3.KitsPerClub]pm3.Kit
}

// Entries returns the clubs that carry a name, in table order. Unused slots
// and placeholder "Unknown" clubs are skipped.
func Entries(clubs *pm3.ClubData) []Entry {
	var out []Entry
	for i := range clubs {
		rec := &clubs[i]
		if rec.IsEmpty() {
			continue
		}
		name := printable(rec.Name())
		if name == "" {
			continue
		}
		e := Entry{Index: i, Name: name}
		for k := range e.Kits {
			e.Kits[k] = rec.Kit(k)
		}
		out = append(out, e)
	}
	return out
}

// Header returns the CSV header row.
func Header() []string {
	h := []string{"club_idx", "club_name"}
	for _, prefix := range kitPrefixes {
		h = append(h, prefix+"_design")
		for _, part := range partNames {
			for _, ch := range []string{"r", "g", "b"} {
				h = append(h, prefix+"_"+part+"_"+ch)
			}
		}
	}
	return h
}

// Write exports clubs to w in the given format.
func Write(w io.Writer, clubs *pm3.ClubData, f Format) error {
	entries := Entries(clubs)
	if f == FormatCSV {
		return writeCSV(w, entries)
	}
	return writeText(w, entries)
}

// writeCSV quotes a club name only when it holds a comma, quote or line
// break, so names with quotes still parse back.
func writeCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{strconv.Itoa(e.Index), e.Name}
		for _, kit := range e.Kits {
			row = append(row, strconv.Itoa(int(kit.Design)))
			for _, c := range kit.Colors {
				for _, v := range c {
					row = append(row, strconv.Itoa(int(v)))
				}
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, entries []Entry) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "\n[%d] %s\n", e.Index, e.Name)
		for k, kit := range e.Kits {
			fmt.Fprintf(&b, "  %s Kit:\n", kitLabels[k])
			fmt.Fprintf(&b, "    Design: %d\n", kit.Design)
			writeRGB(&b, "Shirt Primary", kit.Colors[pm3.ShirtPrimary])
			writeRGB(&b, "Shirt Secondary", kit.Colors[pm3.ShirtSecondary])
			writeRGB(&b, "Shorts", kit.Colors[pm3.Shorts])
			writeRGB(&b, "Socks", kit.Colors[pm3.Socks])
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRGB(b *strings.Builder, label string, c pm3.RGB) {
	fmt.Fprintf(b, "    %s RGB: (%d,%d,%d)\n", label, c[0], c[1], c[2])
}

// printable drops bytes outside printable ASCII and trailing spaces.
func printable(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= 32 && s[i] <= 126 {
			b.WriteByte(s[i])
		}
	}
	return strings.TrimRight(b.String(), " ")
}
