package pm3

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ClubData is the full club table.
type ClubData [NumClubs]ClubRecord

// PlayerData is the full player table.
type PlayerData [NumPlayers]PlayerRecord

// Save holds the three root structures of one game.
type Save struct {
	Game    *GameData
	Clubs   *ClubData
	Players *PlayerData
}

// NewSave returns a zeroed save.
func NewSave() *Save {
	return &Save{
		Game:    new(GameData),
		Clubs:   new(ClubData),
		Players: new(PlayerData),
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (g *GameData) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), g[:]...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (g *GameData) UnmarshalBinary(data []byte) error {
	if len(data) != GameDataSize {
		return sizeError("game data", len(data), GameDataSize)
	}
	copy(g[:], data)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *ClubData) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, ClubDataSize)
	for i := range c {
		buf = append(buf, c[i][:]...)
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *ClubData) UnmarshalBinary(data []byte) error {
	if len(data) != ClubDataSize {
		return sizeError("club data", len(data), ClubDataSize)
	}
	for i := range c {
		copy(c[i][:], data[i*ClubRecordSize:])
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *PlayerData) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, PlayerDataSize)
	for i := range p {
		buf = append(buf, p[i][:]...)
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *PlayerData) UnmarshalBinary(data []byte) error {
	if len(data) != PlayerDataSize {
		return sizeError("player data", len(data), PlayerDataSize)
	}
	for i := range p {
		copy(p[i][:], data[i*PlayerRecordSize:])
	}
	return nil
}

type binaryStruct interface {
	MarshalBinary() ([]byte, error)
	UnmarshalBinary([]byte) error
}

// readExact reads exactly size bytes into v and reports trailing data.
func readExact(r io.Reader, v binaryStruct, size int, name string) (int64, error) {
	buf := make([]byte, size)
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return int64(n), fmt.Errorf("read %s: %w", name, sizeError(name, n, size))
	}
	if err != nil {
		return int64(n), fmt.Errorf("read %s: %w", name, err)
	}
	var extra [1]byte
	if m, _ := r.Read(extra[:]); m > 0 {
		return int64(n + m), fmt.Errorf("read %s: %w", name, ErrTrailingData)
	}
	return int64(n), v.UnmarshalBinary(buf)
}

func writeAll(w io.Writer, v binaryStruct) (int64, error) {
	data, err := v.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, bytes.NewReader(data))
	return n, err
}

// ReadFrom implements io.ReaderFrom. The reader must hold exactly one
// structure.
func (g *GameData) ReadFrom(r io.Reader) (int64, error) {
	return readExact(r, g, GameDataSize, "game data")
}

// WriteTo implements io.WriterTo.
func (g *GameData) WriteTo(w io.Writer) (int64, error) { return writeAll(w, g) }

// ReadFrom implements io.ReaderFrom.
func (c *ClubData) ReadFrom(r io.Reader) (int64, error) {
	return readExact(r, c, ClubDataSize, "club data")
}

// WriteTo implements io.WriterTo.
func (c *ClubData) WriteTo(w io.Writer) (int64, error) { return writeAll(w, c) }

// ReadFrom implements io.ReaderFrom.
func (p *PlayerData) ReadFrom(r io.Reader) (int64, error) {
	return readExact(r, p, PlayerDataSize, "player data")
}

// WriteTo implements io.WriterTo.
func (p *PlayerData) WriteTo(w io.Writer) (int64, error) { return writeAll(w, p) }
