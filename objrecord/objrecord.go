// Package objrecord implements the object record writer and reader
// (spec component C8): the binary format the assembler core emits for
// its companion simulator to consume.
//
// Design note §9 calls out the original lc3tools writer as serializing
// integers by raw host-endian memory copy, and requires an explicit
// little-endian rewrite for portability. Per spec §4.8's record layout,
// that fix applies to the value field; the line_length field is
// deliberately left native-endian, matching the layout table exactly.
package objrecord

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Entry is one unit of object output (spec §3 "Memory Entry").
type Entry struct {
	Value      uint16
	IsOrigin   bool
	SourceLine string
}

// WriteRecord serializes one Entry to w per the §4.8 layout.
func WriteRecord(w io.Writer, e Entry) error {
	var header [7]byte
	binary.LittleEndian.PutUint16(header[0:2], e.Value)
	if e.IsOrigin {
		header[2] = 1
	}
	lineBytes := []byte(e.SourceLine)
	binary.NativeEndian.PutUint32(header[3:7], uint32(len(lineBytes)))

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(lineBytes)
	return err
}

// WriteAll serializes a sequence of entries in order.
func WriteAll(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if err := WriteRecord(w, e); err != nil {
			return err
		}
	}
	return nil
}

// ReadRecord reads one Entry from r, returning io.EOF when the stream is
// exhausted exactly on a record boundary.
func ReadRecord(r io.Reader) (Entry, error) {
	var header [7]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Entry{}, err
	}

	value := binary.LittleEndian.Uint16(header[0:2])
	isOrigin := header[2] != 0
	length := binary.NativeEndian.Uint32(header[3:7])

	lineBytes := make([]byte, length)
	if _, err := io.ReadFull(r, lineBytes); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Entry{}, fmt.Errorf("reading source line: %w", err)
	}

	return Entry{Value: value, IsOrigin: isOrigin, SourceLine: string(lineBytes)}, nil
}

// ReadAll reads every record from r until EOF.
func ReadAll(r io.Reader) ([]Entry, error) {
	var out []Entry
	for {
		e, err := ReadRecord(r)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
}
