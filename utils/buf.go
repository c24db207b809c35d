package utils

import (
	"encoding/binary"
	"fmt"
	"io"
)

type byteReader struct {
	in   io.Reader
	read int
}

func (r *byteReader) ReadByte() (byte, error) {
	var data [1]byte
	_, err := io.ReadFull(r.in, data[:])
	r.read++
	return data[0], err
}

// ReadVarInt reads a varint-encoded integer from r, returning the value and
// the number of bytes consumed.
func ReadVarInt(r io.Reader) (num int64, n int64, err error) {
	br := &byteReader{in: r}
	num, err = binary.ReadVarint(br)
	return num, int64(br.read), err
}

// WriteVarInt writes num to w as a varint.
func WriteVarInt(w io.Writer, num int64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], num)
	_, err := w.Write(buf[:n])
	return err
}

// ReadVarBytes reads a varint length prefix from r followed by that many bytes.
func ReadVarBytes(r io.Reader) ([]byte, error) {
	num, _, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if num < 0 {
		return nil, fmt.Errorf("negative length prefix %d", num)
	}
	data := make([]byte, num)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteVarBytes writes data to w with a varint length prefix.
func WriteVarBytes(w io.Writer, data []byte) error {
	if err := WriteVarInt(w, int64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
