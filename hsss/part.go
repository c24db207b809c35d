package hsss

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/izouxv/goHSSS/utils"
)

// Part is one party's share of a split secret. Number is the row of the
// incidence matrix that produced the share and identifies which bits the
// payload may attest to; Data is the bit-packed payload.
type Part struct {
	Number int
	Data   uint32
}

// NewPart creates a Part from a party index and payload.
func NewPart(number int, data uint32) Part {
	return Part{Number: number, Data: data}
}

// Encode serializes the Part into a byte slice.
func (p Part) Encode() []byte {
	buf := bytes.NewBuffer(nil)
	// Buffer writes cannot fail.
	_ = utils.WriteVarInt(buf, int64(p.Number))
	var payload [4]byte
	binary.BigEndian.PutUint32(payload[:], p.Data)
	_ = utils.WriteVarBytes(buf, payload[:])
	return buf.Bytes()
}

// DecodePart deserializes a byte slice produced by Encode.
func DecodePart(data []byte) (Part, error) {
	buf := bytes.NewBuffer(data)
	number, _, err := utils.ReadVarInt(buf)
	if err != nil {
		return Part{}, fmt.Errorf("failed to read party index: %w", err)
	}
	payload, err := utils.ReadVarBytes(buf)
	if err != nil {
		return Part{}, fmt.Errorf("failed to read payload: %w", err)
	}
	if len(payload) != 4 {
		return Part{}, fmt.Errorf("payload is %d bytes, want 4", len(payload))
	}
	return Part{Number: int(number), Data: binary.BigEndian.Uint32(payload)}, nil
}

// Fingerprint returns the SHA3-256 digest of the encoded Part. Parties can
// compare fingerprints out of band without exposing payloads to each other.
func (p Part) Fingerprint() ([]byte, error) {
	return utils.Sha3Hash(p.Encode())
}

// Zeroize scrubs the Part in place.
func (p *Part) Zeroize() {
	p.Number = 0
	p.Data = 0
}
