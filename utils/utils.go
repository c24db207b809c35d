package utils

import (
	"golang.org/x/crypto/sha3"
)

// Sha3Hash converts a message to a hash value using SHA3-256.
func Sha3Hash(message []byte) ([]byte, error) {
	sha := sha3.New256()
	_, err := sha.Write(message)
	if err != nil {
		return nil, err
	}
	return sha.Sum(nil), nil
}

// Zeroize overwrites b with zeros. Callers defer it on every exit path that
// handled key material or share plaintext.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroizeInts overwrites every entry of m with zero.
func ZeroizeInts(m [][]int) {
	for _, row := range m {
		for i := range row {
			row[i] = 0
		}
	}
}
