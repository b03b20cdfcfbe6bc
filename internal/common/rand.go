package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding, so the final string length is twice the size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MakeRandCode generates a random uppercase-alphanumeric string of the given
// length using crypto/rand. It is used for license codes.
func MakeRandCode(length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("rand error: %w", err)
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// MakeRandDigits generates a random integer in [10^(n-1), 10^n), i.e. an
// n-digit number without a leading zero.
func MakeRandDigits(n int) (int, error) {
	lo := 1
	for i := 1; i < n; i++ {
		lo *= 10
	}
	span := big.NewInt(int64(lo * 9))
	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("rand error: %w", err)
	}
	return lo + int(v.Int64()), nil
}
