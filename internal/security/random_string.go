package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	upperAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijkmnopqrstuvwxyz"
	digitAlphabet = "23456789"

	minTemporaryPasswordLength = 8
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a uniformly random string of length runes drawn from
// the single-byte alphabet, using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	value := make([]byte, length)
	for index := range value {
		char, err := randomByte(alphabet)
		if err != nil {
			return "", err
		}
		value[index] = char
	}
	return string(value), nil
}

// TemporaryPassword generates an unambiguous password of at least eight
// characters that contains an upper case letter, a lower case letter and a
// digit.
func TemporaryPassword(length int) (string, error) {
	if length < minTemporaryPasswordLength {
		length = minTemporaryPasswordLength
	}

	value := make([]byte, 0, length)
	for _, alphabet := range []string{upperAlphabet, lowerAlphabet, digitAlphabet} {
		char, err := randomByte(alphabet)
		if err != nil {
			return "", err
		}
		value = append(value, char)
	}

	rest, err := RandomString(length-len(value), upperAlphabet+lowerAlphabet+digitAlphabet)
	if err != nil {
		return "", err
	}
	value = append(value, rest...)

	if err := shuffle(value); err != nil {
		return "", err
	}
	return string(value), nil
}

func randomByte(alphabet string) (byte, error) {
	position, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[position.Int64()], nil
}

// shuffle is a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(value []byte) error {
	for index := len(value) - 1; index > 0; index-- {
		position, err := rand.Int(rand.Reader, big.NewInt(int64(index+1)))
		if err != nil {
			return err
		}
		swap := position.Int64()
		value[index], value[swap] = value[swap], value[index]
	}
	return nil
}
