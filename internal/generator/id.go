package generator

import (
	"crypto/rand"
	"errors"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxByte is the largest multiple of len(alphabet) that fits in a byte.
// Bytes at or above it are dropped so every symbol is equally likely.
const maxByte = 256 - 256%len(alphabet)

var ErrLength = errors.New("code length must not be negative")

// GenerateID returns a random alphanumeric short code of exactly length symbols.
func GenerateID(length int) (string, error) {
	if length < 0 {
		return "", ErrLength
	}

	code := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)

	for len(code) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			code = append(code, alphabet[int(b)%len(alphabet)])
			if len(code) == length {
				break
			}
		}
	}

	return string(code), nil
}
