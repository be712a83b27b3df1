package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// seedCharset is the alphabet used for participant seeds.
const seedCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomSeed returns a random alphanumeric string of the given length.
// Participant seeds are 10 characters and never regenerated.
func RandomSeed(length int) (string, error) {
	code := make([]byte, length)

	if _, err := rand.Read(code); err != nil {
		return "", err
	}

	for i := 0; i < length; i++ {
		code[i] = seedCharset[int(code[i])%len(seedCharset)]
	}

	return string(code), nil
}

// GenerateCode returns an uppercase hex reference code of n random bytes.
func GenerateCode(n int) (string, error) {
	byt := make([]byte, n)

	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(byt)), nil
}
