package crypto

import (
	"crypto/rand"
	"math/big"
)

// AlphanumericAlphabet covers URL-safe secrets and generated usernames.
const AlphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DigitsAlphabet is used for the numeric suffix of generated usernames.
const DigitsAlphabet = "0123456789"

// VerificationCodeLength is the fixed width of email verification codes.
const VerificationCodeLength = 6

// RandomString returns a cryptographically secure random string of the given
// length built from the given alphabet.
func RandomString(length int, alphabet string) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure means the system rng is broken
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

// VerificationCode returns a uniformly random 6-digit numeric code in the
// range 100000-999999. Fixed width so codes never need zero padding.
func VerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(err)
	}
	return big.NewInt(100000 + n.Int64()).String()
}
